package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	listenAddr      string
	upstreamURL     string
	upstreamTimeout time.Duration

	apiPrefix    string
	adminPrefix  string
	healthPrefix string
	staticPrefix string
	staticRoot   string
	mediaPrefix  string
	mediaRoot    string

	rateEnabled   bool
	rateRPS       float64
	rateBurst     int
	rateShards    int
	rateIdleTTL   time.Duration
	rateKeyHeader string
	trustXFF      bool
	retryAfter    time.Duration
	addHeaders    bool

	corsOrigins     []string
	corsMethods     []string
	corsHeaders     []string
	corsCredentials bool

	concurrencyMax     int
	concurrencyTimeout time.Duration

	metricsEnabled bool

	logLevel string
	logJSON  bool

	rateStatsEnabled       bool
	rateStatsRedisAddr     string
	rateStatsRedisPassword string
	rateStatsRedisDB       int
	rateStatsPrefix        string
	rateStatsTTL           time.Duration
	rateStatsBucket        string
	rateStatsTrackKeys     bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.upstreamURL = os.Getenv("UPSTREAM_URL")
	cfg.upstreamTimeout = getenvDurationDefault("UPSTREAM_TIMEOUT", 30*time.Second)

	cfg.apiPrefix = getenvDefault("API_PREFIX", "/api/")
	cfg.adminPrefix = getenvDefault("ADMIN_PREFIX", "/admin/")
	cfg.healthPrefix = getenvDefault("HEALTH_PREFIX", "/health")
	cfg.staticPrefix = getenvDefault("STATIC_PREFIX", "/static/")
	cfg.staticRoot = os.Getenv("STATIC_ROOT")
	cfg.mediaPrefix = getenvDefault("MEDIA_PREFIX", "/media/")
	cfg.mediaRoot = os.Getenv("MEDIA_ROOT")

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 10)
	// o burst padrão de 20 engana quando o RPS configurado é muito baixo:
	// as primeiras ~20 passam e parece que o limiter não funciona
	if burst, ok := getenvInt("RATE_BURST"); ok {
		cfg.rateBurst = burst
	} else {
		cfg.rateBurst = 20
		if getenvIsSet("RATE_RPS") && cfg.rateRPS > 0 && cfg.rateRPS < 1 {
			cfg.rateBurst = 1
		}
	}
	cfg.rateShards = getenvIntDefault("RATE_SHARDS", 16)
	cfg.rateIdleTTL = getenvDurationDefault("RATE_IDLE_TTL", 15*time.Minute)
	cfg.rateKeyHeader = os.Getenv("RATE_KEY_HEADER")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.corsOrigins = getenvList("CORS_ORIGINS")
	cfg.corsMethods = getenvList("CORS_METHODS")
	cfg.corsHeaders = getenvList("CORS_HEADERS")
	cfg.corsCredentials = getenvBoolDefault("CORS_CREDENTIALS", false)

	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 100)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.metricsEnabled = getenvBoolDefault("METRICS_ENABLED", true)

	cfg.logLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.logJSON = getenvBoolDefault("LOG_JSON", false)

	cfg.rateStatsEnabled = getenvBoolDefault("RATE_STATS_ENABLED", false)
	cfg.rateStatsRedisAddr = getenvDefault("RATE_STATS_REDIS_ADDR", "")
	cfg.rateStatsRedisPassword = os.Getenv("RATE_STATS_REDIS_PASSWORD")
	cfg.rateStatsRedisDB = getenvIntDefault("RATE_STATS_REDIS_DB", 0)
	cfg.rateStatsPrefix = getenvDefault("RATE_STATS_PREFIX", "edge:ratelimit:stats")
	cfg.rateStatsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.rateStatsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.rateStatsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	if cfg.upstreamURL == "" {
		return config{}, errors.New("UPSTREAM_URL is required")
	}
	if cfg.rateRPS <= 0 {
		return config{}, errors.New("RATE_RPS must be > 0")
	}
	if cfg.rateBurst <= 0 {
		return config{}, errors.New("RATE_BURST must be > 0")
	}
	if cfg.rateShards <= 0 {
		return config{}, errors.New("RATE_SHARDS must be > 0")
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	for _, p := range []struct{ name, v string }{
		{"API_PREFIX", cfg.apiPrefix},
		{"ADMIN_PREFIX", cfg.adminPrefix},
		{"HEALTH_PREFIX", cfg.healthPrefix},
		{"STATIC_PREFIX", cfg.staticPrefix},
		{"MEDIA_PREFIX", cfg.mediaPrefix},
	} {
		if !strings.HasPrefix(p.v, "/") {
			return config{}, fmt.Errorf("%s must start with /", p.name)
		}
	}
	if cfg.rateStatsEnabled && strings.TrimSpace(cfg.rateStatsRedisAddr) == "" {
		return config{}, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvList(k string) []string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvInt(k string) (int, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getenvIsSet(k string) bool {
	v, ok := os.LookupEnv(k)
	return ok && v != ""
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
