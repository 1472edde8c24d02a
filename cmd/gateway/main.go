package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"edge-gateway/middleware/accesslog"
	"edge-gateway/middleware/cors"
	"edge-gateway/middleware/metrics"
	"edge-gateway/middleware/ratelimit"
	rldomain "edge-gateway/middleware/ratelimit/domain"
	"edge-gateway/middleware/ratelimit/infra"
	"edge-gateway/routing"
	"edge-gateway/routing/domain"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do orquestrador
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := readConfig()
	if err != nil {
		log.WithError(err).Fatal("config error")
	}
	if lvl, err := logrus.ParseLevel(cfg.logLevel); err == nil {
		log.SetLevel(lvl)
	}
	if cfg.logJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	target, err := url.Parse(cfg.upstreamURL)
	if err != nil {
		log.WithError(err).Fatal("invalid UPSTREAM_URL")
	}

	table, err := buildTable(cfg)
	if err != nil {
		log.WithError(err).Fatal("route table error")
	}

	store := infra.NewStore(cfg.rateRPS, cfg.rateBurst,
		infra.WithShards(cfg.rateShards),
		infra.WithIdleTTL(cfg.rateIdleTTL),
	)

	var statsStore rldomain.StatsStore
	if cfg.rateStatsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.rateStatsRedisAddr,
			Password: cfg.rateStatsRedisPassword,
			DB:       cfg.rateStatsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.WithError(err).Fatal("redis stats ping error")
		}

		statsStore = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.rateStatsPrefix),
			infra.WithStatsTTL(cfg.rateStatsTTL),
			infra.WithStatsBucket(cfg.rateStatsBucket),
			infra.WithStatsTrackKeys(cfg.rateStatsTrackKeys),
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	store.StartJanitor(ctx)

	policy := cors.Policy{
		AllowedOrigins:   cfg.corsOrigins,
		AllowedMethods:   cfg.corsMethods,
		AllowedHeaders:   cfg.corsHeaders,
		AllowCredentials: cfg.corsCredentials,
	}
	if policy.AllowAll() {
		// wildcard funciona, mas é brecha em borda de produção
		log.Warn("CORS_ORIGINS=* allows any origin; tighten the list for production")
	}

	var m *metrics.Metrics
	if cfg.metricsEnabled {
		m = metrics.New()
	}

	// o upstream é um só; o cap de requests em voo envolve o proxy inteiro
	proxy := routing.NewProxy(routing.ProxyOptions{
		Target:  target,
		Timeout: cfg.upstreamTimeout,
		Logger:  log,
	})
	proxy = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.concurrencyTimeout,
	})(proxy)

	d := routing.NewDispatcher(table)
	skipLog := make([]string, 0, 1)

	for _, rt := range table.Routes() {
		var h http.Handler
		switch rt.Action {
		case domain.ActionProxy:
			h = proxy
		case domain.ActionStatic:
			h = routing.NewStatic(rt.Prefix, rt.Root, rt.Cache)
		case domain.ActionHandler:
			if rt.Name == "metrics" && m != nil {
				h = m.Handler()
			}
		default:
			// redirect e not-found já entram no NewDispatcher
		}

		if rt.LogSuppressed {
			skipLog = append(skipLog, rt.Prefix)
		}
		if h == nil {
			continue
		}

		// política declarada na rota: primeiro o limiter (mais interno),
		// depois CORS, para o preflight nunca gastar token
		if rt.RateLimited && cfg.rateEnabled {
			h = ratelimit.Middleware(ratelimit.Options{
				Store:               store,
				Stats:               statsStore,
				Route:               rt.Name,
				KeyHeader:           cfg.rateKeyHeader,
				TrustXForwardedFor:  cfg.trustXFF,
				RejectStatus:        http.StatusTooManyRequests,
				RetryAfter:          cfg.retryAfter,
				AddRateLimitHeaders: cfg.addHeaders,
			})(h)
		}
		if rt.CORSEnabled {
			h = cors.Middleware(policy)(h)
		}
		if m != nil {
			h = m.Middleware(rt.Name)(h)
		}

		d.Handle(rt.Name, h)
	}

	if err := d.Validate(table); err != nil {
		log.WithError(err).Fatal("route wiring error")
	}

	handler := accesslog.Middleware(accesslog.Options{
		Logger:             log,
		SkipPrefixes:       skipLog,
		TrustXForwardedFor: cfg.trustXFF,
	})(d)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithFields(logrus.Fields{
		"listen":   cfg.listenAddr,
		"upstream": target.String(),
	}).Info("edge gateway listening")
	log.WithFields(logrus.Fields{
		"enabled": cfg.rateEnabled,
		"rps":     cfg.rateRPS,
		"burst":   cfg.rateBurst,
		"shards":  cfg.rateShards,
	}).Info("rate limit")
	log.WithFields(logrus.Fields{
		"origins": cfg.corsOrigins,
		"metrics": cfg.metricsEnabled,
		"stats":   cfg.rateStatsEnabled,
	}).Info("edge policies")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server error")
	}
}

// buildTable monta a tabela de rotas da borda a partir da configuração.
func buildTable(cfg config) (*domain.Table, error) {
	routes := []domain.Route{
		{Name: "api", Prefix: cfg.apiPrefix, Action: domain.ActionProxy, RateLimited: true, CORSEnabled: true},
		{Name: "admin", Prefix: cfg.adminPrefix, Action: domain.ActionProxy},
		{Name: "health", Prefix: cfg.healthPrefix, Action: domain.ActionProxy, LogSuppressed: true},
		{Name: "root", Prefix: "/", Exact: true, Action: domain.ActionRedirect, RedirectTo: cfg.adminPrefix, RedirectStatus: http.StatusMovedPermanently},
	}

	if cfg.staticRoot != "" {
		routes = append(routes, domain.Route{
			Name: "static", Prefix: cfg.staticPrefix, Action: domain.ActionStatic,
			Root:  cfg.staticRoot,
			Cache: domain.CachePolicy{MaxAge: 30 * 24 * time.Hour, Immutable: true},
		})
	}
	if cfg.mediaRoot != "" {
		routes = append(routes, domain.Route{
			Name: "media", Prefix: cfg.mediaPrefix, Action: domain.ActionStatic,
			Root:  cfg.mediaRoot,
			Cache: domain.CachePolicy{MaxAge: 7 * 24 * time.Hour},
		})
	}
	if cfg.metricsEnabled {
		routes = append(routes, domain.Route{
			Name: "metrics", Prefix: "/metrics", Exact: true, Action: domain.ActionHandler,
		})
	}

	return domain.NewTable(routes...)
}
