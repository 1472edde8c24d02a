package accesslog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

func TestMiddleware_LogsRequestFields(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()

	h := Middleware(Options{Logger: logger})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("criado"))
	}))

	r := httptest.NewRequest(http.MethodPost, "http://edge/api/users/", nil)
	r.RemoteAddr = "203.0.113.9:1111"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if len(hook.Entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(hook.Entries))
	}
	entry := hook.LastEntry()
	if entry.Level != logrus.InfoLevel {
		t.Fatalf("expected info level, got %v", entry.Level)
	}
	if entry.Data["method"] != http.MethodPost {
		t.Fatalf("unexpected method field %v", entry.Data["method"])
	}
	if entry.Data["path"] != "/api/users/" {
		t.Fatalf("unexpected path field %v", entry.Data["path"])
	}
	if entry.Data["status"] != http.StatusCreated {
		t.Fatalf("unexpected status field %v", entry.Data["status"])
	}
	if entry.Data["client_ip"] != "203.0.113.9" {
		t.Fatalf("unexpected client_ip field %v", entry.Data["client_ip"])
	}
}

func TestMiddleware_SuppressesHealthPrefix(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()

	h := Middleware(Options{Logger: logger, SkipPrefixes: []string{"/health"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "http://edge/health", nil)
	r.RemoteAddr = "203.0.113.9:1111"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected health response to pass through, got %d", w.Code)
	}
	if len(hook.Entries) != 0 {
		t.Fatalf("expected no log entries for /health, got %d", len(hook.Entries))
	}

	// um path fora do prefixo continua logando
	r2 := httptest.NewRequest(http.MethodGet, "http://edge/api/ping", nil)
	r2.RemoteAddr = "203.0.113.9:1111"
	h.ServeHTTP(httptest.NewRecorder(), r2)
	if len(hook.Entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(hook.Entries))
	}
}

func TestMiddleware_TrustXFFUsesFirstHop(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()

	h := Middleware(Options{Logger: logger, TrustXForwardedFor: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "http://edge/api/ping", nil)
	r.RemoteAddr = "10.0.0.1:2222"
	r.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got := hook.LastEntry().Data["client_ip"]; got != "198.51.100.4" {
		t.Fatalf("expected first XFF hop, got %v", got)
	}
}
