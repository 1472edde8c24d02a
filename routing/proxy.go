package routing

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ProxyOptions configura o proxy reverso para o backend upstream.
type ProxyOptions struct {
	Target *url.URL
	// Timeout limita a espera pelos headers de resposta do upstream.
	// Estourou => 504. Zero desabilita.
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewProxy monta o proxy reverso com os headers de identidade da borda.
//
// O httputil.ReverseProxy já acumula o X-Forwarded-For; aqui entram o
// X-Real-IP, o X-Forwarded-Proto e a reescrita do Host para o upstream.
// Erros de transporte viram 502; timeout de resposta vira 504; cliente que
// desistiu não recebe nada (a resposta já era impossível).
func NewProxy(opts ProxyOptions) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(opts.Target)

	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.Host = opts.Target.Host
		if ip := clientIP(req); ip != "" {
			req.Header.Set("X-Real-IP", ip)
		}
		req.Header.Set("X-Forwarded-Proto", schemeOf(req))
	}

	if opts.Timeout > 0 {
		proxy.Transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ResponseHeaderTimeout: opts.Timeout,
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		if errors.Is(err, context.Canceled) {
			// cliente desconectou; a chamada upstream já foi abandonada
			return
		}

		status := http.StatusBadGateway
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			status = http.StatusGatewayTimeout
		}

		if opts.Logger != nil {
			opts.Logger.WithFields(logrus.Fields{
				"upstream": opts.Target.Host,
				"path":     r.URL.Path,
				"status":   status,
			}).WithError(err).Error("upstream error")
		}
		http.Error(w, http.StatusText(status), status)
	}

	return proxy
}

// clientIP extrai o IP do cliente a partir do RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// schemeOf devolve o esquema original da conexão com a borda.
func schemeOf(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
