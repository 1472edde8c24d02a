package cors

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Policy é a política estática de cross-origin de uma rota.
type Policy struct {
	// AllowedOrigins é a lista exata de origens permitidas.
	// "*" em qualquer posição libera todas (sem credenciais).
	// Lista vazia = só same-origin (nenhum header de CORS é emitido).
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// AllowCredentials só tem efeito com origens explícitas.
	AllowCredentials bool
	// MaxAge do resultado do preflight no browser.
	MaxAge time.Duration
}

// DefaultMethods cobre o que a API upstream atende.
func DefaultMethods() []string {
	return []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
}

// DefaultHeaders cobre os headers usuais de clientes de API.
func DefaultHeaders() []string {
	return []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With"}
}

// AllowAll informa se a política libera qualquer origem.
func (p Policy) AllowAll() bool {
	for _, o := range p.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (p Policy) originAllowed(origin string) bool {
	for _, o := range p.AllowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// allowOriginFor devolve o valor do Allow-Origin para essa origem,
// ou vazio quando a origem não é permitida.
func (p Policy) allowOriginFor(origin string) string {
	if p.AllowAll() {
		return "*"
	}
	if origin != "" && p.originAllowed(origin) {
		return origin
	}
	return ""
}

func (p Policy) methods() string {
	if len(p.AllowedMethods) == 0 {
		return strings.Join(DefaultMethods(), ", ")
	}
	return strings.Join(p.AllowedMethods, ", ")
}

func (p Policy) headers() string {
	if len(p.AllowedHeaders) == 0 {
		return strings.Join(DefaultHeaders(), ", ")
	}
	return strings.Join(p.AllowedHeaders, ", ")
}

// Middleware aplica a política na rota.
//
// OPTIONS curto-circuita com 204 e corpo vazio independente da saúde do
// upstream. Para o resto, os headers entram na resposta e a request segue.
func Middleware(p Policy) func(next http.Handler) http.Handler {
	if p.MaxAge <= 0 {
		// 20 dias: preflight é caro e a política é estática
		p.MaxAge = 1728000 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowOrigin := p.allowOriginFor(origin)

			if allowOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				if allowOrigin != "*" {
					// a resposta varia por origem; caches intermediários precisam saber
					w.Header().Add("Vary", "Origin")
					if p.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
				}
			}

			if r.Method == http.MethodOptions {
				if allowOrigin != "" {
					w.Header().Set("Access-Control-Allow-Methods", p.methods())
					w.Header().Set("Access-Control-Allow-Headers", p.headers())
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(p.MaxAge.Seconds())))
				}
				w.Header().Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
