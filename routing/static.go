package routing

import (
	"net/http"

	"edge-gateway/routing/domain"
)

// NewStatic serve arquivos de uma rota estática com o Cache-Control da
// política configurada e CORS permissivo (assets são públicos por natureza).
//
// Rotas estáticas nunca consultam limiter nem upstream: o handler vai direto
// ao filesystem. Os headers de cache só entram em resposta de sucesso,
// senão um 404 ficaria cacheado por 30 dias.
func NewStatic(prefix, root string, cache domain.CachePolicy) http.Handler {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		fs.ServeHTTP(&staticWriter{ResponseWriter: w, cacheControl: cache.Header()}, r)
	})
}

// staticWriter injeta os headers de cache no momento do WriteHeader,
// apenas quando a resposta não é erro.
type staticWriter struct {
	http.ResponseWriter
	cacheControl string
	wrote        bool
}

func (w *staticWriter) WriteHeader(status int) {
	if !w.wrote {
		w.wrote = true
		if status < http.StatusBadRequest {
			if w.cacheControl != "" {
				w.Header().Set("Cache-Control", w.cacheControl)
			}
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *staticWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
