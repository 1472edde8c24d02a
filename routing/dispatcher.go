package routing

import (
	"fmt"
	"net/http"

	"edge-gateway/routing/application"
	"edge-gateway/routing/domain"
)

// Dispatcher casa cada request com uma rota e delega ao handler registrado.
type Dispatcher struct {
	resolver application.Resolver
	handlers map[string]http.Handler
}

func NewDispatcher(table *domain.Table) *Dispatcher {
	d := &Dispatcher{
		resolver: application.Resolver{Table: table},
		handlers: make(map[string]http.Handler),
	}

	// handlers que a própria tabela descreve por completo
	for _, rt := range table.Routes() {
		switch rt.Action {
		case domain.ActionRedirect:
			d.handlers[rt.Name] = NewRedirect(rt.RedirectTo, rt.RedirectStatus)
		case domain.ActionNotFound:
			d.handlers[rt.Name] = NotFoundHandler()
		}
	}
	return d
}

// Handle registra (ou substitui) o handler da rota com esse nome.
func (d *Dispatcher) Handle(name string, h http.Handler) {
	d.handlers[name] = h
}

// Validate confere se toda rota da tabela tem handler registrado.
// Chame depois do wiring, antes de subir o servidor.
func (d *Dispatcher) Validate(table *domain.Table) error {
	for _, rt := range table.Routes() {
		if _, ok := d.handlers[rt.Name]; !ok {
			return fmt.Errorf("route %q has no handler registered", rt.Name)
		}
	}
	return nil
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt := d.resolver.Resolve(r.URL.Path)
	h, ok := d.handlers[rt.Name]
	if !ok {
		// rota sem handler: trata como not-found em vez de derrubar a request
		http.NotFound(w, r)
		return
	}
	h.ServeHTTP(w, r)
}

// NewRedirect devolve um handler de redirect fixo.
// Status 0 vira 301 (o caso da raiz -> admin).
func NewRedirect(to string, status int) http.Handler {
	if status == 0 {
		status = http.StatusMovedPermanently
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, to, status)
	})
}

// NotFoundHandler é a resposta do catch-all.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
