package domain

// Tabela de rotas da borda.
//
// Regras de casamento (sem dependência de net/http): prefixos ordenados do
// mais específico para o menos específico, primeiro que casa vence.

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Action diz o que fazer com uma request que casou com a rota.
type Action int

const (
	// ActionProxy encaminha para o backend upstream.
	ActionProxy Action = iota
	// ActionStatic serve arquivos a partir de Root.
	ActionStatic
	// ActionRedirect responde com redirect para RedirectTo.
	ActionRedirect
	// ActionHandler é atendida por um handler local registrado no dispatcher
	// (ex: endpoint de métricas). A tabela não sabe o que o handler faz.
	ActionHandler
	// ActionNotFound responde o erro padrão. É a ação do catch-all.
	ActionNotFound
)

// CachePolicy descreve o Cache-Control de uma rota estática.
type CachePolicy struct {
	MaxAge    time.Duration
	Immutable bool
}

// Header monta o valor do header Cache-Control.
// Zero value => sem política (string vazia).
func (p CachePolicy) Header() string {
	if p.MaxAge <= 0 {
		return ""
	}
	v := fmt.Sprintf("public, max-age=%d", int(p.MaxAge.Seconds()))
	if p.Immutable {
		v += ", immutable"
	}
	return v
}

// Route é o par (matcher, alvo) mais as flags de política da borda.
//
// As flags são declarativas: quem monta a cadeia de handlers decide o que
// fazer com elas. Isso mantém o invariante de que só rotas marcadas como
// RateLimited tocam o estado do limiter.
type Route struct {
	Name   string
	Prefix string
	// Exact exige igualdade de path em vez de prefixo.
	Exact  bool
	Action Action

	RateLimited   bool
	CORSEnabled   bool
	LogSuppressed bool

	// ActionStatic
	Root  string
	Cache CachePolicy

	// ActionRedirect
	RedirectTo     string
	RedirectStatus int
}

// Matches informa se o path (já canonizado) casa com a rota.
func (r Route) Matches(path string) bool {
	if r.Exact {
		return path == r.Prefix
	}
	return strings.HasPrefix(path, r.Prefix)
}

// catchAll é a rota apendada quando nenhuma rota cobre todos os paths.
func catchAll() Route {
	return Route{Name: "default", Prefix: "/", Action: ActionNotFound}
}

// Table é a tabela ordenada de rotas. Construa com NewTable.
type Table struct {
	routes []Route
}

// NewTable valida e ordena as rotas.
//
// Ordenação: exatas antes de prefixos, e entre prefixos o mais longo
// primeiro. Se nenhuma rota não-exata com prefixo "/" existir, um catch-all
// NotFound chamado "default" é apendado no fim.
func NewTable(routes ...Route) (*Table, error) {
	seen := make(map[string]struct{}, len(routes))
	for _, rt := range routes {
		if rt.Name == "" {
			return nil, errors.New("route without a name")
		}
		if _, dup := seen[rt.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", rt.Name)
		}
		seen[rt.Name] = struct{}{}

		if rt.Prefix == "" || !strings.HasPrefix(rt.Prefix, "/") {
			return nil, fmt.Errorf("route %q: prefix must start with /", rt.Name)
		}
		if rt.Action == ActionStatic && rt.Root == "" {
			return nil, fmt.Errorf("route %q: static route requires a root", rt.Name)
		}
		if rt.Action == ActionRedirect && rt.RedirectTo == "" {
			return nil, fmt.Errorf("route %q: redirect route requires a target", rt.Name)
		}
		if rt.Action == ActionStatic && rt.RateLimited {
			// rotas estáticas não consultam limiter por definição
			return nil, fmt.Errorf("route %q: static routes cannot be rate limited", rt.Name)
		}
	}

	ordered := make([]Route, len(routes))
	copy(ordered, routes)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Exact != b.Exact {
			return a.Exact
		}
		return len(a.Prefix) > len(b.Prefix)
	})

	hasCatchAll := false
	for _, rt := range ordered {
		if !rt.Exact && rt.Prefix == "/" {
			hasCatchAll = true
		}
	}
	if !hasCatchAll {
		if _, dup := seen["default"]; dup {
			return nil, errors.New(`route name "default" is reserved for the catch-all`)
		}
		ordered = append(ordered, catchAll())
	}

	return &Table{routes: ordered}, nil
}

// Match retorna a primeira rota que casa com o path.
// Sempre encontra uma (o catch-all cobre o resto).
func (t *Table) Match(path string) Route {
	for _, rt := range t.routes {
		if rt.Matches(path) {
			return rt
		}
	}
	// inalcançável com tabela construída via NewTable
	return catchAll()
}

// Routes devolve uma cópia da tabela na ordem de avaliação.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
