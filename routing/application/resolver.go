package application

import (
	gopath "path"
	"strings"

	"edge-gateway/routing/domain"
)

// Resolver decide qual rota atende cada path.
//
// A canonização acontece antes do casamento: segmentos "." e ".." e barras
// duplicadas são resolvidos, então "/static/../admin/" recebe a política de
// "/admin/" e não a da rota estática.
type Resolver struct {
	Table *domain.Table
}

// Resolve canoniza o path e devolve a rota correspondente.
// Com uma Table construída via NewTable sempre há rota (catch-all).
func (r Resolver) Resolve(path string) domain.Route {
	return r.Table.Match(Canonical(path))
}

// Canonical normaliza um path de request para fins de casamento de rota.
//
// Mantém a barra final (relevante para prefixos como "/admin/") e garante
// barra inicial para paths malformados.
func Canonical(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	trailing := strings.HasSuffix(path, "/") && path != "/"
	cleaned := gopath.Clean(path)
	if trailing && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return cleaned
}
