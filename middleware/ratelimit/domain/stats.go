package domain

import (
	"context"
	"time"
)

// StatsEvent é uma decisão do rate limit para fins de contabilidade.
//
// Route é o nome lógico da rota de borda que originou a decisão; Method e
// Path são os valores brutos da request. Cuidado com cardinalidade ao
// persistir Key/Path sem controle.
type StatsEvent struct {
	Key     Key
	Allowed bool

	Route  string
	Method string
	Path   string

	At time.Time
}

// StatsStore persiste eventos de decisão. O chamador trata erro como
// best-effort: contabilidade nunca derruba request.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
