package domain

import "context"

// SlotPool representa um recurso de capacidade finita (requests em voo).
//
// Acquire bloqueia até conseguir vaga ou até o ctx encerrar. Quando
// consegue, devolve um release que deve ser chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
