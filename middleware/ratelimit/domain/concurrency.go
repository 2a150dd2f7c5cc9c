package domain

import "context"

// SlotPool limita quantas cargas rodam ao mesmo tempo.
//
// Acquire bloqueia até haver vaga ou até o ctx encerrar. O release devolvido
// deve ser chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
