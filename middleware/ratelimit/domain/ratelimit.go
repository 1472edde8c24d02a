package domain

import "time"

// Key identifica o cliente para fins de limite (IP, header de API key...).
type Key string

// Limiter decide se uma ação desse cliente pode acontecer agora.
//
// A implementação concreta (token bucket via golang.org/x/time/rate, ou
// outra disciplina) fica na camada de infra.
type Limiter interface {
	Allow() bool
}

// LimiterStore entrega o limiter de uma chave. A mesma chave tem que
// receber sempre o mesmo bucket enquanto ele estiver vivo.
type LimiterStore interface {
	Get(Key) Limiter
}

// Decision é o resultado da consulta ao limite.
type Decision struct {
	Allowed bool
	// RetryAfter é a recomendação devolvida no header quando bloqueia.
	// Zero = sem recomendação.
	RetryAfter time.Duration
}
