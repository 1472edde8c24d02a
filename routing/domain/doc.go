// Package domain define os tipos de domínio do roteamento de borda.
//
// Este pacote não depende de net/http nem de implementações concretas.
// Uma Table é imutável depois de construída: a ordenação (mais específico
// primeiro) e a garantia de catch-all são resolvidas em NewTable, então
// Match nunca falha em encontrar uma rota.
package domain
