// Package infra contém as implementações concretas dos contratos do
// pacote domain:
//
//   - Store: tabela sharded de token buckets (golang.org/x/time/rate)
//     com descarte periódico de chaves ociosas
//   - ChanPool: semáforo de channel para o limite de concorrência
//   - RedisStatsStore / MemoryStatsStore: contabilidade de decisões
package infra
