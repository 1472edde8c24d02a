// Package ratelimit fornece os adapters HTTP do rate limit e do limite de
// concorrência da borda.
//
// Camadas:
//
//   - domain: contratos (Limiter, LimiterStore, StatsStore, SlotPool)
//   - application: decisão allow/deny e aquisição de vaga, sem net/http
//   - infra: token bucket sharded, semáforo de channel, stores de stats
//   - ratelimit (este pacote): middleware + extração de chave + tradução
//     para status e headers HTTP
//
// Fluxo: extrai a chave do cliente (header/XFF/RemoteAddr), pede a decisão
// à camada application, registra o evento no StatsStore (best-effort) e
// responde 429 com Retry-After quando bloqueia. O middleware só é aplicado
// às rotas marcadas como rate-limited na tabela de borda.
package ratelimit
