// Package routing fornece a camada HTTP do roteamento de borda.
//
// Visão geral (camadas):
//
//   - domain: tabela de rotas e políticas (sem net/http)
//   - application: resolução de rota com canonização de path
//   - routing (este pacote): dispatcher + handlers concretos (proxy reverso,
//     arquivos estáticos com Cache-Control, redirect, not-found)
//
// O wiring (cmd/gateway) registra um handler por nome de rota no Dispatcher;
// os middlewares de política (rate limit, CORS, métricas) envolvem cada
// handler conforme as flags declaradas na rota.
package routing
