// Package cors aplica a política de cross-origin das rotas de API.
//
// Preflight (OPTIONS) é respondido na borda com 204 e corpo vazio, nunca
// encaminhado ao upstream. Requests normais seguem adiante e recebem o
// Access-Control-Allow-Origin na resposta quando a origem é permitida.
//
// A lista de origens é configuração a ser apertada em produção: o wildcard
// funciona, mas nunca combina com Allow-Credentials.
package cors
