// Package accesslog registra uma linha estruturada por request atendida
// pela borda (método, path, status, bytes, duração, IP do cliente).
//
// Prefixos marcados para supressão (health check) não geram entrada
// nenhuma, para não poluir o log com o polling do orquestrador.
package accesslog
