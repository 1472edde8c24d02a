// Package application contém os casos de uso de rate limit e concorrência:
// decisão allow/deny com retry-after e aquisição de vaga com timeout.
//
// Depende só do pacote domain; não conhece net/http.
package application
