// Package application contém o caso de uso de resolução de rota.
//
// Ele depende apenas do pacote domain e não conhece net/http: recebe um
// path bruto, canoniza e devolve a rota que vai atender a request.
package application
