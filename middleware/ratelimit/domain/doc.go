// Package domain define os contratos do rate limit e do limite de
// concorrência da borda.
//
// Nada aqui depende de net/http nem de implementação concreta; a regra de
// negócio (permitir ou não) é testável sem servidor.
package domain
