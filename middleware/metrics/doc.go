// Package metrics expõe contadores e histogramas Prometheus por rota.
//
// O registry é próprio (não o global), então testes e múltiplas instâncias
// não colidem. O endpoint de scrape sai de Handler().
package metrics
