// Package domain define os contratos usados para proteger a rota de carga:
// limite por cliente, vagas de concorrência e registro das decisões.
//
// Não depende de net/http.
package domain
