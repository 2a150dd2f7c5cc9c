// Package domain define os tipos e contratos do controller de demonstração de autoscaling.
//
// Este pacote não depende de net/http nem da implementação concreta do loop de CPU.
// As mensagens de resposta e a duração da carga são fixas.
package domain
