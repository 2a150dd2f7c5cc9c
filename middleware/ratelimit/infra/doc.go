// Package infra implementa os contratos de domain:
//
//   - Store: token bucket por chave com golang.org/x/time/rate
//   - ChanPool: semáforo em channel para o limite de cargas simultâneas
//   - MemoryStatsStore / RedisStatsStore: contadores de decisões do rate limit
package infra
