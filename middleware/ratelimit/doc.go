// Package ratelimit fornece middlewares net/http que protegem a rota de carga (/load).
//
// Cada GET /load prende uma goroutine com a CPU a 100% por 10s. Sem limite, um
// cliente sozinho consegue ocupar todos os núcleos do pod. Os middlewares daqui
// são opcionais e desligados por padrão:
//
//   - ConcurrencyMiddleware: no máximo N cargas simultâneas (503 quando não há vaga)
//   - Middleware: token bucket por cliente (429 + Retry-After)
//
// Camadas:
//
//   - domain: contratos (Limiter, LimiterStore, SlotPool, StatsStore) sem net/http
//   - application: decisão allow/deny e acquire com timeout
//   - infra: x/time/rate, semáforo em channel, estatísticas em memória/Redis
//   - ratelimit (este pacote): extração de chave + tradução para status/headers
package ratelimit
