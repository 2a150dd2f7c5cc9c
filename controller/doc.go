// Package controller expõe as rotas HTTP (net/http) da demonstração de autoscaling.
//
// Visão geral (camadas):
//
//   - domain: mensagens fixas, duração da carga e o contrato Burner
//   - application: casos de uso Greet/GenerateLoad sem net/http
//   - infra: SpinBurner, o busy-wait que de fato consome CPU
//   - controller (este pacote): handlers HTTP + registro das rotas no ServeMux
//
// Rotas:
//
//	GET /      -> "Hello from EKS Spring Boot!"
//	GET /load  -> "Load generated for 10 seconds!" (depois de >= 10s de CPU a 100%)
//
// A rota /load segura a goroutine da requisição durante toda a carga e ignora
// o cancelamento do contexto. Middlewares de concorrência/rate limit podem ser
// aplicados só nela (ver Routes).
package controller
