package application

import (
	"time"

	"autoscaling-demo/controller/domain"
)

// Service concentra as regras de aplicação das duas rotas.
//
// Ele não sabe nada sobre HTTP, apenas devolve o corpo da resposta.
type Service struct {
	Burner domain.Burner
	// Duration é o tempo mínimo de carga. Se <= 0, usa domain.LoadDuration.
	// A mensagem de resposta não muda com ela.
	Duration time.Duration
}

func (s Service) Greet() string {
	return domain.Greeting
}

// GenerateLoad bloqueia a goroutine chamadora até o Burner terminar.
// Sem Burner não há carga, apenas a mensagem.
func (s Service) GenerateLoad() (string, domain.BurnResult) {
	d := s.Duration
	if d <= 0 {
		d = domain.LoadDuration
	}

	var res domain.BurnResult
	if s.Burner != nil {
		res = s.Burner.Burn(d)
	}
	return domain.LoadGenerated, res
}
