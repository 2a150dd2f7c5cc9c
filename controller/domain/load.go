package domain

import "time"

const (
	// Greeting é o corpo retornado por GET /.
	Greeting = "Hello from EKS Spring Boot!"

	// LoadGenerated é o corpo retornado por GET /load depois da carga.
	LoadGenerated = "Load generated for 10 seconds!"

	// LoadDuration é o tempo mínimo (wall-clock) que uma geração de carga ocupa a CPU.
	LoadDuration = 10 * time.Second
)

// BurnResult descreve uma execução do loop de carga.
type BurnResult struct {
	Started    time.Time
	Elapsed    time.Duration
	Iterations uint64

	// Checksum acumula o resultado de cada iteração.
	// O valor em si é irrelevante, só existe para o compilador não descartar o loop.
	Checksum float64
}

// Burner consome CPU até que pelo menos d tenha passado desde o início da chamada.
//
// A chamada é bloqueante e não pode ser interrompida.
type Burner interface {
	Burn(d time.Duration) BurnResult
}
