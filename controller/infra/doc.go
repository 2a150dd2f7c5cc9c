// Package infra contém a implementação concreta do domain.Burner.
//
//   - SpinBurner: busy-wait com math.Pow sobre números aleatórios (math/rand/v2)
package infra
