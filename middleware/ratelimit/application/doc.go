// Package application contém as regras de decisão do rate limit e de aquisição
// de vagas de concorrência. Depende apenas de domain.
package application
