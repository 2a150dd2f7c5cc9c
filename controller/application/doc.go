// Package application contém os casos de uso do controller (saudação e geração de carga).
//
// Depende apenas do pacote domain e não conhece net/http.
package application
