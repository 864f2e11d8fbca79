// Package citas implementa el núcleo del sistema: el ciclo de vida de las
// citas médicas, las reglas de visibilidad por rol y las validaciones de
// creación. Los handlers HTTP son únicamente pegamento sobre este paquete;
// toda operación recibe la identidad del solicitante de forma explícita.
package citas

import (
	"fmt"
)

// ErrorValidacion indica entrada faltante o malformada. El solicitante
// puede corregir y reintentar.
type ErrorValidacion struct {
	Campo   string
	Mensaje string
}

func (e *ErrorValidacion) Error() string {
	return fmt.Sprintf("validación: %s (%s)", e.Mensaje, e.Campo)
}

// ErrorAutorizacion indica que el rol del solicitante no permite la
// operación. No se reintenta con el mismo rol.
type ErrorAutorizacion struct {
	Mensaje string
}

func (e *ErrorAutorizacion) Error() string {
	return "autorización: " + e.Mensaje
}

// ErrorNoEncontrado indica que un identificador referenciado no resuelve
type ErrorNoEncontrado struct {
	Entidad string
}

func (e *ErrorNoEncontrado) Error() string {
	return e.Entidad + " no encontrado"
}

// ErrorTransicionInvalida indica que el estado actual no admite la acción
type ErrorTransicionInvalida struct {
	Desde  string
	Accion string
}

func (e *ErrorTransicionInvalida) Error() string {
	return fmt.Sprintf("transición inválida: no se puede %s una cita %s", e.Accion, e.Desde)
}

// ErrorEstadoInvalido indica un valor de estado fuera de la enumeración
type ErrorEstadoInvalido struct {
	Estado string
}

func (e *ErrorEstadoInvalido) Error() string {
	return "estado inválido: " + e.Estado
}
