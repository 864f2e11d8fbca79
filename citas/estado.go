package citas

import (
	"github.com/miposta/citas-backend/models"
)

// Accion es una transición guardada del ciclo de vida
type Accion string

const (
	AccionConfirmar Accion = "confirmar"
	AccionCancelar  Accion = "cancelar"
	AccionCompletar Accion = "completar"
)

// destino indica el estado resultante de cada acción guardada
var destino = map[Accion]models.EstadoCita{
	AccionConfirmar: models.EstadoConfirmada,
	AccionCancelar:  models.EstadoCancelada,
	AccionCompletar: models.EstadoCompletada,
}

// permitidos indica desde qué estados puede ejecutarse cada acción.
// Solo una cita PENDIENTE es confirmable; cancelar y completar aceptan
// además CONFIRMADA. Ningún estado terminal admite acciones guardadas.
var permitidos = map[Accion][]models.EstadoCita{
	AccionConfirmar: {models.EstadoPendiente},
	AccionCancelar:  {models.EstadoPendiente, models.EstadoConfirmada},
	AccionCompletar: {models.EstadoPendiente, models.EstadoConfirmada},
}

// AccionValida verifica que la acción exista
func AccionValida(a Accion) bool {
	_, ok := destino[a]
	return ok
}

// EstadosOrigen devuelve los estados desde los que la acción es legal
func EstadosOrigen(a Accion) []models.EstadoCita {
	return permitidos[a]
}

// Destino devuelve el estado al que lleva la acción
func Destino(a Accion) models.EstadoCita {
	return destino[a]
}

// PuedeTransicionar valida la acción contra el estado actual
func PuedeTransicionar(desde models.EstadoCita, a Accion) error {
	if !AccionValida(a) {
		return &ErrorValidacion{Campo: "accion", Mensaje: "acción desconocida"}
	}
	for _, e := range permitidos[a] {
		if e == desde {
			return nil
		}
	}
	return &ErrorTransicionInvalida{Desde: string(desde), Accion: string(a)}
}
