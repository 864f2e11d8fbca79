package models

import (
	"time"
)

// EstadoCita es el estado del ciclo de vida de una cita.
// ATENDIDA se conserva como sinónimo terminal de COMPLETADA: lo escribe
// una ruta administrativa heredada y se trata igual que COMPLETADA.
type EstadoCita string

const (
	EstadoPendiente  EstadoCita = "PENDIENTE"
	EstadoConfirmada EstadoCita = "CONFIRMADA"
	EstadoCancelada  EstadoCita = "CANCELADA"
	EstadoCompletada EstadoCita = "COMPLETADA"
	EstadoAtendida   EstadoCita = "ATENDIDA"
)

// EstadoValido verifica que el valor pertenezca a los cinco estados conocidos
func EstadoValido(e EstadoCita) bool {
	switch e {
	case EstadoPendiente, EstadoConfirmada, EstadoCancelada, EstadoCompletada, EstadoAtendida:
		return true
	}
	return false
}

// EsTerminal indica si el estado no admite transiciones guardadas
func (e EstadoCita) EsTerminal() bool {
	switch e {
	case EstadoCancelada, EstadoCompletada, EstadoAtendida:
		return true
	}
	return false
}

// Cita representa la tabla citas en la base de datos.
// paciente y medico son referencias débiles a usuarios: se validan al
// crear la cita y no se revalidan después.
type Cita struct {
	IDCita         int        `json:"id_cita" db:"id_cita"`
	IDPaciente     int        `json:"id_paciente" db:"id_paciente"`
	IDMedico       int        `json:"id_medico" db:"id_medico"`
	IDEspecialidad *int       `json:"id_especialidad,omitempty" db:"id_especialidad"`
	FechaHora      time.Time  `json:"fecha_hora" db:"fecha_hora"`
	Motivo         string     `json:"motivo" db:"motivo"`
	Notas          string     `json:"notas" db:"notas"`
	Estado         EstadoCita `json:"estado" db:"estado"`
	CreadoEn       time.Time  `json:"creado_en" db:"creado_en"`
	ActualizadoEn  time.Time  `json:"actualizado_en" db:"actualizado_en"`
}

// CitaDetalle agrega los nombres para las vistas de listado
type CitaDetalle struct {
	Cita
	PacienteNombre     string  `json:"paciente_nombre"`
	MedicoNombre       string  `json:"medico_nombre"`
	EspecialidadNombre *string `json:"especialidad_nombre,omitempty"`
}

// CrearCitaRequest representa la solicitud para agendar una cita
type CrearCitaRequest struct {
	IDMedico       int        `json:"id_medico" validate:"required"`
	IDEspecialidad *int       `json:"id_especialidad,omitempty"`
	FechaHora      *time.Time `json:"fecha_hora" validate:"required"`
	Motivo         string     `json:"motivo" validate:"required,max=500"`
	Notas          string     `json:"notas,omitempty"`
}

// CambiarEstadoRequest es el cuerpo del cambio de estado administrativo
type CambiarEstadoRequest struct {
	Estado EstadoCita `json:"estado" validate:"required"`
}
