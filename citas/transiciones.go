package citas

import (
	"context"

	"github.com/miposta/citas-backend/models"
)

// Transicionar ejecuta una acción guardada (confirmar, cancelar,
// completar) sobre una cita. Solo el médico asignado puede transicionar,
// y el estado actual debe admitir la acción. El cambio se aplica como un
// compare-and-set: de dos solicitudes concurrentes sobre el mismo estado
// exactamente una gana y la otra observa ErrorTransicionInvalida.
func (e *Engine) Transicionar(ctx context.Context, caller *models.Usuario, idCita int, accion Accion) (*models.Cita, error) {
	if err := requireRol(caller, models.RolMedico); err != nil {
		return nil, err
	}
	if !AccionValida(accion) {
		return nil, &ErrorValidacion{Campo: "accion", Mensaje: "acción desconocida"}
	}

	cita, err := e.almacen.CitaPorID(ctx, idCita)
	if err != nil {
		return nil, err
	}
	if cita == nil {
		e.auditarTransicion(caller, idCita, "", string(accion), "cita no encontrada")
		return nil, &ErrorNoEncontrado{Entidad: "cita"}
	}
	if err := requireMedicoAsignado(caller, cita); err != nil {
		e.auditarTransicion(caller, idCita, string(cita.Estado), string(accion), "médico no asignado")
		return nil, err
	}

	actualizada, err := e.almacen.TransicionarEstado(ctx, idCita, EstadosOrigen(accion), Destino(accion))
	if err != nil {
		return nil, err
	}
	if actualizada == nil {
		// El compare-and-set no aplicó: otra solicitud movió el
		// estado primero o la acción nunca fue legal desde él.
		actual, err := e.almacen.CitaPorID(ctx, idCita)
		if err != nil {
			return nil, err
		}
		if actual == nil {
			e.auditarTransicion(caller, idCita, "", string(accion), "cita no encontrada")
			return nil, &ErrorNoEncontrado{Entidad: "cita"}
		}
		e.auditarTransicion(caller, idCita, string(actual.Estado), string(accion), "transición rechazada")
		return nil, &ErrorTransicionInvalida{Desde: string(actual.Estado), Accion: string(accion)}
	}

	e.auditarTransicion(caller, idCita, string(cita.Estado), string(actualizada.Estado), "ok")
	e.notificarTransicion(ctx, actualizada)
	return actualizada, nil
}

// CambiarEstado es la anulación administrativa: el médico asignado puede
// fijar cualquiera de los cinco estados sin precondición sobre el actual.
func (e *Engine) CambiarEstado(ctx context.Context, caller *models.Usuario, idCita int, estado models.EstadoCita) (*models.Cita, error) {
	if err := requireRol(caller, models.RolMedico); err != nil {
		return nil, err
	}
	if !models.EstadoValido(estado) {
		return nil, &ErrorEstadoInvalido{Estado: string(estado)}
	}

	cita, err := e.almacen.CitaPorID(ctx, idCita)
	if err != nil {
		return nil, err
	}
	if cita == nil {
		e.auditarTransicion(caller, idCita, "", string(estado), "cita no encontrada")
		return nil, &ErrorNoEncontrado{Entidad: "cita"}
	}
	if err := requireMedicoAsignado(caller, cita); err != nil {
		e.auditarTransicion(caller, idCita, string(cita.Estado), string(estado), "médico no asignado")
		return nil, err
	}

	actualizada, err := e.almacen.ActualizarEstado(ctx, idCita, estado)
	if err != nil {
		return nil, err
	}
	if actualizada == nil {
		return nil, &ErrorNoEncontrado{Entidad: "cita"}
	}

	e.auditarTransicion(caller, idCita, string(cita.Estado), string(actualizada.Estado), "ok (override)")
	e.notificarTransicion(ctx, actualizada)
	return actualizada, nil
}

// auditarTransicion reporta todo intento de transición, exitoso o no
func (e *Engine) auditarTransicion(actor *models.Usuario, idCita int, desde, hacia, resultado string) {
	nivel := models.LogLevelInfo
	if resultado != "ok" && resultado != "ok (override)" {
		nivel = models.LogLevelWarning
	}
	e.bitacora.RegistrarEvento(nivel, "Transición de cita", actor, map[string]interface{}{
		"cita_id":   idCita,
		"desde":     desde,
		"hacia":     hacia,
		"resultado": resultado,
		"action":    "cita_transicion",
	})
}

// notificarTransicion avisa al paciente del nuevo estado, best-effort
func (e *Engine) notificarTransicion(ctx context.Context, cita *models.Cita) {
	tipo := models.NotificacionInfo
	titulo := "Tu cita cambió de estado"
	switch cita.Estado {
	case models.EstadoConfirmada:
		titulo = "Tu cita fue confirmada"
		e.recordar(ctx, cita, "Recordatorio: cita confirmada para el "+cita.FechaHora.Format("02 Jan 2006 15:04"))
	case models.EstadoCancelada:
		tipo = models.NotificacionAlerta
		titulo = "Tu cita fue cancelada"
	case models.EstadoCompletada, models.EstadoAtendida:
		titulo = "Tu cita fue completada"
	}
	e.notificar(ctx, cita.IDPaciente, tipo, titulo, "Estado actual: "+string(cita.Estado))
}
