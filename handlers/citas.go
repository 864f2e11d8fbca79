package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/citas"
	"github.com/miposta/citas-backend/models"
)

// CrearCita agenda una cita nueva. Solo pacientes; el motor valida el
// médico, la especialidad y deja la cita en PENDIENTE.
func (h *Handler) CrearCita(c *fiber.Ctx) error {
	var req models.CrearCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return respuesta(c, 400, "F10", fiber.Map{"error": "Datos inválidos"})
	}

	cita, err := h.engine.CrearCita(c.Context(), caller(c), req)
	if err != nil {
		return responderError(c, "F10", "crear cita", err)
	}

	return respuesta(c, 201, "S10", fiber.Map{
		"mensaje": "Cita agendada exitosamente",
		"cita":    cita,
	})
}

// ObtenerCitas lista las citas visibles para el solicitante según su rol,
// con filtro opcional ?estado=.
func (h *Handler) ObtenerCitas(c *fiber.Ctx) error {
	estado := models.EstadoCita(c.Query("estado"))

	visibles, err := h.engine.CitasVisibles(c.Context(), caller(c), estado)
	if err != nil {
		return responderError(c, "F11", "listar citas", err)
	}

	return respuesta(c, 200, "S11", fiber.Map{
		"citas": visibles,
		"total": len(visibles),
	})
}

// ObtenerCitaPorID devuelve una cita concreta si el solicitante puede verla.
func (h *Handler) ObtenerCitaPorID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F11", fiber.Map{"error": "ID inválido"})
	}

	cita, err := h.engine.CitaVisible(c.Context(), caller(c), id)
	if err != nil {
		return responderError(c, "F11", "obtener cita", err)
	}

	return respuesta(c, 200, "S11", fiber.Map{"cita": cita})
}

// ConfirmarCita pasa una cita PENDIENTE a CONFIRMADA (médico asignado).
func (h *Handler) ConfirmarCita(c *fiber.Ctx) error {
	return h.transicionar(c, citas.AccionConfirmar, "Cita confirmada")
}

// CancelarCita cancela una cita PENDIENTE o CONFIRMADA (médico asignado).
func (h *Handler) CancelarCita(c *fiber.Ctx) error {
	return h.transicionar(c, citas.AccionCancelar, "Cita cancelada")
}

// CompletarCita marca una cita como COMPLETADA (médico asignado).
func (h *Handler) CompletarCita(c *fiber.Ctx) error {
	return h.transicionar(c, citas.AccionCompletar, "Cita completada")
}

func (h *Handler) transicionar(c *fiber.Ctx, accion citas.Accion, mensaje string) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F12", fiber.Map{"error": "ID inválido"})
	}

	cita, err := h.engine.Transicionar(c.Context(), caller(c), id, accion)
	if err != nil {
		return responderError(c, "F12", "transición de cita", err)
	}

	return respuesta(c, 200, "S12", fiber.Map{
		"mensaje": mensaje,
		"cita":    cita,
	})
}

// CambiarEstadoCita fija el estado directamente, sin pasar por la máquina
// de transiciones. Queda registrado en bitácora como override.
func (h *Handler) CambiarEstadoCita(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F13", fiber.Map{"error": "ID inválido"})
	}

	var req models.CambiarEstadoRequest
	if err := c.BodyParser(&req); err != nil {
		return respuesta(c, 400, "F13", fiber.Map{"error": "Datos inválidos"})
	}

	cita, err := h.engine.CambiarEstado(c.Context(), caller(c), id, req.Estado)
	if err != nil {
		return responderError(c, "F13", "cambio de estado", err)
	}

	return respuesta(c, 200, "S13", fiber.Map{
		"mensaje": "Estado actualizado",
		"cita":    cita,
	})
}
