package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/models"
)

// ObtenerNotificaciones lista las notificaciones del usuario autenticado,
// las no leídas primero. Con ?no_leidas=true solo devuelve las pendientes.
func (h *Handler) ObtenerNotificaciones(c *fiber.Ctx) error {
	quien := caller(c)

	var (
		notificaciones []models.Notificacion
		err            error
	)
	if c.Query("no_leidas") == "true" {
		notificaciones, err = h.store.NotificacionesNoLeidas(c.Context(), quien.IDUsuario)
	} else {
		notificaciones, err = h.store.NotificacionesDeUsuario(c.Context(), quien.IDUsuario)
	}
	if err != nil {
		return responderError(c, "F40", "listar notificaciones", err)
	}

	return respuesta(c, 200, "S40", fiber.Map{
		"notificaciones": notificaciones,
		"total":          len(notificaciones),
	})
}

// MarcarNotificacionLeida marca como leída una notificación propia. El
// WHERE del store exige que pertenezca al solicitante, así que intentar
// marcar la de otro usuario responde 404 igual que una inexistente.
func (h *Handler) MarcarNotificacionLeida(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F41", fiber.Map{"error": "ID inválido"})
	}

	marcada, err := h.store.MarcarLeida(c.Context(), id, caller(c).IDUsuario)
	if err != nil {
		return responderError(c, "F41", "marcar notificación", err)
	}
	if !marcada {
		return respuesta(c, 404, "F41", fiber.Map{"error": "Notificación no encontrada"})
	}

	return respuesta(c, 200, "S41", fiber.Map{"mensaje": "Notificación marcada como leída"})
}
