package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/models"
)

// ObtenerEspecialidades lista las especialidades activas. Con ?todas=true
// un admin ve también las desactivadas.
func (h *Handler) ObtenerEspecialidades(c *fiber.Ctx) error {
	soloActivas := true
	if c.Query("todas") == "true" && caller(c).Rol == models.RolAdmin {
		soloActivas = false
	}

	especialidades, err := h.store.ListarEspecialidades(c.Context(), soloActivas)
	if err != nil {
		return responderError(c, "F30", "listar especialidades", err)
	}

	return respuesta(c, 200, "S30", fiber.Map{
		"especialidades": especialidades,
		"total":          len(especialidades),
	})
}

// CrearEspecialidad da de alta una especialidad. Solo admin.
func (h *Handler) CrearEspecialidad(c *fiber.Ctx) error {
	var esp models.Especialidad
	if err := c.BodyParser(&esp); err != nil {
		return respuesta(c, 400, "F31", fiber.Map{"error": "Datos inválidos"})
	}

	esp.Nombre = strings.TrimSpace(esp.Nombre)
	if esp.Nombre == "" {
		return respuesta(c, 400, "F31", fiber.Map{"error": "El nombre es obligatorio"})
	}
	esp.Activo = true

	if err := h.store.CrearEspecialidad(c.Context(), &esp); err != nil {
		return responderError(c, "F31", "crear especialidad", err)
	}

	return respuesta(c, 201, "S31", fiber.Map{
		"mensaje":      "Especialidad creada exitosamente",
		"especialidad": esp,
	})
}

// ActualizarEspecialidad modifica nombre, descripción o estado. Solo admin.
func (h *Handler) ActualizarEspecialidad(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F32", fiber.Map{"error": "ID inválido"})
	}

	actual, err := h.store.EspecialidadPorID(c.Context(), id)
	if err != nil {
		return responderError(c, "F32", "actualizar especialidad", err)
	}
	if actual == nil {
		return respuesta(c, 404, "F32", fiber.Map{"error": "Especialidad no encontrada"})
	}

	var esp models.Especialidad
	if err := c.BodyParser(&esp); err != nil {
		return respuesta(c, 400, "F32", fiber.Map{"error": "Datos inválidos"})
	}
	esp.IDEspecialidad = id
	if strings.TrimSpace(esp.Nombre) == "" {
		esp.Nombre = actual.Nombre
	}

	if err := h.store.ActualizarEspecialidad(c.Context(), &esp); err != nil {
		return responderError(c, "F32", "actualizar especialidad", err)
	}

	return respuesta(c, 200, "S32", fiber.Map{
		"mensaje":      "Especialidad actualizada",
		"especialidad": esp,
	})
}

// EliminarEspecialidad desactiva la especialidad. Las citas que la
// referencian conservan el vínculo; no hay borrado físico.
func (h *Handler) EliminarEspecialidad(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F33", fiber.Map{"error": "ID inválido"})
	}

	actual, err := h.store.EspecialidadPorID(c.Context(), id)
	if err != nil {
		return responderError(c, "F33", "eliminar especialidad", err)
	}
	if actual == nil {
		return respuesta(c, 404, "F33", fiber.Map{"error": "Especialidad no encontrada"})
	}

	if err := h.store.DesactivarEspecialidad(c.Context(), id); err != nil {
		return responderError(c, "F33", "eliminar especialidad", err)
	}

	return respuesta(c, 200, "S33", fiber.Map{"mensaje": "Especialidad desactivada"})
}
