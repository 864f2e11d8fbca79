package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Los tableros calculan sus agregados sobre el mismo conjunto de citas
// que el listado del rol, así los totales siempre coinciden con lo que el
// usuario ve. La ruta ya exige el rol; el motor lo vuelve a verificar.

func (h *Handler) DashboardAdmin(c *fiber.Ctx) error {
	resumen, err := h.engine.TableroAdmin(c.Context(), caller(c))
	if err != nil {
		return responderError(c, "F50", "dashboard admin", err)
	}
	return respuesta(c, 200, "S50", fiber.Map{"resumen": resumen})
}

func (h *Handler) DashboardMedico(c *fiber.Ctx) error {
	resumen, err := h.engine.TableroMedico(c.Context(), caller(c))
	if err != nil {
		return responderError(c, "F50", "dashboard medico", err)
	}
	return respuesta(c, 200, "S50", fiber.Map{"resumen": resumen})
}

func (h *Handler) DashboardPaciente(c *fiber.Ctx) error {
	resumen, err := h.engine.TableroPaciente(c.Context(), caller(c))
	if err != nil {
		return responderError(c, "F50", "dashboard paciente", err)
	}
	return respuesta(c, 200, "S50", fiber.Map{"resumen": resumen})
}
