package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/models"
)

// ObtenerUsuarios lista todos los usuarios. Solo admin (la ruta lo exige).
// Acepta ?rol= para filtrar por rol.
func (h *Handler) ObtenerUsuarios(c *fiber.Ctx) error {
	var (
		usuarios []models.UsuarioResponse
		err      error
	)

	if rol := models.Rol(c.Query("rol")); rol != "" {
		if !models.RolValido(rol) {
			return respuesta(c, 400, "F20", fiber.Map{"error": "Rol inválido"})
		}
		usuarios, err = h.store.ListarUsuariosPorRol(c.Context(), rol)
	} else {
		usuarios, err = h.store.ListarUsuarios(c.Context())
	}
	if err != nil {
		return responderError(c, "F20", "listar usuarios", err)
	}

	return respuesta(c, 200, "S20", fiber.Map{
		"usuarios": usuarios,
		"total":    len(usuarios),
	})
}

// ObtenerUsuariosPorRol lista los usuarios de un rol concreto. Solo admin.
func (h *Handler) ObtenerUsuariosPorRol(c *fiber.Ctx) error {
	rol := models.Rol(c.Params("rol"))
	if !models.RolValido(rol) {
		return respuesta(c, 400, "F20", fiber.Map{"error": "Rol inválido"})
	}

	usuarios, err := h.store.ListarUsuariosPorRol(c.Context(), rol)
	if err != nil {
		return responderError(c, "F20", "listar usuarios por rol", err)
	}

	return respuesta(c, 200, "S20", fiber.Map{
		"usuarios": usuarios,
		"total":    len(usuarios),
	})
}

// ObtenerMedicos lista los médicos activos. Visible para cualquier usuario
// autenticado: los pacientes la necesitan para agendar.
func (h *Handler) ObtenerMedicos(c *fiber.Ctx) error {
	medicos, err := h.store.ListarUsuariosPorRol(c.Context(), models.RolMedico)
	if err != nil {
		return responderError(c, "F20", "listar medicos", err)
	}

	return respuesta(c, 200, "S20", fiber.Map{
		"medicos": medicos,
		"total":   len(medicos),
	})
}

// ObtenerUsuarioPorID devuelve un usuario. Admin puede ver cualquiera;
// el resto solo su propio registro.
func (h *Handler) ObtenerUsuarioPorID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respuesta(c, 400, "F21", fiber.Map{"error": "ID inválido"})
	}

	quien := caller(c)
	if quien.Rol != models.RolAdmin && quien.IDUsuario != id {
		return respuesta(c, 403, "F21", fiber.Map{"error": "No tienes permisos para ver este usuario"})
	}

	usuario, err := h.store.UsuarioPorID(c.Context(), id)
	if err != nil {
		return responderError(c, "F21", "obtener usuario", err)
	}
	if usuario == nil {
		return respuesta(c, 404, "F21", fiber.Map{"error": "Usuario no encontrado"})
	}

	return respuesta(c, 200, "S21", fiber.Map{"usuario": usuario.Publico()})
}

// ObtenerPerfil devuelve el perfil del usuario autenticado.
func (h *Handler) ObtenerPerfil(c *fiber.Ctx) error {
	usuario, err := h.store.UsuarioPorID(c.Context(), caller(c).IDUsuario)
	if err != nil {
		return responderError(c, "F22", "obtener perfil", err)
	}
	if usuario == nil {
		return respuesta(c, 404, "F22", fiber.Map{"error": "Usuario no encontrado"})
	}

	return respuesta(c, 200, "S22", fiber.Map{"usuario": usuario.Publico()})
}

// ActualizarPerfil modifica los datos de contacto del usuario autenticado.
// Username, email, rol y contraseña no se tocan por esta vía.
func (h *Handler) ActualizarPerfil(c *fiber.Ctx) error {
	var req models.PerfilRequest
	if err := c.BodyParser(&req); err != nil {
		return respuesta(c, 400, "F22", fiber.Map{"error": "Datos inválidos"})
	}

	quien := caller(c)
	if err := h.store.ActualizarPerfil(c.Context(), quien.IDUsuario, req); err != nil {
		return responderError(c, "F22", "actualizar perfil", err)
	}

	usuario, err := h.store.UsuarioPorID(c.Context(), quien.IDUsuario)
	if err != nil || usuario == nil {
		return respuesta(c, 200, "S22", fiber.Map{"mensaje": "Perfil actualizado"})
	}

	return respuesta(c, 200, "S22", fiber.Map{
		"mensaje": "Perfil actualizado",
		"usuario": usuario.Publico(),
	})
}
