package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"

	"github.com/miposta/citas-backend/auth"
	"github.com/miposta/citas-backend/middleware"
	"github.com/miposta/citas-backend/models"
)

// Registro da de alta un usuario nuevo. El rol por defecto es paciente;
// solo un admin autenticado podría crear médicos, pero el alta de médicos
// se hace por el endpoint de usuarios, no por aquí.
func (h *Handler) Registro(c *fiber.Ctx) error {
	var req models.RegistroRequest
	if err := c.BodyParser(&req); err != nil {
		return respuesta(c, 400, "F01", fiber.Map{"error": "Datos inválidos"})
	}

	usuario, err := h.engine.RegistrarUsuario(c.Context(), req)
	if err != nil {
		return responderError(c, "F01", "registro", err)
	}

	return respuesta(c, 201, "S01", fiber.Map{
		"mensaje": "Usuario registrado exitosamente",
		"usuario": usuario.Publico(),
	})
}

// Login autentica por username y contraseña, valida MFA si el usuario lo
// tiene habilitado y emite el par access/refresh.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respuesta(c, 400, "F02", fiber.Map{"error": "Datos inválidos"})
	}

	usuario, err := h.store.UsuarioPorUsername(c.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		return responderError(c, "F02", "login", err)
	}
	if usuario == nil || !auth.CheckPassword(usuario.Password, req.Password) {
		return respuesta(c, 401, "F02", fiber.Map{"error": "Credenciales inválidas"})
	}

	if usuario.MFAEnabled {
		if req.MFACode == "" {
			return respuesta(c, 401, "F03", fiber.Map{
				"error":        "Código MFA requerido",
				"mfa_required": true,
			})
		}
		if !verificarMFA(c.Context(), h, usuario, req.MFACode) {
			return respuesta(c, 401, "F03", fiber.Map{"error": "Código MFA inválido"})
		}
	}

	return h.emitirTokens(c, usuario)
}

// Refresh canjea un refresh token vigente por un access token nuevo.
// El token usado se revoca y se emite uno fresco (rotación).
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return respuesta(c, 400, "F04", fiber.Map{"error": "Refresh token requerido"})
	}

	hash := auth.HashRefreshToken(req.RefreshToken)
	guardado, err := h.store.RefreshTokenPorHash(c.Context(), hash)
	if err != nil {
		return responderError(c, "F04", "refresh", err)
	}
	if guardado == nil || guardado.IsRevoked || time.Now().After(guardado.ExpiresAt) {
		return respuesta(c, 401, "F04", fiber.Map{"error": "Refresh token inválido o expirado"})
	}

	usuario, err := h.store.UsuarioPorID(c.Context(), guardado.UserID)
	if err != nil {
		return responderError(c, "F04", "refresh", err)
	}
	if usuario == nil {
		return respuesta(c, 401, "F04", fiber.Map{"error": "Refresh token inválido o expirado"})
	}

	if err := h.store.RevocarRefreshToken(c.Context(), hash); err != nil {
		return responderError(c, "F04", "refresh", err)
	}
	return h.emitirTokens(c, usuario)
}

// Logout revoca el refresh token presentado. El access token sigue siendo
// válido hasta su expiración; por eso su TTL es corto.
func (h *Handler) Logout(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return respuesta(c, 400, "F05", fiber.Map{"error": "Refresh token requerido"})
	}

	if err := h.store.RevocarRefreshToken(c.Context(), auth.HashRefreshToken(req.RefreshToken)); err != nil {
		return responderError(c, "F05", "logout", err)
	}
	return respuesta(c, 200, "S05", fiber.Map{"mensaje": "Sesión cerrada"})
}

func (h *Handler) emitirTokens(c *fiber.Ctx, usuario *models.Usuario) error {
	accessToken, err := auth.MakeToken(usuario, middleware.Secret())
	if err != nil {
		return respuesta(c, 500, "F02", fiber.Map{"error": "Error al generar token"})
	}

	rawRefresh, refreshHash := auth.GenerateRefreshToken()
	if err := h.store.GuardarRefreshToken(c.Context(), usuario.IDUsuario, refreshHash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		return responderError(c, "F02", "login", err)
	}

	return respuesta(c, 200, "S02", fiber.Map{
		"sesion": models.LoginResponse{
			AccessToken:  accessToken,
			RefreshToken: rawRefresh,
			ExpiresIn:    int(auth.AccessTokenTTL.Seconds()),
			Usuario:      usuario.Publico(),
		},
	})
}

// verificarMFA acepta un código TOTP vigente o, como respaldo, uno de los
// códigos de recuperación del usuario. Los códigos de respaldo son de un
// solo uso: al consumirse se reescribe la lista sin él.
func verificarMFA(ctx context.Context, h *Handler, usuario *models.Usuario, codigo string) bool {
	if totp.Validate(codigo, usuario.MFASecret) {
		return true
	}

	codigos := strings.Split(usuario.BackupCodes, ",")
	restantes := make([]string, 0, len(codigos))
	usado := false
	for _, backup := range codigos {
		if !usado && backup != "" && backup == codigo {
			usado = true
			continue
		}
		restantes = append(restantes, backup)
	}
	if !usado {
		return false
	}

	if err := h.store.GuardarMFA(ctx, usuario.IDUsuario, usuario.MFASecret, strings.Join(restantes, ","), usuario.MFAEnabled); err != nil {
		return false
	}
	return true
}
