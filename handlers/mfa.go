package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"

	"github.com/miposta/citas-backend/auth"
	"github.com/miposta/citas-backend/models"
)

const mfaIssuer = "citas-backend"

// SetupMFA genera el secreto TOTP y los códigos de respaldo. El secreto se
// guarda pero MFA queda deshabilitado hasta que VerifyMFA confirme que el
// autenticador del usuario produce códigos válidos.
func (h *Handler) SetupMFA(c *fiber.Ctx) error {
	var req models.MFASetupRequest
	if err := c.BodyParser(&req); err != nil {
		return respuesta(c, 400, "F60", fiber.Map{"error": "Datos inválidos"})
	}

	usuario, err := h.store.UsuarioPorID(c.Context(), caller(c).IDUsuario)
	if err != nil {
		return responderError(c, "F60", "setup MFA", err)
	}
	if usuario == nil || !auth.CheckPassword(usuario.Password, req.Password) {
		return respuesta(c, 401, "F60", fiber.Map{"error": "Contraseña incorrecta"})
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: usuario.Username,
	})
	if err != nil {
		return respuesta(c, 500, "F60", fiber.Map{"error": "Error al generar el secreto"})
	}

	backupCodes := generarCodigosRespaldo(8)
	if err := h.store.GuardarMFA(c.Context(), usuario.IDUsuario, key.Secret(), strings.Join(backupCodes, ","), false); err != nil {
		return responderError(c, "F60", "setup MFA", err)
	}

	return respuesta(c, 200, "S60", fiber.Map{
		"setup": models.MFASetupResponse{
			Secret:      key.Secret(),
			QRCodeURL:   key.URL(),
			BackupCodes: backupCodes,
		},
	})
}

// VerifyMFA confirma el setup: si el código TOTP coincide con el secreto
// pendiente, MFA queda habilitado y el login empezará a exigir código.
func (h *Handler) VerifyMFA(c *fiber.Ctx) error {
	var req models.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return respuesta(c, 400, "F61", fiber.Map{"error": "Código requerido"})
	}

	usuario, err := h.store.UsuarioPorID(c.Context(), caller(c).IDUsuario)
	if err != nil {
		return responderError(c, "F61", "verificar MFA", err)
	}
	if usuario == nil || usuario.MFASecret == "" {
		return respuesta(c, 400, "F61", fiber.Map{"error": "No hay un setup de MFA pendiente"})
	}

	if !totp.Validate(req.Code, usuario.MFASecret) {
		return respuesta(c, 401, "F61", fiber.Map{"error": "Código MFA inválido"})
	}

	if err := h.store.GuardarMFA(c.Context(), usuario.IDUsuario, usuario.MFASecret, usuario.BackupCodes, true); err != nil {
		return responderError(c, "F61", "verificar MFA", err)
	}

	return respuesta(c, 200, "S61", fiber.Map{"mensaje": "MFA habilitado"})
}

// DisableMFA apaga MFA previa verificación de un código vigente.
func (h *Handler) DisableMFA(c *fiber.Ctx) error {
	var req models.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return respuesta(c, 400, "F62", fiber.Map{"error": "Código requerido"})
	}

	usuario, err := h.store.UsuarioPorID(c.Context(), caller(c).IDUsuario)
	if err != nil {
		return responderError(c, "F62", "deshabilitar MFA", err)
	}
	if usuario == nil || !usuario.MFAEnabled {
		return respuesta(c, 400, "F62", fiber.Map{"error": "MFA no está habilitado"})
	}

	if !verificarMFA(c.Context(), h, usuario, req.Code) {
		return respuesta(c, 401, "F62", fiber.Map{"error": "Código MFA inválido"})
	}

	if err := h.store.GuardarMFA(c.Context(), usuario.IDUsuario, "", "", false); err != nil {
		return responderError(c, "F62", "deshabilitar MFA", err)
	}

	return respuesta(c, 200, "S62", fiber.Map{"mensaje": "MFA deshabilitado"})
}

// generarCodigosRespaldo produce n códigos cortos de un solo uso.
func generarCodigosRespaldo(n int) []string {
	codigos := make([]string, 0, n)
	for i := 0; i < n; i++ {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		codigos = append(codigos, raw[:10])
	}
	return codigos
}
