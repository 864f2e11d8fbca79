package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/auth"
	"github.com/miposta/citas-backend/models"
)

// Secret devuelve la clave de firma JWT desde el entorno
func Secret() string {
	return os.Getenv("JWT_SECRET")
}

// JWTMiddleware valida el token de acceso y deja la identidad del
// solicitante en el contexto de la petición.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		claims, err := auth.ParseToken(tokenString, Secret())
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_username", claims.Username)
		c.Locals("user_rol", string(claims.Rol))
		c.Locals("user_email", claims.Email)

		return c.Next()
	}
}

// RequireRol corta la petición si el rol autenticado no está permitido.
// Las reglas finas de visibilidad viven en el motor de citas; esto solo
// protege rutas completas.
func RequireRol(permitidos ...models.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals("user_rol").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{
				"error": "Rol de usuario no encontrado",
			})
		}

		for _, p := range permitidos {
			if rol == string(p) {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Acceso denegado: permisos insuficientes",
		})
	}
}
