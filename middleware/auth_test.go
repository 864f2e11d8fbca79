package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/auth"
	"github.com/miposta/citas-backend/models"
)

func appProtegida(t *testing.T, extra ...fiber.Handler) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "clave-de-prueba")

	app := fiber.New()
	handlers := append([]fiber.Handler{JWTMiddleware()}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"rol":     c.Locals("user_rol"),
		})
	})
	app.Get("/protegida", handlers...)
	return app
}

func tokenPara(t *testing.T, rol models.Rol) string {
	t.Helper()
	tok, err := auth.MakeToken(&models.Usuario{IDUsuario: 7, Username: "u", Rol: rol}, "clave-de-prueba")
	if err != nil {
		t.Fatalf("emitir token: %v", err)
	}
	return tok
}

func TestJWTMiddlewareSinToken(t *testing.T) {
	app := appProtegida(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, se esperaba 401", resp.StatusCode)
	}
}

func TestJWTMiddlewareFormatoInvalido(t *testing.T) {
	app := appProtegida(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", tokenPara(t, models.RolPaciente)) // sin prefijo Bearer
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, se esperaba 401", resp.StatusCode)
	}
}

func TestJWTMiddlewareTokenValido(t *testing.T) {
	app := appProtegida(t)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+tokenPara(t, models.RolMedico))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, se esperaba 200", resp.StatusCode)
	}
}

func TestRequireRol(t *testing.T) {
	app := appProtegida(t, RequireRol(models.RolAdmin))

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+tokenPara(t, models.RolPaciente))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("rol insuficiente: status = %d, se esperaba 403", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+tokenPara(t, models.RolAdmin))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("rol permitido: status = %d, se esperaba 200", resp.StatusCode)
	}
}
