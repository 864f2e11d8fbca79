package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/miposta/citas-backend/handlers"
	"github.com/miposta/citas-backend/middleware"
	"github.com/miposta/citas-backend/models"
)

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	// Middleware global
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.BodySizeLimit(1024 * 1024))
	app.Use(middleware.LoggingMiddleware())

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Sistema de Gestión de Citas API",
			"version": "1.0.0",
		})
	})

	// Grupo de API
	api := app.Group("/api/v1", middleware.DefaultRateLimiter())

	// === RUTAS PÚBLICAS (Sin autenticación) ===
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", h.Registro)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", middleware.JWTMiddleware(), h.Logout)

	// === RUTAS PROTEGIDAS (Requieren autenticación) ===
	protected := api.Group("/", middleware.JWTMiddleware())

	// --- RUTAS DE CITAS ---
	citas := protected.Group("/citas")
	citas.Post("/", middleware.RequireRol(models.RolPaciente), h.CrearCita)
	citas.Get("/", h.ObtenerCitas)
	citas.Get("/:id", h.ObtenerCitaPorID)
	citas.Put("/:id/confirmar", middleware.RequireRol(models.RolMedico), h.ConfirmarCita)
	citas.Put("/:id/cancelar", middleware.RequireRol(models.RolMedico), h.CancelarCita)
	citas.Put("/:id/completar", middleware.RequireRol(models.RolMedico), h.CompletarCita)
	citas.Put("/:id/estado", middleware.RequireRol(models.RolMedico), h.CambiarEstadoCita)

	// --- RUTAS DE USUARIOS ---
	usuarios := protected.Group("/usuarios")
	usuarios.Get("/", middleware.RequireRol(models.RolAdmin), h.ObtenerUsuarios)
	usuarios.Get("/medicos", h.ObtenerMedicos)
	usuarios.Get("/perfil", h.ObtenerPerfil)
	usuarios.Put("/perfil", h.ActualizarPerfil)
	usuarios.Get("/rol/:rol", middleware.RequireRol(models.RolAdmin), h.ObtenerUsuariosPorRol)
	usuarios.Get("/:id", h.ObtenerUsuarioPorID)

	// --- RUTAS DE ESPECIALIDADES ---
	especialidades := protected.Group("/especialidades")
	especialidades.Get("/", h.ObtenerEspecialidades)
	especialidades.Post("/", middleware.RequireRol(models.RolAdmin), h.CrearEspecialidad)
	especialidades.Put("/:id", middleware.RequireRol(models.RolAdmin), h.ActualizarEspecialidad)
	especialidades.Delete("/:id", middleware.RequireRol(models.RolAdmin), h.EliminarEspecialidad)

	// --- RUTAS DE NOTIFICACIONES ---
	notificaciones := protected.Group("/notificaciones")
	notificaciones.Get("/", h.ObtenerNotificaciones)
	notificaciones.Put("/:id/leida", h.MarcarNotificacionLeida)

	// --- RUTAS DE DASHBOARD ---
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/admin", middleware.RequireRol(models.RolAdmin), h.DashboardAdmin)
	dashboard.Get("/medico", middleware.RequireRol(models.RolMedico), h.DashboardMedico)
	dashboard.Get("/paciente", middleware.RequireRol(models.RolPaciente), h.DashboardPaciente)

	// --- RUTAS MFA ---
	mfa := protected.Group("/mfa")
	mfa.Post("/setup", h.SetupMFA)
	mfa.Post("/verify", h.VerifyMFA)
	mfa.Post("/disable", h.DisableMFA)
}
