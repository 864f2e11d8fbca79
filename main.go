package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/miposta/citas-backend/auth"
	"github.com/miposta/citas-backend/citas"
	"github.com/miposta/citas-backend/database"
	"github.com/miposta/citas-backend/handlers"
	"github.com/miposta/citas-backend/routes"
	"github.com/miposta/citas-backend/store"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Println("Advertencia: No se pudo cargar el archivo .env")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET es requerido")
	}

	// Conectar a la base de datos y aplicar el esquema
	database.ConnectDB()
	defer database.CloseDB()
	database.Migrate("db/migrations/001_init.sql")
	log.Println("Conexión a la base de datos establecida")

	// Armar las capas: store sobre el pool, motor de citas sobre el store
	st := store.New(database.GetDB())
	engine := citas.New(st, st, auth.HashPassword)
	h := handlers.New(engine, st)

	// Crear instancia de Fiber con configuración
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName: "Sistema de Gestión de Citas API v1.0.0",
	})

	// Configurar rutas
	routes.SetupRoutes(app, h)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	// Obtener puerto del entorno o usar 3000 por defecto
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	// Iniciar servidor
	log.Printf("Servidor de citas iniciado en puerto %s", port)
	log.Printf("Estado del sistema: http://localhost:%s/health", port)
	log.Fatal(app.Listen(":" + port))
}
