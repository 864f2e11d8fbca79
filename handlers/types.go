package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/citas"
	"github.com/miposta/citas-backend/models"
	"github.com/miposta/citas-backend/store"
)

type BodyResponse struct {
	IntCode string        `json:"intCode"`
	Data    []interface{} `json:"data"`
}

type StandardResponse struct {
	StatusCode int          `json:"statusCode"`
	Body       BodyResponse `json:"body"`
}

// Handler agrupa los colaboradores de todos los handlers HTTP
type Handler struct {
	engine *citas.Engine
	store  *store.Store
}

func New(engine *citas.Engine, st *store.Store) *Handler {
	return &Handler{engine: engine, store: st}
}

// caller reconstruye la identidad del solicitante desde los claims que
// dejó el middleware JWT. Los handlers la pasan explícita al motor.
func caller(c *fiber.Ctx) *models.Usuario {
	id, _ := c.Locals("user_id").(int)
	username, _ := c.Locals("user_username").(string)
	rol, _ := c.Locals("user_rol").(string)
	email, _ := c.Locals("user_email").(string)
	if id == 0 {
		return nil
	}
	return &models.Usuario{
		IDUsuario: id,
		Username:  username,
		Rol:       models.Rol(rol),
		Email:     email,
	}
}

func respuesta(c *fiber.Ctx, status int, intCode string, data fiber.Map) error {
	return c.Status(status).JSON(StandardResponse{
		StatusCode: status,
		Body: BodyResponse{
			IntCode: intCode,
			Data:    []interface{}{data},
		},
	})
}

// responderError traduce los errores del motor al envelope HTTP. Los
// fallos inesperados de persistencia se registran y responden 500.
func responderError(c *fiber.Ctx, intCode, operacion string, err error) error {
	var (
		validacion *citas.ErrorValidacion
		autz       *citas.ErrorAutorizacion
		noEnc      *citas.ErrorNoEncontrado
		transicion *citas.ErrorTransicionInvalida
		estado     *citas.ErrorEstadoInvalido
	)

	switch {
	case errors.As(err, &validacion):
		return respuesta(c, 400, intCode, fiber.Map{"error": validacion.Mensaje})
	case errors.As(err, &autz):
		return respuesta(c, 403, intCode, fiber.Map{"error": autz.Mensaje})
	case errors.As(err, &noEnc):
		return respuesta(c, 404, intCode, fiber.Map{"error": noEnc.Error()})
	case errors.As(err, &transicion):
		return respuesta(c, 409, intCode, fiber.Map{"error": transicion.Error()})
	case errors.As(err, &estado):
		return respuesta(c, 400, intCode, fiber.Map{"error": estado.Error()})
	}

	id, _ := c.Locals("user_id").(int)
	fmt.Printf("Error de persistencia en %s (usuario %d): %v\n", operacion, id, err)
	return respuesta(c, 500, intCode, fiber.Map{"error": "Error interno del servidor"})
}
