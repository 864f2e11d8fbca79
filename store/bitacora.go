package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/miposta/citas-backend/models"
)

// InsertarRegistro guarda una entrada de bitácora
func (s *Store) InsertarRegistro(ctx context.Context, r models.CrearRegistroRequest) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bitacora (
			method, path, status_code, response_time, user_agent, ip,
			body, params, query, email, username, role, log_level,
			environment, timestamp, url, created_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		r.Method, r.Path, r.StatusCode, r.ResponseTime, r.UserAgent, r.IP,
		r.Body, r.Params, r.Query, r.Email, r.Username, r.Role, r.LogLevel,
		r.Environment, time.Now(), r.URL, time.Now())
	return err
}

// RegistrarEvento es el sumidero de auditoría del motor de citas: guarda
// el evento de forma asíncrona y nunca propaga el fallo.
func (s *Store) RegistrarEvento(nivel, mensaje string, actor *models.Usuario, datos map[string]interface{}) {
	entrada := models.CrearRegistroRequest{
		Method:      "EVENT",
		Path:        "/evento",
		StatusCode:  200,
		IP:          "127.0.0.1",
		LogLevel:    &nivel,
		Environment: entorno(),
	}
	if actor != nil {
		email := actor.Email
		username := actor.Username
		rol := string(actor.Rol)
		entrada.Email = &email
		entrada.Username = &username
		entrada.Role = &rol
	}

	if datos == nil {
		datos = map[string]interface{}{}
	}
	datos["message"] = mensaje
	bodyJSON, _ := json.Marshal(datos)
	body := string(bodyJSON)
	entrada.Body = &body

	go func() {
		if err := s.InsertarRegistro(context.Background(), entrada); err != nil {
			fmt.Printf("Error guardando evento en bitácora: %v\n", err)
		}
	}()
}

func entorno() *string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = models.EnvironmentDevelopment
	}
	return &env
}
