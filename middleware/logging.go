package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/miposta/citas-backend/database"
	"github.com/miposta/citas-backend/models"
)

// LoggingMiddleware captura y registra todas las peticiones HTTP en la
// tabla bitacora.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		responseTime := int(time.Since(start).Milliseconds())
		entrada := crearRegistro(c, responseTime)

		// Guardar de forma asíncrona para no demorar la respuesta
		go guardarRegistro(entrada)

		return err
	}
}

// crearRegistro arma la entrada de bitácora a partir de la petición
func crearRegistro(c *fiber.Ctx, responseTime int) models.CrearRegistroRequest {
	var email, username, role *string
	if userEmail := c.Locals("user_email"); userEmail != nil {
		if emailStr, ok := userEmail.(string); ok && emailStr != "" {
			email = &emailStr
			username = &emailStr
		}
	}
	if userRol := c.Locals("user_rol"); userRol != nil {
		if rolStr, ok := userRol.(string); ok {
			role = &rolStr
		}
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.Split(forwarded, ",")[0]
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		ip = realIP
	}

	userAgent := c.Get("User-Agent")
	var userAgentPtr *string
	if userAgent != "" {
		userAgentPtr = &userAgent
	}

	// Body solo para métodos con cuerpo, con campos sensibles filtrados
	var bodyPtr *string
	if c.Method() == "POST" || c.Method() == "PUT" || c.Method() == "PATCH" {
		body := string(c.Body())
		if body != "" {
			body = filtrarSensibles(body)
			bodyPtr = &body
		}
	}

	var paramsPtr *string
	if len(c.AllParams()) > 0 {
		paramsJSON, _ := json.Marshal(c.AllParams())
		paramsStr := string(paramsJSON)
		paramsPtr = &paramsStr
	}

	var queryPtr *string
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		queryPtr = &qs
	}

	url := c.OriginalURL()
	var urlPtr *string
	if url != "" {
		urlPtr = &url
	}

	logLevel := nivelPorStatus(c.Response().StatusCode())

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = models.EnvironmentDevelopment
	}

	return models.CrearRegistroRequest{
		Method:       c.Method(),
		Path:         c.Path(),
		StatusCode:   c.Response().StatusCode(),
		ResponseTime: &responseTime,
		UserAgent:    userAgentPtr,
		IP:           ip,
		Body:         bodyPtr,
		Params:       paramsPtr,
		Query:        queryPtr,
		Email:        email,
		Username:     username,
		Role:         role,
		LogLevel:     &logLevel,
		Environment:  &environment,
		URL:          urlPtr,
	}
}

// filtrarSensibles oculta credenciales y secretos del body registrado
func filtrarSensibles(body string) string {
	sensibles := []string{"password", "mfa_code", "secret", "token", "backup_codes", "refresh_token", "access_token"}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		if len(body) > 1000 {
			return body[:1000] + "...[truncated]"
		}
		return body
	}

	for _, campo := range sensibles {
		if _, existe := data[campo]; existe {
			data[campo] = "[FILTERED]"
		}
	}

	filtrado, _ := json.Marshal(data)
	out := string(filtrado)
	if len(out) > 1000 {
		return out[:1000] + "...[truncated]"
	}
	return out
}

// nivelPorStatus determina el nivel de log según el status code
func nivelPorStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return models.LogLevelSuccess
	case statusCode >= 300 && statusCode < 400:
		return models.LogLevelInfo
	case statusCode >= 400 && statusCode < 500:
		return models.LogLevelWarning
	case statusCode >= 500:
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

// guardarRegistro inserta la entrada en la tabla bitacora
func guardarRegistro(r models.CrearRegistroRequest) {
	db := database.GetDB()
	if db == nil {
		fmt.Println("Error: sin conexión a la base de datos para logging")
		return
	}

	_, err := db.Exec(context.Background(),
		`INSERT INTO bitacora (
			method, path, status_code, response_time, user_agent, ip,
			body, params, query, email, username, role, log_level,
			environment, timestamp, url, created_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		r.Method, r.Path, r.StatusCode, r.ResponseTime, r.UserAgent, r.IP,
		r.Body, r.Params, r.Query, r.Email, r.Username, r.Role, r.LogLevel,
		r.Environment, time.Now(), r.URL, time.Now())

	if err != nil {
		fmt.Printf("Error guardando registro en bitácora: %v\n", err)
	}
}
