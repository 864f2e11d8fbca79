package models

import (
	"time"
)

// RegistroBitacora representa la tabla bitacora: una entrada por petición
// HTTP y por evento de auditoría del ciclo de vida de citas.
type RegistroBitacora struct {
	IDRegistro   int       `json:"id_registro" db:"id_registro"`
	Method       string    `json:"method" db:"method"`
	Path         string    `json:"path" db:"path"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ResponseTime *int      `json:"response_time" db:"response_time"`
	UserAgent    *string   `json:"user_agent" db:"user_agent"`
	IP           string    `json:"ip" db:"ip"`
	Body         *string   `json:"body" db:"body"`
	Params       *string   `json:"params" db:"params"`
	Query        *string   `json:"query" db:"query"`
	Email        *string   `json:"email" db:"email"`
	Username     *string   `json:"username" db:"username"`
	Role         *string   `json:"role" db:"role"`
	LogLevel     string    `json:"log_level" db:"log_level"`
	Environment  string    `json:"environment" db:"environment"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	URL          *string   `json:"url" db:"url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CrearRegistroRequest es la entrada pendiente de insertar en bitacora
type CrearRegistroRequest struct {
	Method       string  `json:"method" validate:"required,max=10"`
	Path         string  `json:"path" validate:"required,max=500"`
	StatusCode   int     `json:"status_code" validate:"required"`
	ResponseTime *int    `json:"response_time,omitempty"`
	UserAgent    *string `json:"user_agent,omitempty"`
	IP           string  `json:"ip" validate:"required,max=45"`
	Body         *string `json:"body,omitempty"`
	Params       *string `json:"params,omitempty"`
	Query        *string `json:"query,omitempty"`
	Email        *string `json:"email,omitempty"`
	Username     *string `json:"username,omitempty"`
	Role         *string `json:"role,omitempty"`
	LogLevel     *string `json:"log_level,omitempty"`
	Environment  *string `json:"environment,omitempty"`
	URL          *string `json:"url,omitempty"`
}

// Constantes para niveles de log
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelDebug   = "debug"
	LogLevelSuccess = "success"
)

// Constantes para ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)
