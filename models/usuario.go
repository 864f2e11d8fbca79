package models

import (
	"time"
)

// Rol es la enumeración cerrada de roles del sistema.
// Se asigna al registrar y nunca cambia.
type Rol string

const (
	RolAdmin    Rol = "ADMIN"
	RolMedico   Rol = "MEDICO"
	RolPaciente Rol = "PACIENTE"
)

// RolValido verifica que el rol pertenezca a la enumeración
func RolValido(r Rol) bool {
	switch r {
	case RolAdmin, RolMedico, RolPaciente:
		return true
	}
	return false
}

// Usuario representa la tabla usuarios en la base de datos
type Usuario struct {
	IDUsuario       int        `json:"id_usuario" db:"id_usuario"`
	Username        string     `json:"username" db:"username"`
	Email           string     `json:"email" db:"email"`
	Password        string     `json:"password,omitempty" db:"password"`
	Rol             Rol        `json:"rol" db:"rol"`
	Nombre          string     `json:"nombre" db:"nombre"`
	Apellido        string     `json:"apellido" db:"apellido"`
	Telefono        string     `json:"telefono" db:"telefono"`
	Direccion       string     `json:"direccion" db:"direccion"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty" db:"fecha_nacimiento"`
	MFAEnabled      bool       `json:"mfa_enabled" db:"mfa_enabled"`
	MFASecret       string     `json:"-" db:"mfa_secret"`
	BackupCodes     string     `json:"-" db:"backup_codes"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// UsuarioResponse representa la respuesta sin datos sensibles
type UsuarioResponse struct {
	ID              int        `json:"id_usuario"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Rol             Rol        `json:"rol"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Telefono        string     `json:"telefono"`
	Direccion       string     `json:"direccion"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Publico limpia los campos sensibles para respuestas HTTP
func (u *Usuario) Publico() UsuarioResponse {
	return UsuarioResponse{
		ID:              u.IDUsuario,
		Username:        u.Username,
		Email:           u.Email,
		Rol:             u.Rol,
		Nombre:          u.Nombre,
		Apellido:        u.Apellido,
		Telefono:        u.Telefono,
		Direccion:       u.Direccion,
		FechaNacimiento: u.FechaNacimiento,
		CreatedAt:       u.CreatedAt,
	}
}

// RegistroRequest representa la solicitud de registro
type RegistroRequest struct {
	Username        string     `json:"username" validate:"required"`
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required,min=8"`
	Rol             Rol        `json:"rol"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Telefono        string     `json:"telefono"`
	Direccion       string     `json:"direccion"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
}

// PerfilRequest actualiza únicamente datos de contacto, nunca el rol
type PerfilRequest struct {
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Telefono        string     `json:"telefono"`
	Direccion       string     `json:"direccion"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
}

// LoginRequest representa la solicitud de login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfa_code,omitempty"`
}

// RefreshToken representa un token de actualización
type RefreshToken struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	IsRevoked bool      `json:"is_revoked" db:"is_revoked"`
}

// LoginResponse representa la respuesta del login con tokens
type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // segundos
	Usuario      UsuarioResponse `json:"usuario"`
}

// RefreshRequest para solicitar nuevo token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse para respuesta de renovación
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Tipos para MFA
type MFASetupRequest struct {
	Password string `json:"password" validate:"required"`
}

type MFASetupResponse struct {
	Secret      string   `json:"secret"`
	QRCodeURL   string   `json:"qr_code_url"`
	BackupCodes []string `json:"backup_codes"`
}

type MFAVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}
