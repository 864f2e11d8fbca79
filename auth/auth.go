// Package auth es el colaborador de identidad: hash de contraseñas,
// emisión y validación de tokens de acceso y tokens de refresco.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/miposta/citas-backend/models"
)

var ErrBadToken = errors.New("token inválido")

// AccessTokenTTL es la vigencia del token de acceso
const AccessTokenTTL = 15 * time.Minute

// RefreshTokenTTL es la vigencia del token de refresco
const RefreshTokenTTL = 7 * 24 * time.Hour

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// Claims personalizados para el JWT
type Claims struct {
	UserID   int        `json:"user_id"`
	Username string     `json:"username"`
	Rol      models.Rol `json:"rol"`
	Email    string     `json:"email"`
	jwt.RegisteredClaims
}

// MakeToken genera un token de acceso de corta vida
func MakeToken(u *models.Usuario, secret string) (string, error) {
	c := Claims{
		UserID:   u.IDUsuario,
		Username: u.Username,
		Rol:      u.Rol,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseToken valida el token y devuelve los claims
func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// bloquear confusión de algoritmos
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}

// GenerateRefreshToken produce el token de refresco opaco que recibe el
// cliente y el hash que se persiste.
func GenerateRefreshToken() (raw string, hash string) {
	raw = uuid.NewString()
	return raw, HashRefreshToken(raw)
}

// HashRefreshToken normaliza el token recibido para buscarlo en la base
func HashRefreshToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
