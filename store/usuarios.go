package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/miposta/citas-backend/models"
)

const columnasUsuario = `id_usuario, username, email, password, rol, nombre, apellido,
	       telefono, direccion, fecha_nacimiento, mfa_enabled, mfa_secret, backup_codes,
	       created_at, updated_at`

func escanearUsuario(row pgx.Row) (*models.Usuario, error) {
	u := &models.Usuario{}
	err := row.Scan(&u.IDUsuario, &u.Username, &u.Email, &u.Password, &u.Rol, &u.Nombre,
		&u.Apellido, &u.Telefono, &u.Direccion, &u.FechaNacimiento, &u.MFAEnabled,
		&u.MFASecret, &u.BackupCodes, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) CrearUsuario(ctx context.Context, u *models.Usuario) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO usuarios (username, email, password, rol, nombre, apellido,
		                       telefono, direccion, fecha_nacimiento, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id_usuario`,
		u.Username, u.Email, u.Password, u.Rol, u.Nombre, u.Apellido,
		u.Telefono, u.Direccion, u.FechaNacimiento, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.IDUsuario)
}

func (s *Store) UsuarioPorID(ctx context.Context, id int) (*models.Usuario, error) {
	return escanearUsuario(s.pool.QueryRow(ctx,
		`SELECT `+columnasUsuario+` FROM usuarios WHERE id_usuario = $1`, id))
}

func (s *Store) UsuarioPorUsername(ctx context.Context, username string) (*models.Usuario, error) {
	return escanearUsuario(s.pool.QueryRow(ctx,
		`SELECT `+columnasUsuario+` FROM usuarios WHERE username = $1`, username))
}

func (s *Store) UsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error) {
	return escanearUsuario(s.pool.QueryRow(ctx,
		`SELECT `+columnasUsuario+` FROM usuarios WHERE email = $1`, email))
}

func (s *Store) ContarUsuarios(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&n)
	return n, err
}

func (s *Store) ContarUsuariosPorRol(ctx context.Context, rol models.Rol) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios WHERE rol = $1`, rol).Scan(&n)
	return n, err
}

func (s *Store) ListarUsuarios(ctx context.Context) ([]models.UsuarioResponse, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_usuario, username, email, rol, nombre, apellido, telefono,
		        direccion, fecha_nacimiento, created_at
		 FROM usuarios ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return escanearUsuarios(rows)
}

func (s *Store) ListarUsuariosPorRol(ctx context.Context, rol models.Rol) ([]models.UsuarioResponse, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_usuario, username, email, rol, nombre, apellido, telefono,
		        direccion, fecha_nacimiento, created_at
		 FROM usuarios WHERE rol = $1 ORDER BY created_at DESC`, rol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return escanearUsuarios(rows)
}

func escanearUsuarios(rows pgx.Rows) ([]models.UsuarioResponse, error) {
	var out []models.UsuarioResponse
	for rows.Next() {
		var u models.UsuarioResponse
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Rol, &u.Nombre,
			&u.Apellido, &u.Telefono, &u.Direccion, &u.FechaNacimiento, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ActualizarPerfil modifica únicamente los datos de contacto. El rol y
// las credenciales nunca cambian por esta vía.
func (s *Store) ActualizarPerfil(ctx context.Context, id int, p models.PerfilRequest) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE usuarios SET nombre=$1, apellido=$2, telefono=$3, direccion=$4,
		        fecha_nacimiento=$5, updated_at=$6
		 WHERE id_usuario = $7`,
		p.Nombre, p.Apellido, p.Telefono, p.Direccion, p.FechaNacimiento, time.Now(), id)
	return err
}

// GuardarMFA persiste el secreto TOTP y los códigos de respaldo
func (s *Store) GuardarMFA(ctx context.Context, id int, secret, backupCodes string, enabled bool) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE usuarios SET mfa_secret=$1, backup_codes=$2, mfa_enabled=$3, updated_at=$4
		 WHERE id_usuario = $5`,
		secret, backupCodes, enabled, time.Now(), id)
	return err
}
