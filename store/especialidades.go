package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/miposta/citas-backend/models"
)

func (s *Store) CrearEspecialidad(ctx context.Context, e *models.Especialidad) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO especialidades (nombre, descripcion, activo)
		 VALUES ($1,$2,$3) RETURNING id_especialidad`,
		e.Nombre, e.Descripcion, e.Activo,
	).Scan(&e.IDEspecialidad)
}

func (s *Store) EspecialidadPorID(ctx context.Context, id int) (*models.Especialidad, error) {
	e := &models.Especialidad{}
	err := s.pool.QueryRow(ctx,
		`SELECT id_especialidad, nombre, descripcion, activo
		 FROM especialidades WHERE id_especialidad = $1`, id,
	).Scan(&e.IDEspecialidad, &e.Nombre, &e.Descripcion, &e.Activo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) ListarEspecialidades(ctx context.Context, soloActivas bool) ([]models.Especialidad, error) {
	query := `SELECT id_especialidad, nombre, descripcion, activo FROM especialidades`
	if soloActivas {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Especialidad
	for rows.Next() {
		var e models.Especialidad
		if err := rows.Scan(&e.IDEspecialidad, &e.Nombre, &e.Descripcion, &e.Activo); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ActualizarEspecialidad(ctx context.Context, e *models.Especialidad) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE especialidades SET nombre=$1, descripcion=$2, activo=$3
		 WHERE id_especialidad = $4`,
		e.Nombre, e.Descripcion, e.Activo, e.IDEspecialidad)
	return err
}

// DesactivarEspecialidad es la baja lógica: las citas existentes siguen
// referenciando la fila.
func (s *Store) DesactivarEspecialidad(ctx context.Context, id int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE especialidades SET activo = false WHERE id_especialidad = $1`, id)
	return err
}
