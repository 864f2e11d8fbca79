package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/miposta/citas-backend/citas"
	"github.com/miposta/citas-backend/models"
)

const columnasCita = `id_cita, id_paciente, id_medico, id_especialidad, fecha_hora,
	       motivo, notas, estado, creado_en, actualizado_en`

func escanearCita(row pgx.Row) (*models.Cita, error) {
	c := &models.Cita{}
	err := row.Scan(&c.IDCita, &c.IDPaciente, &c.IDMedico, &c.IDEspecialidad,
		&c.FechaHora, &c.Motivo, &c.Notas, &c.Estado, &c.CreadoEn, &c.ActualizadoEn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) CrearCita(ctx context.Context, c *models.Cita) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO citas (id_paciente, id_medico, id_especialidad, fecha_hora,
		                    motivo, notas, estado, creado_en, actualizado_en)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id_cita`,
		c.IDPaciente, c.IDMedico, c.IDEspecialidad, c.FechaHora,
		c.Motivo, c.Notas, c.Estado, c.CreadoEn, c.ActualizadoEn,
	).Scan(&c.IDCita)
}

func (s *Store) CitaPorID(ctx context.Context, id int) (*models.Cita, error) {
	return escanearCita(s.pool.QueryRow(ctx,
		`SELECT `+columnasCita+` FROM citas WHERE id_cita = $1`, id))
}

// CitasVisibles lista las citas dentro del alcance, de la más reciente a
// la más antigua por fecha_hora. El filtro de estado es igualdad exacta.
func (s *Store) CitasVisibles(ctx context.Context, alcance citas.Alcance, estado models.EstadoCita) ([]models.CitaDetalle, error) {
	query := `SELECT c.id_cita, c.id_paciente, c.id_medico, c.id_especialidad, c.fecha_hora,
	       c.motivo, c.notas, c.estado, c.creado_en, c.actualizado_en,
	       p.username AS paciente_nombre, m.username AS medico_nombre, e.nombre AS especialidad_nombre
	FROM citas c
	JOIN usuarios p ON c.id_paciente = p.id_usuario
	JOIN usuarios m ON c.id_medico = m.id_usuario
	LEFT JOIN especialidades e ON c.id_especialidad = e.id_especialidad
	WHERE 1=1`

	var args []interface{}
	n := 0
	arg := func(v interface{}) string {
		args = append(args, v)
		n++
		return "$" + strconv.Itoa(n)
	}

	switch {
	case alcance.Todas:
		// sin restricción
	case alcance.IDMedico != 0:
		query += ` AND c.id_medico = ` + arg(alcance.IDMedico)
	case alcance.IDPaciente != 0:
		query += ` AND c.id_paciente = ` + arg(alcance.IDPaciente)
	default:
		return []models.CitaDetalle{}, nil
	}
	if estado != "" {
		query += ` AND c.estado = ` + arg(string(estado))
	}
	query += ` ORDER BY c.fecha_hora DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CitaDetalle
	for rows.Next() {
		var c models.CitaDetalle
		if err := rows.Scan(&c.IDCita, &c.IDPaciente, &c.IDMedico, &c.IDEspecialidad,
			&c.FechaHora, &c.Motivo, &c.Notas, &c.Estado, &c.CreadoEn, &c.ActualizadoEn,
			&c.PacienteNombre, &c.MedicoNombre, &c.EspecialidadNombre); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TransicionarEstado aplica el cambio de estado como un único UPDATE
// condicionado al estado actual. Devuelve (nil, nil) cuando ninguna fila
// cumplió la condición: de dos transiciones concurrentes solo una gana.
func (s *Store) TransicionarEstado(ctx context.Context, id int, desde []models.EstadoCita, hacia models.EstadoCita) (*models.Cita, error) {
	origen := make([]string, len(desde))
	for i, e := range desde {
		origen[i] = string(e)
	}
	return escanearCita(s.pool.QueryRow(ctx,
		`UPDATE citas SET estado = $1, actualizado_en = $2
		 WHERE id_cita = $3 AND estado = ANY($4)
		 RETURNING `+columnasCita,
		hacia, time.Now(), id, origen))
}

// ActualizarEstado fija el estado sin precondición (anulación del médico)
func (s *Store) ActualizarEstado(ctx context.Context, id int, hacia models.EstadoCita) (*models.Cita, error) {
	return escanearCita(s.pool.QueryRow(ctx,
		`UPDATE citas SET estado = $1, actualizado_en = $2
		 WHERE id_cita = $3
		 RETURNING `+columnasCita,
		hacia, time.Now(), id))
}
