package store

import (
	"context"
	"time"

	"github.com/miposta/citas-backend/models"
)

func (s *Store) CrearNotificacion(ctx context.Context, n *models.Notificacion) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO notificaciones (id_usuario, tipo, titulo, mensaje, leida, creada_en)
		 VALUES ($1,$2,$3,$4,false,$5) RETURNING id_notificacion`,
		n.IDUsuario, n.Tipo, n.Titulo, n.Mensaje, n.CreadaEn,
	).Scan(&n.IDNotificacion)
}

func (s *Store) NotificacionesDeUsuario(ctx context.Context, idUsuario int) ([]models.Notificacion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_notificacion, id_usuario, tipo, titulo, mensaje, leida, creada_en
		 FROM notificaciones WHERE id_usuario = $1
		 ORDER BY leida, creada_en DESC`, idUsuario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notificacion
	for rows.Next() {
		var n models.Notificacion
		if err := rows.Scan(&n.IDNotificacion, &n.IDUsuario, &n.Tipo, &n.Titulo,
			&n.Mensaje, &n.Leida, &n.CreadaEn); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) NotificacionesNoLeidas(ctx context.Context, idUsuario int) ([]models.Notificacion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_notificacion, id_usuario, tipo, titulo, mensaje, leida, creada_en
		 FROM notificaciones WHERE id_usuario = $1 AND leida = false
		 ORDER BY creada_en DESC`, idUsuario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notificacion
	for rows.Next() {
		var n models.Notificacion
		if err := rows.Scan(&n.IDNotificacion, &n.IDUsuario, &n.Tipo, &n.Titulo,
			&n.Mensaje, &n.Leida, &n.CreadaEn); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarcarLeida marca la notificación del usuario; devuelve false si no es
// suya o no existe.
func (s *Store) MarcarLeida(ctx context.Context, idNotificacion, idUsuario int) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notificaciones SET leida = true
		 WHERE id_notificacion = $1 AND id_usuario = $2`, idNotificacion, idUsuario)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CrearRecordatorio(ctx context.Context, r *models.Recordatorio) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO recordatorios (id_cita, fecha_envio, mensaje, enviado)
		 VALUES ($1,$2,$3,false) RETURNING id_recordatorio`,
		r.IDCita, r.FechaEnvio, r.Mensaje,
	).Scan(&r.IDRecordatorio)
}

func (s *Store) RecordatoriosDeCita(ctx context.Context, idCita int) ([]models.Recordatorio, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_recordatorio, id_cita, fecha_envio, mensaje, enviado, fecha_enviado
		 FROM recordatorios WHERE id_cita = $1 ORDER BY fecha_envio DESC`, idCita)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Recordatorio
	for rows.Next() {
		var r models.Recordatorio
		if err := rows.Scan(&r.IDRecordatorio, &r.IDCita, &r.FechaEnvio,
			&r.Mensaje, &r.Enviado, &r.FechaEnviado); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarcarEnviado registra el envío de un recordatorio
func (s *Store) MarcarEnviado(ctx context.Context, idRecordatorio int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE recordatorios SET enviado = true, fecha_enviado = $1
		 WHERE id_recordatorio = $2`, time.Now(), idRecordatorio)
	return err
}
