package models

import (
	"time"
)

// Tipos de notificación
const (
	NotificacionInfo         = "INFO"
	NotificacionAlerta       = "ALERTA"
	NotificacionRecordatorio = "RECORDATORIO"
	NotificacionUrgente      = "URGENTE"
)

// Notificacion representa la tabla notificaciones en la base de datos
type Notificacion struct {
	IDNotificacion int       `json:"id_notificacion" db:"id_notificacion"`
	IDUsuario      int       `json:"id_usuario" db:"id_usuario"`
	Tipo           string    `json:"tipo" db:"tipo"`
	Titulo         string    `json:"titulo" db:"titulo"`
	Mensaje        string    `json:"mensaje" db:"mensaje"`
	Leida          bool      `json:"leida" db:"leida"`
	CreadaEn       time.Time `json:"creada_en" db:"creada_en"`
}

// Recordatorio representa la tabla recordatorios en la base de datos
type Recordatorio struct {
	IDRecordatorio int        `json:"id_recordatorio" db:"id_recordatorio"`
	IDCita         int        `json:"id_cita" db:"id_cita"`
	FechaEnvio     time.Time  `json:"fecha_envio" db:"fecha_envio"`
	Mensaje        string     `json:"mensaje" db:"mensaje"`
	Enviado        bool       `json:"enviado" db:"enviado"`
	FechaEnviado   *time.Time `json:"fecha_enviado,omitempty" db:"fecha_enviado"`
}
