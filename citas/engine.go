package citas

import (
	"context"
	"strings"
	"time"

	"github.com/miposta/citas-backend/models"
)

// Almacen es el acceso a persistencia que necesita el motor. Los métodos
// de lectura devuelven (nil, nil) cuando el registro no existe.
type Almacen interface {
	CrearUsuario(ctx context.Context, u *models.Usuario) error
	UsuarioPorID(ctx context.Context, id int) (*models.Usuario, error)
	UsuarioPorUsername(ctx context.Context, username string) (*models.Usuario, error)
	UsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error)
	ContarUsuarios(ctx context.Context) (int, error)
	ContarUsuariosPorRol(ctx context.Context, rol models.Rol) (int, error)

	EspecialidadPorID(ctx context.Context, id int) (*models.Especialidad, error)

	CrearCita(ctx context.Context, c *models.Cita) error
	CitaPorID(ctx context.Context, id int) (*models.Cita, error)
	CitasVisibles(ctx context.Context, alcance Alcance, estado models.EstadoCita) ([]models.CitaDetalle, error)
	// TransicionarEstado ejecuta el cambio como un único
	// compare-and-set sobre el estado almacenado; devuelve (nil, nil)
	// si el estado actual ya no está entre los permitidos.
	TransicionarEstado(ctx context.Context, id int, desde []models.EstadoCita, hacia models.EstadoCita) (*models.Cita, error)
	ActualizarEstado(ctx context.Context, id int, hacia models.EstadoCita) (*models.Cita, error)

	CrearNotificacion(ctx context.Context, n *models.Notificacion) error
	CrearRecordatorio(ctx context.Context, r *models.Recordatorio) error
	NotificacionesNoLeidas(ctx context.Context, idUsuario int) ([]models.Notificacion, error)
}

// Bitacora recibe los eventos de auditoría del motor. Las escrituras son
// best-effort: un fallo del sumidero nunca afecta la operación.
type Bitacora interface {
	RegistrarEvento(nivel, mensaje string, actor *models.Usuario, datos map[string]interface{})
}

// Engine aplica las reglas del ciclo de vida de citas. La identidad del
// solicitante siempre llega como parámetro explícito.
type Engine struct {
	almacen  Almacen
	bitacora Bitacora
	hash     func(string) (string, error)
	ahora    func() time.Time
}

// New crea el motor. hash es el colaborador de identidad que protege la
// contraseña antes de almacenarla.
func New(almacen Almacen, bitacora Bitacora, hash func(string) (string, error)) *Engine {
	return &Engine{
		almacen:  almacen,
		bitacora: bitacora,
		hash:     hash,
		ahora:    time.Now,
	}
}

// RegistrarUsuario crea un usuario nuevo. Username y email deben ser
// únicos y la contraseña tener al menos 8 caracteres.
func (e *Engine) RegistrarUsuario(ctx context.Context, req models.RegistroRequest) (*models.Usuario, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return nil, &ErrorValidacion{Campo: "registro", Mensaje: "completa todos los campos obligatorios"}
	}
	if len(req.Password) < 8 {
		return nil, &ErrorValidacion{Campo: "password", Mensaje: "la contraseña debe tener al menos 8 caracteres"}
	}
	rol := req.Rol
	if rol == "" {
		rol = models.RolPaciente
	}
	if !models.RolValido(rol) {
		return nil, &ErrorValidacion{Campo: "rol", Mensaje: "rol desconocido"}
	}

	if existente, err := e.almacen.UsuarioPorUsername(ctx, username); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, &ErrorValidacion{Campo: "username", Mensaje: "el nombre de usuario ya está en uso"}
	}
	if existente, err := e.almacen.UsuarioPorEmail(ctx, email); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, &ErrorValidacion{Campo: "email", Mensaje: "el email ya está registrado"}
	}

	hashed, err := e.hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := e.ahora()
	u := &models.Usuario{
		Username:        username,
		Email:           email,
		Password:        hashed,
		Rol:             rol,
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		Telefono:        req.Telefono,
		Direccion:       req.Direccion,
		FechaNacimiento: req.FechaNacimiento,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := e.almacen.CrearUsuario(ctx, u); err != nil {
		return nil, err
	}

	e.bitacora.RegistrarEvento(models.LogLevelSuccess, "Usuario registrado", u, map[string]interface{}{
		"usuario_id": u.IDUsuario,
		"rol":        string(u.Rol),
		"action":     "usuario_registrado",
	})
	return u, nil
}

// CrearCita agenda una cita nueva para el solicitante, que debe ser
// paciente. La cita nace siempre PENDIENTE.
func (e *Engine) CrearCita(ctx context.Context, caller *models.Usuario, req models.CrearCitaRequest) (*models.Cita, error) {
	if err := requireRol(caller, models.RolPaciente); err != nil {
		return nil, err
	}

	motivo := strings.TrimSpace(req.Motivo)
	if motivo == "" {
		return nil, &ErrorValidacion{Campo: "motivo", Mensaje: "el motivo es obligatorio"}
	}
	if req.FechaHora == nil || req.FechaHora.IsZero() {
		return nil, &ErrorValidacion{Campo: "fecha_hora", Mensaje: "la fecha y hora son obligatorias"}
	}

	medico, err := e.almacen.UsuarioPorID(ctx, req.IDMedico)
	if err != nil {
		return nil, err
	}
	if medico == nil || medico.Rol != models.RolMedico {
		return nil, &ErrorNoEncontrado{Entidad: "medico"}
	}

	// La especialidad se resuelve best-effort: si no existe o está
	// inactiva, la cita se crea sin especialidad en lugar de fallar.
	// Comportamiento heredado del sistema original.
	var idEspecialidad *int
	if req.IDEspecialidad != nil {
		esp, err := e.almacen.EspecialidadPorID(ctx, *req.IDEspecialidad)
		if err != nil {
			return nil, err
		}
		if esp != nil && esp.Activo {
			idEspecialidad = &esp.IDEspecialidad
		} else {
			e.bitacora.RegistrarEvento(models.LogLevelWarning, "Especialidad no resuelta al crear cita", caller, map[string]interface{}{
				"id_especialidad": *req.IDEspecialidad,
				"action":          "especialidad_descartada",
			})
		}
	}

	now := e.ahora()
	cita := &models.Cita{
		IDPaciente:     caller.IDUsuario,
		IDMedico:       medico.IDUsuario,
		IDEspecialidad: idEspecialidad,
		FechaHora:      *req.FechaHora,
		Motivo:         motivo,
		Notas:          req.Notas,
		Estado:         models.EstadoPendiente,
		CreadoEn:       now,
		ActualizadoEn:  now,
	}
	if err := e.almacen.CrearCita(ctx, cita); err != nil {
		return nil, err
	}

	e.bitacora.RegistrarEvento(models.LogLevelSuccess, "Cita creada", caller, map[string]interface{}{
		"cita_id":     cita.IDCita,
		"paciente_id": cita.IDPaciente,
		"medico_id":   cita.IDMedico,
		"estado":      string(cita.Estado),
		"action":      "cita_creada",
	})

	// Registros colaterales best-effort: no acoplan su éxito al de la
	// creación.
	e.notificar(ctx, medico.IDUsuario, models.NotificacionInfo, "Nueva cita agendada",
		"El paciente "+caller.Username+" agendó una cita para "+cita.FechaHora.Format(time.RFC822))
	e.recordar(ctx, cita, "Recordatorio: cita el "+cita.FechaHora.Format(time.RFC822))

	return cita, nil
}

// notificar agrega una notificación sin propagar errores
func (e *Engine) notificar(ctx context.Context, idUsuario int, tipo, titulo, mensaje string) {
	n := &models.Notificacion{
		IDUsuario: idUsuario,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   mensaje,
		CreadaEn:  e.ahora(),
	}
	if err := e.almacen.CrearNotificacion(ctx, n); err != nil {
		e.bitacora.RegistrarEvento(models.LogLevelError, "No se pudo crear la notificación", nil, map[string]interface{}{
			"usuario_id": idUsuario,
			"error":      err.Error(),
		})
	}
}

// recordar agrega un recordatorio 24h antes de la cita sin propagar errores
func (e *Engine) recordar(ctx context.Context, cita *models.Cita, mensaje string) {
	r := &models.Recordatorio{
		IDCita:     cita.IDCita,
		FechaEnvio: cita.FechaHora.Add(-24 * time.Hour),
		Mensaje:    mensaje,
	}
	if err := e.almacen.CrearRecordatorio(ctx, r); err != nil {
		e.bitacora.RegistrarEvento(models.LogLevelError, "No se pudo crear el recordatorio", nil, map[string]interface{}{
			"cita_id": cita.IDCita,
			"error":   err.Error(),
		})
	}
}
