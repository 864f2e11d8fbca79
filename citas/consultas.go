package citas

import (
	"context"
	"time"

	"github.com/miposta/citas-backend/models"
)

// CitasVisibles devuelve las citas que el solicitante puede ver, de la
// más reciente a la más antigua por fecha de la cita. Un filtro de
// estado opcional se aplica por igualdad exacta antes del orden. Un rol
// fuera de la enumeración obtiene el conjunto vacío.
func (e *Engine) CitasVisibles(ctx context.Context, caller *models.Usuario, estado models.EstadoCita) ([]models.CitaDetalle, error) {
	if estado != "" && !models.EstadoValido(estado) {
		return nil, &ErrorEstadoInvalido{Estado: string(estado)}
	}
	alcance, ok := alcancePara(caller)
	if !ok {
		return []models.CitaDetalle{}, nil
	}
	visibles, err := e.almacen.CitasVisibles(ctx, alcance, estado)
	if err != nil {
		return nil, err
	}
	if visibles == nil {
		visibles = []models.CitaDetalle{}
	}
	return visibles, nil
}

// CitaVisible devuelve una cita concreta si cae dentro del alcance del
// solicitante. Fuera del alcance se responde "no encontrada" para no
// revelar su existencia.
func (e *Engine) CitaVisible(ctx context.Context, caller *models.Usuario, idCita int) (*models.Cita, error) {
	alcance, ok := alcancePara(caller)
	if !ok {
		return nil, &ErrorNoEncontrado{Entidad: "cita"}
	}
	cita, err := e.almacen.CitaPorID(ctx, idCita)
	if err != nil {
		return nil, err
	}
	if cita == nil || !alcance.incluye(cita) {
		return nil, &ErrorNoEncontrado{Entidad: "cita"}
	}
	return cita, nil
}

// ResumenAdmin son los agregados del tablero administrativo
type ResumenAdmin struct {
	TotalUsuarios    int                  `json:"total_usuarios"`
	TotalMedicos     int                  `json:"total_medicos"`
	TotalPacientes   int                  `json:"total_pacientes"`
	TotalCitas       int                  `json:"total_citas"`
	CitasPendientes  int                  `json:"citas_pendientes"`
	CitasConfirmadas int                  `json:"citas_confirmadas"`
	UltimasCitas     []models.CitaDetalle `json:"ultimas_citas"`
}

// ResumenMedico son los agregados del tablero del médico
type ResumenMedico struct {
	TotalCitas         int                  `json:"total_citas"`
	CitasPendientes    int                  `json:"citas_pendientes"`
	CitasHoy           []models.CitaDetalle `json:"citas_hoy"`
	PacientesDistintos int                  `json:"pacientes_distintos"`
	UltimasCitas       []models.CitaDetalle `json:"ultimas_citas"`
}

// ResumenPaciente son los agregados del tablero del paciente
type ResumenPaciente struct {
	TotalCitas     int                   `json:"total_citas"`
	UltimasCitas   []models.CitaDetalle  `json:"ultimas_citas"`
	ProximasCitas  []models.CitaDetalle  `json:"proximas_citas"`
	Notificaciones []models.Notificacion `json:"notificaciones"`
}

// TableroAdmin calcula los agregados sobre el mismo conjunto visible que
// CitasVisibles, para que los totales siempre coincidan con el listado.
func (e *Engine) TableroAdmin(ctx context.Context, caller *models.Usuario) (*ResumenAdmin, error) {
	if err := requireRol(caller, models.RolAdmin); err != nil {
		return nil, err
	}
	visibles, err := e.CitasVisibles(ctx, caller, "")
	if err != nil {
		return nil, err
	}

	r := &ResumenAdmin{
		TotalCitas:   len(visibles),
		UltimasCitas: primeras(visibles, 5),
	}
	for _, c := range visibles {
		switch c.Estado {
		case models.EstadoPendiente:
			r.CitasPendientes++
		case models.EstadoConfirmada:
			r.CitasConfirmadas++
		}
	}

	if r.TotalUsuarios, err = e.almacen.ContarUsuarios(ctx); err != nil {
		return nil, err
	}
	if r.TotalMedicos, err = e.almacen.ContarUsuariosPorRol(ctx, models.RolMedico); err != nil {
		return nil, err
	}
	if r.TotalPacientes, err = e.almacen.ContarUsuariosPorRol(ctx, models.RolPaciente); err != nil {
		return nil, err
	}
	return r, nil
}

// TableroMedico calcula los agregados del médico sobre su conjunto visible
func (e *Engine) TableroMedico(ctx context.Context, caller *models.Usuario) (*ResumenMedico, error) {
	if err := requireRol(caller, models.RolMedico); err != nil {
		return nil, err
	}
	visibles, err := e.CitasVisibles(ctx, caller, "")
	if err != nil {
		return nil, err
	}

	hoy := e.ahora()
	pacientes := map[int]struct{}{}
	r := &ResumenMedico{
		TotalCitas:   len(visibles),
		UltimasCitas: primeras(visibles, 10),
		CitasHoy:     []models.CitaDetalle{},
	}
	for _, c := range visibles {
		pacientes[c.IDPaciente] = struct{}{}
		if c.Estado == models.EstadoPendiente {
			r.CitasPendientes++
		}
		if mismoDia(c.FechaHora, hoy) {
			r.CitasHoy = append(r.CitasHoy, c)
		}
	}
	r.PacientesDistintos = len(pacientes)
	return r, nil
}

// TableroPaciente calcula los agregados del paciente sobre su conjunto
// visible más sus notificaciones sin leer.
func (e *Engine) TableroPaciente(ctx context.Context, caller *models.Usuario) (*ResumenPaciente, error) {
	if err := requireRol(caller, models.RolPaciente); err != nil {
		return nil, err
	}
	visibles, err := e.CitasVisibles(ctx, caller, "")
	if err != nil {
		return nil, err
	}

	ahora := e.ahora()
	r := &ResumenPaciente{
		TotalCitas:    len(visibles),
		UltimasCitas:  primeras(visibles, 5),
		ProximasCitas: []models.CitaDetalle{},
	}
	for _, c := range visibles {
		if c.Estado == models.EstadoConfirmada && c.FechaHora.After(ahora) {
			r.ProximasCitas = append(r.ProximasCitas, c)
		}
	}

	r.Notificaciones, err = e.almacen.NotificacionesNoLeidas(ctx, caller.IDUsuario)
	if err != nil {
		return nil, err
	}
	if r.Notificaciones == nil {
		r.Notificaciones = []models.Notificacion{}
	}
	return r, nil
}

func primeras(citas []models.CitaDetalle, n int) []models.CitaDetalle {
	if len(citas) <= n {
		return citas
	}
	return citas[:n]
}

func mismoDia(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
