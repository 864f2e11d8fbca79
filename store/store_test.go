package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/miposta/citas-backend/citas"
	"github.com/miposta/citas-backend/models"
	"github.com/miposta/citas-backend/store"
)

func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	return store.New(pool)
}

func crearUsuario(t *testing.T, s *store.Store, rol models.Rol) *models.Usuario {
	t.Helper()
	sufijo := uuid.NewString()[:8]
	u := &models.Usuario{
		Username:  fmt.Sprintf("test-%s", sufijo),
		Email:     fmt.Sprintf("test-%s@test.com", sufijo),
		Password:  "hash",
		Rol:       rol,
		Nombre:    "Test",
		Apellido:  "Test",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.CrearUsuario(context.Background(), u); err != nil {
		t.Fatalf("crear usuario: %v", err)
	}
	return u
}

func TestUsuarioRoundtrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	u := crearUsuario(t, s, models.RolPaciente)

	porID, err := s.UsuarioPorID(ctx, u.IDUsuario)
	if err != nil || porID == nil {
		t.Fatalf("por id: %v, %v", porID, err)
	}
	if porID.Username != u.Username || porID.Rol != models.RolPaciente {
		t.Errorf("usuario recuperado: %+v", porID)
	}

	porUsername, err := s.UsuarioPorUsername(ctx, u.Username)
	if err != nil || porUsername == nil || porUsername.IDUsuario != u.IDUsuario {
		t.Errorf("por username: %+v, %v", porUsername, err)
	}

	ninguno, err := s.UsuarioPorUsername(ctx, "no-existe-"+uuid.NewString())
	if err != nil || ninguno != nil {
		t.Errorf("usuario inexistente debe ser (nil, nil): %+v, %v", ninguno, err)
	}
}

func TestCitaTransicionCAS(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	paciente := crearUsuario(t, s, models.RolPaciente)
	medico := crearUsuario(t, s, models.RolMedico)

	c := &models.Cita{
		IDPaciente:    paciente.IDUsuario,
		IDMedico:      medico.IDUsuario,
		FechaHora:     time.Now().Add(48 * time.Hour),
		Motivo:        "control",
		Estado:        models.EstadoPendiente,
		CreadoEn:      time.Now(),
		ActualizadoEn: time.Now(),
	}
	if err := s.CrearCita(ctx, c); err != nil {
		t.Fatalf("crear cita: %v", err)
	}

	// el CAS aplica desde PENDIENTE
	confirmada, err := s.TransicionarEstado(ctx, c.IDCita,
		[]models.EstadoCita{models.EstadoPendiente}, models.EstadoConfirmada)
	if err != nil {
		t.Fatalf("transicionar: %v", err)
	}
	if confirmada == nil || confirmada.Estado != models.EstadoConfirmada {
		t.Fatalf("cita tras CAS: %+v", confirmada)
	}

	// y no vuelve a aplicar cuando el estado ya cambió
	repetida, err := s.TransicionarEstado(ctx, c.IDCita,
		[]models.EstadoCita{models.EstadoPendiente}, models.EstadoConfirmada)
	if err != nil {
		t.Fatalf("segundo CAS: %v", err)
	}
	if repetida != nil {
		t.Errorf("el CAS sobre un estado ya movido debe devolver nil, obtuvo %+v", repetida)
	}
}

func TestCitasVisiblesPorAlcance(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	paciente := crearUsuario(t, s, models.RolPaciente)
	medico := crearUsuario(t, s, models.RolMedico)

	for i := 0; i < 2; i++ {
		c := &models.Cita{
			IDPaciente:    paciente.IDUsuario,
			IDMedico:      medico.IDUsuario,
			FechaHora:     time.Now().Add(time.Duration(24*(i+1)) * time.Hour),
			Motivo:        "control",
			Estado:        models.EstadoPendiente,
			CreadoEn:      time.Now(),
			ActualizadoEn: time.Now(),
		}
		if err := s.CrearCita(ctx, c); err != nil {
			t.Fatalf("crear cita: %v", err)
		}
	}

	visibles, err := s.CitasVisibles(ctx, citas.Alcance{IDPaciente: paciente.IDUsuario}, "")
	if err != nil {
		t.Fatalf("visibles: %v", err)
	}
	if len(visibles) != 2 {
		t.Fatalf("visibles = %d, se esperaban 2", len(visibles))
	}
	if visibles[0].FechaHora.Before(visibles[1].FechaHora) {
		t.Error("el listado debe ir de la más reciente a la más antigua")
	}
	for _, v := range visibles {
		if v.IDPaciente != paciente.IDUsuario {
			t.Errorf("cita fuera del alcance: %+v", v.Cita)
		}
		if v.PacienteNombre == "" || v.MedicoNombre == "" {
			t.Errorf("el detalle debe incluir los nombres: %+v", v)
		}
	}
}

func TestNotificacionMarcarLeida(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	usuario := crearUsuario(t, s, models.RolPaciente)
	otro := crearUsuario(t, s, models.RolPaciente)

	n := &models.Notificacion{
		IDUsuario: usuario.IDUsuario,
		Tipo:      models.NotificacionInfo,
		Titulo:    "prueba",
		Mensaje:   "prueba",
		CreadaEn:  time.Now(),
	}
	if err := s.CrearNotificacion(ctx, n); err != nil {
		t.Fatalf("crear notificación: %v", err)
	}

	// otro usuario no puede marcarla
	marcada, err := s.MarcarLeida(ctx, n.IDNotificacion, otro.IDUsuario)
	if err != nil {
		t.Fatalf("marcar ajena: %v", err)
	}
	if marcada {
		t.Error("una notificación ajena no debe poder marcarse")
	}

	marcada, err = s.MarcarLeida(ctx, n.IDNotificacion, usuario.IDUsuario)
	if err != nil || !marcada {
		t.Fatalf("marcar propia: %v, %v", marcada, err)
	}

	sinLeer, err := s.NotificacionesNoLeidas(ctx, usuario.IDUsuario)
	if err != nil {
		t.Fatalf("sin leer: %v", err)
	}
	for _, pendiente := range sinLeer {
		if pendiente.IDNotificacion == n.IDNotificacion {
			t.Error("la notificación marcada no debe aparecer como pendiente")
		}
	}
}
