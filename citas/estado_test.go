package citas

import (
	"errors"
	"testing"

	"github.com/miposta/citas-backend/models"
)

func TestPuedeTransicionar(t *testing.T) {
	casos := []struct {
		desde  models.EstadoCita
		accion Accion
		ok     bool
	}{
		{models.EstadoPendiente, AccionConfirmar, true},
		{models.EstadoPendiente, AccionCancelar, true},
		{models.EstadoPendiente, AccionCompletar, true},
		{models.EstadoConfirmada, AccionConfirmar, false},
		{models.EstadoConfirmada, AccionCancelar, true},
		{models.EstadoConfirmada, AccionCompletar, true},
		{models.EstadoCancelada, AccionConfirmar, false},
		{models.EstadoCancelada, AccionCancelar, false},
		{models.EstadoCancelada, AccionCompletar, false},
		{models.EstadoCompletada, AccionConfirmar, false},
		{models.EstadoCompletada, AccionCancelar, false},
		{models.EstadoCompletada, AccionCompletar, false},
		{models.EstadoAtendida, AccionConfirmar, false},
		{models.EstadoAtendida, AccionCancelar, false},
		{models.EstadoAtendida, AccionCompletar, false},
	}

	for _, c := range casos {
		err := PuedeTransicionar(c.desde, c.accion)
		if c.ok && err != nil {
			t.Errorf("%s desde %s: se esperaba permitida, error %v", c.accion, c.desde, err)
		}
		if !c.ok {
			var inv *ErrorTransicionInvalida
			if !errors.As(err, &inv) {
				t.Errorf("%s desde %s: se esperaba ErrorTransicionInvalida, obtuvo %v", c.accion, c.desde, err)
			}
		}
	}
}

func TestPuedeTransicionarAccionDesconocida(t *testing.T) {
	var val *ErrorValidacion
	if err := PuedeTransicionar(models.EstadoPendiente, Accion("archivar")); !errors.As(err, &val) {
		t.Errorf("se esperaba ErrorValidacion para acción desconocida, obtuvo %v", err)
	}
}

func TestDestino(t *testing.T) {
	casos := map[Accion]models.EstadoCita{
		AccionConfirmar: models.EstadoConfirmada,
		AccionCancelar:  models.EstadoCancelada,
		AccionCompletar: models.EstadoCompletada,
	}
	for accion, esperado := range casos {
		if got := Destino(accion); got != esperado {
			t.Errorf("Destino(%s) = %s, se esperaba %s", accion, got, esperado)
		}
	}
}

func TestEstadosTerminales(t *testing.T) {
	terminales := []models.EstadoCita{models.EstadoCancelada, models.EstadoCompletada, models.EstadoAtendida}
	for _, e := range terminales {
		if !e.EsTerminal() {
			t.Errorf("%s debería ser terminal", e)
		}
	}
	if models.EstadoPendiente.EsTerminal() || models.EstadoConfirmada.EsTerminal() {
		t.Error("PENDIENTE y CONFIRMADA no son terminales")
	}
}
