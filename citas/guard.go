package citas

import (
	"github.com/miposta/citas-backend/models"
)

// requireRol es la verificación única de acceso: se ejecuta al inicio de
// cada operación, antes de tocar el almacén.
func requireRol(caller *models.Usuario, rol models.Rol) error {
	if caller == nil {
		return &ErrorAutorizacion{Mensaje: "se requiere un usuario autenticado"}
	}
	if caller.Rol != rol {
		return &ErrorAutorizacion{Mensaje: "no tienes permisos para realizar esta operación"}
	}
	return nil
}

// requireMedicoAsignado exige que el solicitante sea el médico de la cita
func requireMedicoAsignado(caller *models.Usuario, cita *models.Cita) error {
	if cita.IDMedico != caller.IDUsuario {
		return &ErrorAutorizacion{Mensaje: "la cita no está asignada a este médico"}
	}
	return nil
}

// Alcance describe el conjunto de citas visible para un solicitante
type Alcance struct {
	Todas      bool
	IDMedico   int
	IDPaciente int
}

// alcancePara calcula la visibilidad según el rol. Un rol fuera de la
// enumeración no ve nada, nunca todo.
func alcancePara(caller *models.Usuario) (Alcance, bool) {
	if caller == nil {
		return Alcance{}, false
	}
	switch caller.Rol {
	case models.RolAdmin:
		return Alcance{Todas: true}, true
	case models.RolMedico:
		return Alcance{IDMedico: caller.IDUsuario}, true
	case models.RolPaciente:
		return Alcance{IDPaciente: caller.IDUsuario}, true
	}
	return Alcance{}, false
}

// incluye indica si una cita concreta cae dentro del alcance
func (a Alcance) incluye(c *models.Cita) bool {
	if a.Todas {
		return true
	}
	if a.IDMedico != 0 && c.IDMedico == a.IDMedico {
		return true
	}
	if a.IDPaciente != 0 && c.IDPaciente == a.IDPaciente {
		return true
	}
	return false
}
