package models

// Especialidad representa la tabla especialidades en la base de datos
type Especialidad struct {
	IDEspecialidad int    `json:"id_especialidad" db:"id_especialidad"`
	Nombre         string `json:"nombre" db:"nombre"`
	Descripcion    string `json:"descripcion" db:"descripcion"`
	Activo         bool   `json:"activo" db:"activo"`
}
