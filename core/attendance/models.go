package attendance

import (
	"github.com/duotask/duotask/core"
)

// Attendance statuses
const (
	StatusPresent = "asistencia"
	StatusAbsent  = "falta"
	StatusExcused = "permiso"
)

// Attendance is one student's record for one day in one group. At most one
// record exists per (group, student, date).
type Attendance struct {
	ID        string `json:"id"`
	GroupID   string `json:"idGrupo"`
	StudentID string `json:"idAlumno"`
	Status    string `json:"asistencia"`
	Fecha     string `json:"fecha"` // day granularity
}

// SetAttendance contains information needed to record (or re-record) a
// student's attendance for a day.
type SetAttendance struct {
	GroupID   string `json:"idGrupo" validate:"required"`
	StudentID string `json:"idAlumno" validate:"required"`
	Status    string `json:"asistencia" validate:"required,oneof=asistencia falta permiso"`
	Fecha     string `json:"fecha" validate:"required,date_"`
}

func (sa *SetAttendance) Validate() error {
	sa.GroupID = core.CleanString(sa.GroupID)
	sa.StudentID = core.CleanString(sa.StudentID)
	sa.Status = core.CleanString(sa.Status, true /* lower */)
	sa.Fecha = core.CleanDate(sa.Fecha)
	return core.Validate.Struct(sa)
}

// UpdateAttendance carries a status change for an existing record.
type UpdateAttendance struct {
	Status string `json:"asistencia" validate:"required,oneof=asistencia falta permiso"`
}

func (ua *UpdateAttendance) Validate() error {
	ua.Status = core.CleanString(ua.Status, true /* lower */)
	return core.Validate.Struct(ua)
}

// Counts tallies a student's records by status.
type Counts struct {
	Asistencias int `json:"asistencias"`
	Faltas      int `json:"faltas"`
	Permisos    int `json:"permisos"`
}
