package student

import (
	"time"

	"github.com/duotask/duotask/core"
)

type Student struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	GroupID   string    `json:"idGrupo"`
	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	GroupID  string `json:"idGrupo" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Nombre = core.CleanString(ns.Nombre)
	ns.Apellido = core.CleanString(ns.Apellido)
	ns.GroupID = core.CleanString(ns.GroupID)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Empty fields keep their current value; a new GroupID transfers the
// student to that group.
type UpdateStudent struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	GroupID  string `json:"idGrupo"`
}

func (us *UpdateStudent) Validate(origStd Student) error {
	nombre := core.CleanString(us.Nombre)
	if nombre != "" {
		us.Nombre = nombre
	} else {
		us.Nombre = origStd.Nombre
	}

	apellido := core.CleanString(us.Apellido)
	if apellido != "" {
		us.Apellido = apellido
	} else {
		us.Apellido = origStd.Apellido
	}

	groupID := core.CleanString(us.GroupID)
	if groupID != "" {
		us.GroupID = groupID
	} else {
		us.GroupID = origStd.GroupID
	}

	return core.Validate.Struct(us)
}

type GroupCount struct {
	GroupName string `json:"groupName"`
	Count     int    `json:"count"`
}

/// Stats is the derived students overview: total enrollment and a per-group
// tally keyed by group id.
type Stats struct {
	TotalStudents   int                   `json:"totalStudents"`
	StudentsByGroup map[string]GroupCount `json:"studentsByGroup"`
}
