package group

import (
	"time"

	"github.com/duotask/duotask/core"
)

type Group struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Grado       int       `json:"grado"`
	Descripcion string    `json:"descripcion,omitempty"`
	Alumnos     []string  `json:"alumnos"` // computed from the student collection; never stored
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC
}

// NewGroup contains information needed to create a new Group.
type NewGroup struct {
	Nombre      string `json:"nombre" validate:"required"`
	Grado       int    `json:"grado" validate:"required,gte=1,lte=12"`
	Descripcion string `json:"descripcion"`
}

func (ng *NewGroup) Validate() error {
	ng.Nombre = core.CleanString(ng.Nombre)
	ng.Descripcion = core.CleanString(ng.Descripcion)
	return core.Validate.Struct(ng)
}

// UpdateGroup defines what information may be provided to modify an existing Group.
// Empty fields keep their current value.
type UpdateGroup struct {
	Nombre      string  `json:"nombre"`
	Grado       int     `json:"grado" validate:"omitempty,gte=1,lte=12"`
	Descripcion *string `json:"descripcion"`
}

func (ug *UpdateGroup) Validate(origGrp Group) error {
	nombre := core.CleanString(ug.Nombre)
	if nombre != "" {
		ug.Nombre = nombre
	} else {
		ug.Nombre = origGrp.Nombre
	}

	if ug.Grado == 0 {
		ug.Grado = origGrp.Grado
	}

	if ug.Descripcion != nil {
		desc := core.CleanString(*ug.Descripcion)
		ug.Descripcion = &desc
	} else {
		ug.Descripcion = &origGrp.Descripcion
	}

	return core.Validate.Struct(ug)
}

// GradeCount is the number of groups at one grade level.
type GradeCount struct {
	Grado int `json:"grado"`
	Count int `json:"total"`
}

// Summary is the derived overview of all groups.
type Summary struct {
	Total   int          `json:"total"`
	ByGrade []GradeCount `json:"porGrado"`
	Recent  []Group      `json:"recientes"`
}
