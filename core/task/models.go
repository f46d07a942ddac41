package task

import (
	"time"

	"github.com/duotask/duotask/core"
)

// Task statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

type Task struct {
	ID           string    `json:"id"`
	Titulo       string    `json:"titulo"`
	Descripcion  string    `json:"descripcion,omitempty"`
	GroupID      string    `json:"idGrupo"`
	FechaEntrega string    `json:"fechaEntrega,omitempty"` // due date, day granularity
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
}

// Grade is a student's record for one task. One stub is synthesized per
// current group member when the task is created; students enrolled afterwards
// get none.
type Grade struct {
	ID           string     `json:"id"`
	TaskID       string     `json:"idTarea"`
	StudentID    string     `json:"idEstudiante"`
	Calificacion *float64   `json:"calificacion"` // 0-10, one decimal; null until graded
	Comentario   string     `json:"comentario"`
	GradedAt     *time.Time `json:"fechaCalificacion"`
	Entregada    bool       `json:"entregada"`
	SubmittedAt  *time.Time `json:"fechaEntrega"`
	CreatedAt    time.Time  `json:"createdAt"` // UTC
	UpdatedAt    time.Time  `json:"updatedAt"` // UTC
}

// StudentSnapshot is the denormalized student attached to a grade on reads.
type StudentSnapshot struct {
	ID       string `json:"id,omitempty"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

// UnknownStudent stands in for a since-deleted student on grade reads.
var UnknownStudent = StudentSnapshot{Nombre: "Desconocido", Apellido: "Desconocido"}

// StudentGrade is a Grade enriched with its student's snapshot.
type StudentGrade struct {
	Grade
	Estudiante StudentSnapshot `json:"estudiante"`
}

// StudentTask is a Task merged with one student's grade for it. The grade's
// submission fields shadow the task's due date under the same key, as consumers
// expect.
type StudentTask struct {
	Task
	Calificacion *float64   `json:"calificacion"`
	Comentario   string     `json:"comentario"`
	SubmittedAt  *time.Time `json:"fechaEntrega"`
	Entregada    bool       `json:"entregada"`
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	Titulo       string `json:"titulo" validate:"required"`
	Descripcion  string `json:"descripcion"`
	GroupID      string `json:"idGrupo" validate:"required"`
	FechaEntrega string `json:"fechaEntrega" validate:"omitempty,date_"`
}

func (nt *NewTask) Validate() error {
	nt.Titulo = core.CleanString(nt.Titulo)
	nt.Descripcion = core.CleanString(nt.Descripcion)
	nt.GroupID = core.CleanString(nt.GroupID)
	nt.FechaEntrega = core.CleanDate(nt.FechaEntrega)
	return core.Validate.Struct(nt)
}

// UpdateTask defines what information may be provided to modify an existing
// Task. Empty fields keep their current value.
type UpdateTask struct {
	Titulo       string  `json:"titulo"`
	Descripcion  *string `json:"descripcion"`
	FechaEntrega *string `json:"fechaEntrega" validate:"omitempty,date_"`
	Status       string  `json:"status" validate:"omitempty,oneof=active completed archived"`
}

func (ut *UpdateTask) Validate(origTsk Task) error {
	titulo := core.CleanString(ut.Titulo)
	if titulo != "" {
		ut.Titulo = titulo
	} else {
		ut.Titulo = origTsk.Titulo
	}

	if ut.Descripcion != nil {
		desc := core.CleanString(*ut.Descripcion)
		ut.Descripcion = &desc
	} else {
		ut.Descripcion = &origTsk.Descripcion
	}

	if ut.FechaEntrega != nil {
		due := core.CleanDate(*ut.FechaEntrega)
		ut.FechaEntrega = &due
	} else {
		ut.FechaEntrega = &origTsk.FechaEntrega
	}

	if ut.Status == "" {
		ut.Status = origTsk.Status
	}

	return core.Validate.Struct(ut)
}

// UpdateGrade defines what information may be provided to modify an existing
// Grade. Nil fields keep their current value.
type UpdateGrade struct {
	Calificacion *float64 `json:"calificacion" validate:"omitempty,gte=0,lte=10"`
	Comentario   *string  `json:"comentario"`
	Entregada    *bool    `json:"entregada"`
}

func (ug *UpdateGrade) Validate() error {
	if ug.Comentario != nil {
		comentario := core.CleanString(*ug.Comentario)
		ug.Comentario = &comentario
	}
	return core.Validate.Struct(ug)
}

// Stats is the derived tasks/grades overview, optionally scoped to one group.
type Stats struct {
	TaskCount             int `json:"taskCount"`
	CompletedTasks        int `json:"completedTasks"`
	ActiveTasksPercent    int `json:"activeTasksPercent"`
	GradesAssigned        int `json:"gradesAssigned"`
	GradesPending         int `json:"gradesPending"`
	GradesAssignedPercent int `json:"gradesAssignedPercent"`
}
