package task

import (
	"errors"
	"math"
	"time"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/group"
)

var (
	ErrNotFound      = errors.New("tarea no encontrada")
	ErrGradeNotFound = errors.New("calificación no encontrada")

	errGroupMissing = errors.New("el grupo seleccionado no existe")
)

type (
	Repository interface {
		// CreateTask persists the task along with one grade stub per current
		// member of its group, atomically. It fails with group.ErrNotFound
		// when the referenced group does not exist.
		CreateTask(tsk Task) (Task, error)
		QueryAllTasks() ([]Task, error)
		GetTaskByID(id string) (Task, error)
		GetTasksByGroup(groupID string) ([]Task, error)
		UpdateTask(tsk Task) (Task, error)
		// DeleteTasksByID also removes the tasks' grades; attendance records
		// are unrelated and untouched.
		DeleteTasksByID(ids ...string) error

		QueryAllGrades() ([]Grade, error)
		// GetGradesByTask returns the task's grades, each enriched with its
		// student's snapshot (a placeholder when the student was deleted).
		GetGradesByTask(taskID string) ([]StudentGrade, error)
		UpdateGradeByID(id string, ug UpdateGrade, gradedAt time.Time) (Grade, error)
		// GetTasksByStudent returns the tasks the student holds a grade for,
		// merged with that grade.
		GetTasksByStudent(studentID string) ([]StudentTask, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nt NewTask) (Task, error) {
	now := time.Now().UTC()
	tsk := Task{
		Titulo:       nt.Titulo,
		Descripcion:  nt.Descripcion,
		GroupID:      nt.GroupID,
		FechaEntrega: nt.FechaEntrega,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	tsk, err := svc.repo.CreateTask(tsk)
	if err != nil {
		if errors.Is(err, group.ErrNotFound) {
			return Task{}, core.NewValidationError(errGroupMissing, core.FieldError{Field: "idGrupo", Error: errGroupMissing.Error()})
		}
		return Task{}, err
	}
	return tsk, nil
}

func (svc *Service) QueryAll() ([]Task, error) {
	return svc.repo.QueryAllTasks()
}

func (svc *Service) GetByID(id string) (Task, error) {
	return svc.repo.GetTaskByID(id)
}

func (svc *Service) GetByGroup(groupID string) ([]Task, error) {
	return svc.repo.GetTasksByGroup(groupID)
}

func (svc *Service) Update(id string, ut UpdateTask) (Task, error) {
	tsk := Task{
		ID:           id,
		Titulo:       ut.Titulo,
		Descripcion:  *ut.Descripcion,
		FechaEntrega: *ut.FechaEntrega,
		Status:       ut.Status,
		UpdatedAt:    time.Now().UTC(),
	}
	return svc.repo.UpdateTask(tsk)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteTasksByID(ids...)
}

func (svc *Service) GradesByTask(taskID string) ([]StudentGrade, error) {
	return svc.repo.GetGradesByTask(taskID)
}

func (svc *Service) UpdateGrade(id string, ug UpdateGrade) (Grade, error) {
	return svc.repo.UpdateGradeByID(id, ug, time.Now().UTC())
}

func (svc *Service) TasksByStudent(studentID string) ([]StudentTask, error) {
	return svc.repo.GetTasksByStudent(studentID)
}

// GetStats derives the tasks/grades overview; groupID narrows it to one
// group's tasks, "" covers everything.
func (svc *Service) GetStats(groupID string) (Stats, error) {
	var (
		tasks []Task
		err   error
	)
	if groupID != "" {
		tasks, err = svc.repo.GetTasksByGroup(groupID)
	} else {
		tasks, err = svc.repo.QueryAllTasks()
	}
	if err != nil {
		return Stats{}, err
	}
	grades, err := svc.repo.QueryAllGrades()
	if err != nil {
		return Stats{}, err
	}

	taskIDs := make(map[string]bool, len(tasks))
	var completed int
	for _, tsk := range tasks {
		taskIDs[tsk.ID] = true
		if tsk.Status == StatusCompleted {
			completed++
		}
	}

	var assigned, pending int
	for _, grd := range grades {
		if !taskIDs[grd.TaskID] {
			continue
		}
		if grd.Calificacion != nil {
			assigned++
		} else {
			pending++
		}
	}

	return Stats{
		TaskCount:             len(tasks),
		CompletedTasks:        completed,
		ActiveTasksPercent:    percent(len(tasks)-completed, len(tasks)),
		GradesAssigned:        assigned,
		GradesPending:         pending,
		GradesAssignedPercent: percent(assigned, assigned+pending),
	}, nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
