package student

import (
	"errors"
	"time"

	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/group"
)

var (
	ErrNotFound = errors.New("estudiante no encontrado")

	errGroupMissing = errors.New("el grupo seleccionado no existe")
)

type (
	Repository interface {
		// CreateStudent persists the student after verifying the referenced
		// group exists; it fails with group.ErrNotFound otherwise.
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		GetStudentsByGroup(groupID string) ([]Student, error)
		// UpdateStudent re-verifies the referenced group on group transfers.
		UpdateStudent(std Student) (Student, error)
		// DeleteStudentsByID removes the students only; grades and attendance
		// records referencing them are intentionally left in place.
		DeleteStudentsByID(ids ...string) error
	}

	Service struct {
		repo    Repository
		grpRepo group.Repository
	}
)

func NewService(repo Repository, grpRepo group.Repository) *Service {
	return &Service{repo: repo, grpRepo: grpRepo}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		Nombre:    ns.Nombre,
		Apellido:  ns.Apellido,
		GroupID:   ns.GroupID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	std, err := svc.repo.CreateStudent(std)
	if err != nil {
		return Student{}, groupRefError(err)
	}
	return std, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByGroup(groupID string) ([]Student, error) {
	return svc.repo.GetStudentsByGroup(groupID)
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	std := Student{
		ID:        id,
		Nombre:    us.Nombre,
		Apellido:  us.Apellido,
		GroupID:   us.GroupID,
		UpdatedAt: time.Now().UTC(),
	}
	std, err := svc.repo.UpdateStudent(std)
	if err != nil {
		return Student{}, groupRefError(err)
	}
	return std, nil
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}

// GetStats derives the enrollment overview. Every group appears in the tally,
// including empty ones.
func (svc *Service) GetStats() (Stats, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return Stats{}, err
	}
	groups, err := svc.grpRepo.QueryAllGroups()
	if err != nil {
		return Stats{}, err
	}

	counts := make(map[string]int, len(groups))
	for _, std := range students {
		counts[std.GroupID]++
	}

	byGroup := make(map[string]GroupCount, len(groups))
	for _, grp := range groups {
		byGroup[grp.ID] = GroupCount{GroupName: grp.Nombre, Count: counts[grp.ID]}
	}

	return Stats{
		TotalStudents:   len(students),
		StudentsByGroup: byGroup,
	}, nil
}

// groupRefError converts a missing-group failure into a field-level
// ValidationError; other errors pass through.
func groupRefError(err error) error {
	if errors.Is(err, group.ErrNotFound) {
		return core.NewValidationError(errGroupMissing, core.FieldError{Field: "idGrupo", Error: errGroupMissing.Error()})
	}
	return err
}
