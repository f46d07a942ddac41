package group

import (
	"errors"
	"sort"
	"time"
)

// recentCount is how many most-recently-created groups a Summary carries.
const recentCount = 5

var ErrNotFound = errors.New("grupo no encontrado")

type (
	Repository interface {
		CreateGroup(grp Group) (Group, error)
		QueryAllGroups() ([]Group, error)
		GetGroupByID(id string) (Group, error)
		UpdateGroup(grp Group) (Group, error)
		DeleteGroupsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ng NewGroup) (Group, error) {
	now := time.Now().UTC()
	grp := Group{
		Nombre:      ng.Nombre,
		Grado:       ng.Grado,
		Descripcion: ng.Descripcion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateGroup(grp)
}

func (svc *Service) QueryAll() ([]Group, error) {
	return svc.repo.QueryAllGroups()
}

func (svc *Service) GetByID(id string) (Group, error) {
	return svc.repo.GetGroupByID(id)
}

func (svc *Service) Update(id string, ug UpdateGroup) (Group, error) {
	grp := Group{
		ID:          id,
		Nombre:      ug.Nombre,
		Grado:       ug.Grado,
		Descripcion: *ug.Descripcion,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateGroup(grp)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteGroupsByID(ids...)
}

// Summarize derives the groups overview: total count, counts by grade level
// and the most recently created groups.
func (svc *Service) Summarize() (Summary, error) {
	groups, err := svc.repo.QueryAllGroups()
	if err != nil {
		return Summary{}, err
	}

	byGrade := make(map[int]int)
	for _, grp := range groups {
		byGrade[grp.Grado]++
	}
	grades := make([]GradeCount, 0, len(byGrade))
	for grado, count := range byGrade {
		grades = append(grades, GradeCount{Grado: grado, Count: count})
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].Grado < grades[j].Grado })

	recent := make([]Group, len(groups))
	copy(recent, groups)
	sort.Slice(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}

	return Summary{
		Total:   len(groups),
		ByGrade: grades,
		Recent:  recent,
	}, nil
}
