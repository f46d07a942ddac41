package event

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("evento no encontrado")

type (
	Repository interface {
		CreateEvent(evt Event) (Event, error)
		QueryAllEvents() ([]Event, error)
		GetEventByID(id string) (Event, error)
		UpdateEvent(evt Event) (Event, error)
		DeleteEventsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	evt := Event{
		Title:       ne.Title,
		Date:        ne.Date,
		Time:        ne.Time,
		Description: ne.Description,
		Type:        ne.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateEvent(evt)
}

func (svc *Service) QueryAll() ([]Event, error) {
	return svc.repo.QueryAllEvents()
}

func (svc *Service) GetByID(id string) (Event, error) {
	return svc.repo.GetEventByID(id)
}

func (svc *Service) Update(id string, ue UpdateEvent) (Event, error) {
	evt := Event{
		ID:          id,
		Title:       ue.Title,
		Date:        ue.Date,
		Time:        *ue.Time,
		Description: *ue.Description,
		Type:        ue.Type,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateEvent(evt)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteEventsByID(ids...)
}
