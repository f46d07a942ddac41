package main

import (
	"time"

	"github.com/duotask/duotask/core/event"
)

// demoEvents are the calendar entries loaded into a fresh installation.
var demoEvents = []event.NewEvent{
	{
		Title:       "Reunión de padres",
		Date:        "2025-03-12",
		Time:        "18:00",
		Description: "Reunión general con padres de familia para discutir avances del semestre",
		Type:        event.TypeMeeting,
	},
	{
		Title:       "Entrega de calificaciones",
		Date:        "2025-03-15",
		Time:        "10:00",
		Description: "Publicación de calificaciones del primer parcial",
		Type:        event.TypeDeadline,
	},
	{
		Title:       "Feria de ciencias",
		Date:        "2025-03-20",
		Time:        "14:00",
		Description: "Presentación de proyectos de ciencias de todos los grupos",
		Type:        event.TypeEvent,
	},
}

// seed loads the demo calendar events. It is a no-op when events already exist.
func (cli *commandLine) seed() error {
	existing, err := cli.evtRepo.QueryAllEvents()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, ne := range demoEvents {
		evt := event.Event{
			Title:       ne.Title,
			Date:        ne.Date,
			Time:        ne.Time,
			Description: ne.Description,
			Type:        ne.Type,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := cli.evtRepo.CreateEvent(evt); err != nil {
			return err
		}
	}
	return nil
}
