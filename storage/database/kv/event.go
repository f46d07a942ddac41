package kvdb

import (
	"github.com/duotask/duotask/core"
	"github.com/duotask/duotask/core/event"
	"github.com/duotask/duotask/storage/kvstore"
)

type eventRepository struct {
	db kvstore.Store
}

func NewEventRepository(db kvstore.Store) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(evt event.Event) (event.Event, error) {
	evt.ID = core.NewID()
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var events []event.Event
		if err := tx.Load(eventsKey, &events); err != nil {
			return err
		}
		return tx.Save(eventsKey, append(events, evt))
	})
	if err != nil {
		return event.Event{}, err
	}
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents() ([]event.Event, error) {
	var events []event.Event
	err := repo.db.View(func(tx kvstore.Tx) error {
		return tx.Load(eventsKey, &events)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *eventRepository) GetEventByID(id string) (event.Event, error) {
	var found event.Event
	err := repo.db.View(func(tx kvstore.Tx) error {
		var events []event.Event
		if err := tx.Load(eventsKey, &events); err != nil {
			return err
		}
		for _, evt := range events {
			if evt.ID == id {
				found = evt
				return nil
			}
		}
		return event.ErrNotFound
	})
	if err != nil {
		return event.Event{}, err
	}
	return found, nil
}

func (repo *eventRepository) UpdateEvent(evt event.Event) (event.Event, error) {
	var updated event.Event
	err := repo.db.Update(func(tx kvstore.Tx) error {
		var events []event.Event
		if err := tx.Load(eventsKey, &events); err != nil {
			return err
		}
		for i, orig := range events {
			if orig.ID == evt.ID {
				evt.CreatedAt = orig.CreatedAt
				events[i] = evt
				updated = evt
				return tx.Save(eventsKey, events)
			}
		}
		return event.ErrNotFound
	})
	if err != nil {
		return event.Event{}, err
	}
	return updated, nil
}

func (repo *eventRepository) DeleteEventsByID(ids ...string) error {
	return repo.db.Update(func(tx kvstore.Tx) error {
		var events []event.Event
		if err := tx.Load(eventsKey, &events); err != nil {
			return err
		}
		kept := events[:0]
		for _, evt := range events {
			if !containsID(ids, evt.ID) {
				kept = append(kept, evt)
			}
		}
		if len(kept) == len(events) {
			return event.ErrNotFound
		}
		return tx.Save(eventsKey, kept)
	})
}
