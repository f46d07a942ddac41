package event

import (
	"time"

	"github.com/duotask/duotask/core"
)

// Event types
const (
	TypeEvent    = "event"
	TypeMeeting  = "meeting"
	TypeDeadline = "deadline"
	TypeTask     = "task"
)

// Event is a calendar entry, independent of every other entity.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // day granularity
	Time        string    `json:"time,omitempty"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
	UpdatedAt   time.Time `json:"updatedAt"` // UTC
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,date_"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=event meeting deadline task"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Date = core.CleanDate(ne.Date)
	ne.Time = core.CleanString(ne.Time)
	ne.Description = core.CleanString(ne.Description)
	ne.Type = core.CleanString(ne.Type, true /* lower */)
	return core.Validate.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an existing
// Event. Empty fields keep their current value.
type UpdateEvent struct {
	Title       string  `json:"title"`
	Date        string  `json:"date" validate:"omitempty,date_"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"omitempty,oneof=event meeting deadline task"`
}

func (ue *UpdateEvent) Validate(origEvt Event) error {
	title := core.CleanString(ue.Title)
	if title != "" {
		ue.Title = title
	} else {
		ue.Title = origEvt.Title
	}

	date := core.CleanDate(ue.Date)
	if date != "" {
		ue.Date = date
	} else {
		ue.Date = origEvt.Date
	}

	if ue.Time != nil {
		t := core.CleanString(*ue.Time)
		ue.Time = &t
	} else {
		ue.Time = &origEvt.Time
	}

	if ue.Description != nil {
		desc := core.CleanString(*ue.Description)
		ue.Description = &desc
	} else {
		ue.Description = &origEvt.Description
	}

	if ue.Type == "" {
		ue.Type = origEvt.Type
	} else {
		ue.Type = core.CleanString(ue.Type, true /* lower */)
	}

	return core.Validate.Struct(ue)
}
