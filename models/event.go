package models

import (
	"time"
)

// Event mirrors the fields of the events collection that the ticket
// workflow reads. The marketing site owns the rest of the record.
type Event struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	TicketPrice    string       `json:"ticket_price"`
	TicketTypes    []TicketType `json:"ticket_types,omitempty"`
	TicketTemplate string       `json:"ticket_template,omitempty"`
	Created        time.Time    `json:"created"`
}

type TicketType struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// HasTemplate reports whether a ticket artifact can be rendered for
// this event.
func (e *Event) HasTemplate() bool {
	return e != nil && e.TicketTemplate != ""
}
