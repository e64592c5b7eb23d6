package store

import (
	"context"
	"fmt"
	"path/filepath"

	"event-solution/internal/status"
	"event-solution/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

const eventsCollection = "events"

// EventStore reads the events collection. The marketing admin owns
// writes; the ticket workflow only looks events up.
type EventStore struct {
	app core.App
}

func NewEventStore(app core.App) *EventStore {
	return &EventStore{app: app}
}

// FindByID returns the event or status.ErrEventNotFound.
func (s *EventStore) FindByID(_ context.Context, id string) (*models.Event, error) {
	record, err := s.app.FindRecordById(eventsCollection, id)
	if err != nil {
		return nil, status.ErrEventNotFound
	}
	return eventFromRecord(record)
}

// MostRecentByName returns the newest event whose title matches name
// exactly, or status.ErrEventNotFound.
func (s *EventStore) MostRecentByName(_ context.Context, name string) (*models.Event, error) {
	var row dbx.NullStringMap
	err := s.app.DB().
		NewQuery("SELECT id FROM events WHERE name = {:name} ORDER BY created DESC LIMIT 1").
		Bind(dbx.Params{"name": name}).
		One(&row)
	if err != nil {
		return nil, status.ErrEventNotFound
	}

	id := row["id"].String
	if id == "" {
		return nil, status.ErrEventNotFound
	}

	record, err := s.app.FindRecordById(eventsCollection, id)
	if err != nil {
		return nil, status.ErrEventNotFound
	}
	return eventFromRecord(record)
}

// TemplatePath resolves the on-disk path of the event's ticket
// template file. Empty path, nil error when no template is set.
func (s *EventStore) TemplatePath(_ context.Context, eventID string) (string, error) {
	record, err := s.app.FindRecordById(eventsCollection, eventID)
	if err != nil {
		return "", status.ErrEventNotFound
	}

	name := record.GetString("ticket_template")
	if name == "" {
		return "", nil
	}

	return filepath.Join(s.app.DataDir(), "storage", record.BaseFilesPath(), name), nil
}

func eventFromRecord(record *core.Record) (*models.Event, error) {
	var ticketTypes []models.TicketType
	if err := record.UnmarshalJSONField("ticket_types", &ticketTypes); err != nil && record.GetString("ticket_types") != "" {
		return nil, fmt.Errorf("decode ticket_types: %w", err)
	}

	return &models.Event{
		ID:             record.Id,
		Name:           record.GetString("name"),
		TicketPrice:    record.GetString("ticket_price"),
		TicketTypes:    ticketTypes,
		TicketTemplate: record.GetString("ticket_template"),
		Created:        record.GetDateTime("created").Time(),
	}, nil
}
