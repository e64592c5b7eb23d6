package message

import (
	"context"
	"log/slog"

	"event-solution/models"
	"event-solution/monitoring"
)

type RequestGetter interface {
	GetByID(ctx context.Context, id string) (*models.TicketRequest, error)
}

type EventFinder interface {
	MostRecentByName(ctx context.Context, name string) (*models.Event, error)
	TemplatePath(ctx context.Context, eventID string) (string, error)
}

type TicketRenderer interface {
	Render(ctx context.Context, templatePath string, request *models.TicketRequest, event *models.Event) ([]byte, error)
}

type TicketMailer interface {
	Send(ctx context.Context, email string, artifact []byte, event *models.Event, request *models.TicketRequest) error
}

// Deliverer renders and emails the ticket artifact after a request
// was resolved. Every step is best-effort: failures are logged and
// swallowed so the committed status change is never affected.
type Deliverer struct {
	requests RequestGetter
	events   EventFinder
	renderer TicketRenderer
	mailer   TicketMailer
	logger   *slog.Logger
}

func NewDeliverer(requests RequestGetter, events EventFinder, renderer TicketRenderer, mailer TicketMailer, logger *slog.Logger) *Deliverer {
	return &Deliverer{
		requests: requests,
		events:   events,
		renderer: renderer,
		mailer:   mailer,
		logger:   logger,
	}
}

// HandleResolved processes one TicketRequestResolved event. It always
// returns nil: a nack would requeue the event and retry delivery,
// which this workflow does not want.
func (d *Deliverer) HandleResolved(ctx context.Context, event *TicketRequestResolved) error {
	request, err := d.requests.GetByID(ctx, event.RequestID)
	if err != nil {
		d.logger.Error("ticket delivery: load request", "request_id", event.RequestID, "error", err)
		return nil
	}

	// The resolution flow associates the event by exact title match.
	eventRecord, err := d.events.MostRecentByName(ctx, request.EventName)
	if err != nil {
		d.logger.Info("ticket delivery: no matching event, skipping", "request_id", request.ID, "event_name", request.EventName)
		return nil
	}

	if !eventRecord.HasTemplate() {
		d.logger.Info("ticket delivery: event has no ticket template, skipping", "request_id", request.ID, "event_id", eventRecord.ID)
		monitoring.TrackDelivery("skipped")
		return nil
	}

	templatePath, err := d.events.TemplatePath(ctx, eventRecord.ID)
	if err != nil || templatePath == "" {
		d.logger.Error("ticket delivery: resolve template", "request_id", request.ID, "error", err)
		return nil
	}

	artifact, err := d.renderer.Render(ctx, templatePath, request, eventRecord)
	if err != nil {
		d.logger.Error("ticket delivery: render artifact", "request_id", request.ID, "error", err)
		monitoring.TrackDelivery("render_failed")
		return nil
	}

	if err := d.mailer.Send(ctx, request.Email, artifact, eventRecord, request); err != nil {
		d.logger.Error("ticket delivery: send mail", "request_id", request.ID, "email", request.Email, "error", err)
		monitoring.TrackDelivery("mail_failed")
		return nil
	}

	d.logger.Info("ticket delivered", "request_id", request.ID, "email", request.Email)
	monitoring.TrackDelivery("success")
	return nil
}
