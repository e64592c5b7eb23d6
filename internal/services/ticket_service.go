package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"event-solution/internal/message"
	"event-solution/internal/services/gateway"
	"event-solution/internal/status"
	"event-solution/internal/store"
	"event-solution/models"
	"event-solution/monitoring"
	"event-solution/utils"

	"github.com/shopspring/decimal"
)

type RequestStore interface {
	Create(ctx context.Context, p *store.CreateRequestParams) (*models.TicketRequest, error)
	List(ctx context.Context) ([]*models.TicketRequest, error)
	GetByID(ctx context.Context, id string) (*models.TicketRequest, error)
	UpdateStatus(ctx context.Context, id string, newStatus status.RequestStatus) (*models.TicketRequest, error)
	UpdatePayment(ctx context.Context, id string, paymentStatus status.PaymentStatus, paymentRef string) (*models.TicketRequest, error)
	Delete(ctx context.Context, id string) error
}

type EventStore interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
	MostRecentByName(ctx context.Context, name string) (*models.Event, error)
}

type GatewaySelector interface {
	Get(provider gateway.Provider) (gateway.PaymentGateway, error)
}

type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// TicketService orchestrates the ticket request lifecycle: validate,
// price, persist, initiate payment, and on resolution dispatch the
// delivery event.
type TicketService struct {
	requests  RequestStore
	events    EventStore
	gateways  GatewaySelector
	publisher Publisher
	logger    *slog.Logger
}

func NewTicketService(requests RequestStore, events EventStore, gateways GatewaySelector, publisher Publisher, logger *slog.Logger) *TicketService {
	return &TicketService{
		requests:  requests,
		events:    events,
		gateways:  gateways,
		publisher: publisher,
		logger:    logger,
	}
}

// SubmitTicketRequest is one customer submission.
type SubmitTicketRequest struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Website      string `json:"website"`

	EventName string `json:"eventName"`
	EventID   string `json:"eventId"`

	// TotalPrice is the client-computed total in rupees, already
	// multiplied across the selected ticket types.
	TotalPrice    *decimal.Decimal         `json:"totalPrice"`
	TicketDetails []models.TicketSelection `json:"ticketDetails"`
	PaymentMethod string                   `json:"paymentMethod"`
}

// SubmitResult is what the client sees back.
type SubmitResult struct {
	Success    bool   `json:"success"`
	RequestID  string `json:"requestId,omitempty"`
	PaymentURL string `json:"paymentUrl,omitempty"`
}

// Submit runs the submission workflow. A gateway failure aborts the
// submission from the client's point of view, but the persisted row is
// deliberately kept: the operator reconciles orphaned unpaid requests
// by hand.
func (s *TicketService) Submit(ctx context.Context, req *SubmitTicketRequest) (*SubmitResult, error) {
	if req.Name == "" || req.Number == "" || req.Email == "" || req.EventName == "" {
		monitoring.TrackSubmission("invalid")
		return nil, fmt.Errorf("submit: name, number, email and event name are required: %w", status.ErrMissingRequiredFields)
	}

	provider, err := gateway.ParseProvider(req.PaymentMethod)
	if err != nil {
		monitoring.TrackSubmission("invalid")
		return nil, fmt.Errorf("submit: %s: %w", err, status.ErrMissingRequiredFields)
	}

	event := s.lookupEvent(ctx, req.EventID, req.EventName)

	amount := ResolveAmount(req.TotalPrice, event)

	eventID := req.EventID
	if eventID == "" && event != nil {
		eventID = event.ID
	}

	created, err := s.requests.Create(ctx, &store.CreateRequestParams{
		Name:          req.Name,
		Phone:         req.Number,
		Email:         req.Email,
		Address:       req.Address,
		JobTitle:      req.Title,
		Organization:  req.Organization,
		Website:       req.Website,
		EventName:     req.EventName,
		EventID:       eventID,
		Amount:        amount,
		TicketDetails: req.TicketDetails,
	})
	if err != nil {
		monitoring.TrackSubmission("error")
		return nil, fmt.Errorf("submit: %w", err)
	}

	// Free requests skip payment entirely; the row is already PAID.
	if amount == 0 {
		s.logger.Info("ticket request submitted", "request_id", created.ID, "amount", 0, "paid", true)
		monitoring.TrackSubmission("free")
		return &SubmitResult{Success: true, RequestID: created.ID}, nil
	}

	gw, err := s.gateways.Get(provider)
	if err != nil {
		monitoring.TrackSubmission("gateway_error")
		return nil, fmt.Errorf("submit: %s: %w", err, status.ErrPaymentFailed)
	}

	referenceLabel, _ := utils.GenerateCode(4)

	started := time.Now()
	paymentURL, err := gw.Initiate(ctx, &gateway.Order{
		Amount:         amount,
		OrderID:        created.ID,
		OrderName:      fmt.Sprintf("%s tickets", req.EventName),
		CustomerName:   req.Name,
		CustomerEmail:  req.Email,
		CustomerPhone:  req.Number,
		ReferenceLabel: referenceLabel,
	})
	if err != nil {
		monitoring.TrackGatewayInitiation(string(provider), "failure", time.Since(started))
		monitoring.TrackSubmission("gateway_error")
		s.logger.Error("payment initiation failed, request kept unpaid",
			"request_id", created.ID, "provider", provider, "error", err)
		return nil, fmt.Errorf("submit: payment initiation failed: %w", status.ErrPaymentFailed)
	}
	monitoring.TrackGatewayInitiation(string(provider), "success", time.Since(started))
	monitoring.TrackSubmission("success")

	s.logger.Info("ticket request submitted", "request_id", created.ID, "amount", amount, "provider", provider)

	return &SubmitResult{Success: true, RequestID: created.ID, PaymentURL: paymentURL}, nil
}

// lookupEvent prefers the explicit identifier and falls back to the
// newest event with the exact submitted title. A missing event is not
// an error here: pricing degrades to zero.
func (s *TicketService) lookupEvent(ctx context.Context, eventID, eventName string) *models.Event {
	if eventID != "" {
		if event, err := s.events.FindByID(ctx, eventID); err == nil {
			return event
		}
		s.logger.Warn("event id not found, falling back to name lookup", "event_id", eventID)
	}

	event, err := s.events.MostRecentByName(ctx, eventName)
	if err != nil {
		return nil
	}
	return event
}

// UpdateStatus overwrites the workflow status. When the new status is
// RESOLVED a delivery event is published; re-applying RESOLVED
// publishes again and the ticket email is re-sent, which matches how
// operators re-trigger a delivery today.
func (s *TicketService) UpdateStatus(ctx context.Context, id, newStatus string) (*models.TicketRequest, error) {
	parsed, err := status.ParseRequestStatus(newStatus)
	if err != nil {
		return nil, err
	}

	request, err := s.requests.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, err
	}

	if parsed == status.RequestResolved {
		if err := s.publisher.Publish(ctx, message.NewTicketRequestResolved(request.ID)); err != nil {
			// The status change is already committed; delivery is
			// best-effort.
			s.logger.Error("publish resolved event", "request_id", request.ID, "error", err)
		}
	}

	return request, nil
}

// ConfirmPayment reconciles an asynchronous provider confirmation
// against the stored request.
func (s *TicketService) ConfirmPayment(ctx context.Context, providerName string, q *gateway.VerifyQuery) (*models.TicketRequest, error) {
	provider, err := gateway.ParseProvider(providerName)
	if err != nil {
		return nil, err
	}

	gw, err := s.gateways.Get(provider)
	if err != nil {
		return nil, err
	}

	request, err := s.requests.GetByID(ctx, q.OrderID)
	if err != nil {
		return nil, err
	}
	if q.Amount == 0 {
		q.Amount = request.Amount
	}

	tx, err := gw.Verify(ctx, q)
	if err != nil {
		if errors.Is(err, status.ErrPaymentFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	updated, err := s.requests.UpdatePayment(ctx, request.ID, status.PaymentPaid, tx.RefID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment confirmed", "request_id", updated.ID, "provider", provider, "ref_id", tx.RefID)

	return updated, nil
}

// List returns all requests, newest first.
func (s *TicketService) List(ctx context.Context) ([]*models.TicketRequest, error) {
	return s.requests.List(ctx)
}

// Get returns one request.
func (s *TicketService) Get(ctx context.Context, id string) (*models.TicketRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// Delete removes one request. Not idempotent: deleting twice fails.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	return s.requests.Delete(ctx, id)
}
