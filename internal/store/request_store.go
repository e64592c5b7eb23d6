package store

import (
	"context"
	"fmt"

	"event-solution/internal/status"
	"event-solution/models"

	"github.com/pocketbase/pocketbase/core"
)

const requestsCollection = "ticket_requests"

// RequestStore persists ticket requests in the ticket_requests
// collection. The handle is injected; nothing here owns the app
// lifecycle.
type RequestStore struct {
	app core.App
}

func NewRequestStore(app core.App) *RequestStore {
	return &RequestStore{app: app}
}

// CreateRequestParams carries the already-priced submission fields.
type CreateRequestParams struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	JobTitle     string
	Organization string
	Website      string

	EventName string
	EventID   string

	// Amount is in paisa.
	Amount        int64
	TicketDetails []models.TicketSelection
}

// Create persists a new request with status PENDING. Payment status is
// derived here: PAID iff the amount is zero at creation time.
func (s *RequestStore) Create(_ context.Context, p *CreateRequestParams) (*models.TicketRequest, error) {
	if p.Name == "" || p.Phone == "" || p.Email == "" || p.EventName == "" {
		return nil, fmt.Errorf("create: name, phone, email and event name are required: %w", status.ErrMissingRequiredFields)
	}

	collection, err := s.app.FindCollectionByNameOrId(requestsCollection)
	if err != nil {
		return nil, fmt.Errorf("create: find collection: %w", err)
	}

	paymentStatus := status.PaymentUnpaid
	if p.Amount == 0 {
		paymentStatus = status.PaymentPaid
	}

	record := core.NewRecord(collection)
	record.Set("name", p.Name)
	record.Set("phone", p.Phone)
	record.Set("email", p.Email)
	record.Set("address", p.Address)
	record.Set("job_title", p.JobTitle)
	record.Set("organization", p.Organization)
	record.Set("website", p.Website)
	record.Set("event_name", p.EventName)
	record.Set("event_id", p.EventID)
	record.Set("amount", p.Amount)
	record.Set("ticket_details", p.TicketDetails)
	record.Set("status", string(status.RequestPending))
	record.Set("payment_status", string(paymentStatus))

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("create: save record: %w", err)
	}

	return requestFromRecord(record)
}

// List returns all requests, newest first.
func (s *RequestStore) List(_ context.Context) ([]*models.TicketRequest, error) {
	records, err := s.app.FindRecordsByFilter(requestsCollection, "id != ''", "-created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	requests := make([]*models.TicketRequest, 0, len(records))
	for _, record := range records {
		request, err := requestFromRecord(record)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// GetByID returns one request or status.ErrRequestNotFound.
func (s *RequestStore) GetByID(_ context.Context, id string) (*models.TicketRequest, error) {
	record, err := s.app.FindRecordById(requestsCollection, id)
	if err != nil {
		return nil, status.ErrRequestNotFound
	}
	return requestFromRecord(record)
}

// UpdateStatus overwrites the workflow status unconditionally. The
// store does not guard transitions; last write wins.
func (s *RequestStore) UpdateStatus(_ context.Context, id string, newStatus status.RequestStatus) (*models.TicketRequest, error) {
	record, err := s.app.FindRecordById(requestsCollection, id)
	if err != nil {
		return nil, status.ErrRequestNotFound
	}

	record.Set("status", string(newStatus))
	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("update status: save record: %w", err)
	}

	return requestFromRecord(record)
}

// UpdatePayment flips the payment status, recording the provider
// reference. This is the contract the callback handler consumes.
func (s *RequestStore) UpdatePayment(_ context.Context, id string, paymentStatus status.PaymentStatus, paymentRef string) (*models.TicketRequest, error) {
	record, err := s.app.FindRecordById(requestsCollection, id)
	if err != nil {
		return nil, status.ErrRequestNotFound
	}

	record.Set("payment_status", string(paymentStatus))
	if paymentRef != "" {
		record.Set("payment_ref", paymentRef)
	}
	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("update payment: save record: %w", err)
	}

	return requestFromRecord(record)
}

// Delete removes the request. A second delete of the same id fails
// with status.ErrRequestNotFound.
func (s *RequestStore) Delete(_ context.Context, id string) error {
	record, err := s.app.FindRecordById(requestsCollection, id)
	if err != nil {
		return status.ErrRequestNotFound
	}

	if err := s.app.Delete(record); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func requestFromRecord(record *core.Record) (*models.TicketRequest, error) {
	var details []models.TicketSelection
	if err := record.UnmarshalJSONField("ticket_details", &details); err != nil && record.GetString("ticket_details") != "" {
		return nil, fmt.Errorf("decode ticket_details: %w", err)
	}

	return &models.TicketRequest{
		ID:            record.Id,
		Name:          record.GetString("name"),
		Phone:         record.GetString("phone"),
		Email:         record.GetString("email"),
		Address:       record.GetString("address"),
		JobTitle:      record.GetString("job_title"),
		Organization:  record.GetString("organization"),
		Website:       record.GetString("website"),
		EventName:     record.GetString("event_name"),
		EventID:       record.GetString("event_id"),
		Amount:        int64(record.GetInt("amount")),
		TicketDetails: details,
		Status:        status.RequestStatus(record.GetString("status")),
		PaymentStatus: status.PaymentStatus(record.GetString("payment_status")),
		PaymentRef:    record.GetString("payment_ref"),
		Created:       record.GetDateTime("created").Time(),
	}, nil
}
