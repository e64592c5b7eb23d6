package message

import (
	"time"

	"github.com/google/uuid"
)

type header struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func newHeader() header {
	return header{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

// TicketRequestResolved fires when an operator marks a request
// RESOLVED. Delivery of the ticket artifact hangs off this event so a
// rendering or mail failure can never block the status change.
type TicketRequestResolved struct {
	Header    header `json:"header"`
	RequestID string `json:"request_id"`
}

func NewTicketRequestResolved(requestID string) TicketRequestResolved {
	return TicketRequestResolved{
		Header:    newHeader(),
		RequestID: requestID,
	}
}
