package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"event-solution/internal/services"
	"event-solution/internal/services/gateway"

	"github.com/pocketbase/pocketbase/core"
)

// CallbackHandler is the boundary where asynchronous provider
// confirmations re-enter the system and get reconciled against the
// request store.
type CallbackHandler struct {
	tickets *services.TicketService
	logger  *slog.Logger
}

func NewCallbackHandler(tickets *services.TicketService, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{tickets: tickets, logger: logger}
}

// HandleReturn - provider redirect after the customer pays
func (h *CallbackHandler) HandleReturn(e *core.RequestEvent) error {
	provider := e.Request.PathValue("provider")

	q, err := parseReturnQuery(provider, e.Request.URL.Query().Get("pidx"),
		e.Request.URL.Query().Get("purchase_order_id"),
		e.Request.URL.Query().Get("data"))
	if err != nil {
		h.logger.Warn("payment callback: bad query", "provider", provider, "error", err)
		return e.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid callback"})
	}

	request, err := h.tickets.ConfirmPayment(e.Request.Context(), provider, q)
	if err != nil {
		h.logger.Warn("payment callback: confirmation failed", "provider", provider, "order_id", q.OrderID, "error", err)
		return e.JSON(http.StatusBadGateway, map[string]any{"success": false, "error": "Payment could not be verified"})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"requestId":      request.ID,
		"payment_status": request.PaymentStatus,
	})
}

// parseReturnQuery normalizes the two providers' return parameters.
// Khalti sends pidx + purchase_order_id as plain query values; eSewa
// sends a base64 JSON blob in data.
func parseReturnQuery(provider, pidx, purchaseOrderID, data string) (*gateway.VerifyQuery, error) {
	if gateway.Provider(provider) == gateway.ProviderEsewa && data != "" {
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, err
		}

		var payload struct {
			TransactionUUID string `json:"transaction_uuid"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}

		return &gateway.VerifyQuery{OrderID: payload.TransactionUUID}, nil
	}

	return &gateway.VerifyQuery{OrderID: purchaseOrderID, Token: pidx}, nil
}
