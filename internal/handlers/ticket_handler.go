package handlers

import (
	"errors"
	"net/http"

	"event-solution/internal/services"
	"event-solution/internal/status"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Submit - public ticket request submission
func (h *TicketHandler) Submit(e *core.RequestEvent) error {
	var req services.SubmitTicketRequest
	if err := e.BindBody(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	result, err := h.tickets.Submit(e.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, status.ErrMissingRequiredFields) {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "Please fill in all required fields",
			})
		}
		if errors.Is(err, status.ErrPaymentFailed) {
			return e.JSON(http.StatusBadGateway, map[string]any{
				"success": false,
				"error":   "Payment initiation failed. Please try again.",
			})
		}
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Something went wrong. Please try again.",
		})
	}

	return e.JSON(http.StatusOK, result)
}

// List - operator board, newest first
func (h *TicketHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	requests, err := h.tickets.List(e.Request.Context())
	if err != nil {
		return apis.NewBadRequestError("Failed to list ticket requests", err)
	}

	return e.JSON(http.StatusOK, requests)
}

// UpdateStatus - operator status transition
func (h *TicketHandler) UpdateStatus(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	id := e.Request.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	request, err := h.tickets.UpdateStatus(e.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, status.ErrRequestNotFound) {
			return apis.NewNotFoundError("Ticket request not found", nil)
		}
		return apis.NewBadRequestError("Failed to update status", err)
	}

	return e.JSON(http.StatusOK, request)
}

// Delete - operator hard delete
func (h *TicketHandler) Delete(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	id := e.Request.PathValue("id")

	if err := h.tickets.Delete(e.Request.Context(), id); err != nil {
		if errors.Is(err, status.ErrRequestNotFound) {
			return apis.NewNotFoundError("Ticket request not found", nil)
		}
		return apis.NewBadRequestError("Failed to delete ticket request", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"success": true})
}
