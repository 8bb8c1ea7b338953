// internal/handlers/status.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgInvalidIDFormat    = "Invalid inventory ID format"
	msgConcurrentModified = "Inventory item was modified by another request, please retry"
)

// StatusHandler handles inventory status HTTP requests
type StatusHandler struct {
	service ports.InventoryStatusService
	logger  *slog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(service ports.InventoryStatusService, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory_status")),
	}
}

// UpdateStatusRequest is the body of PUT /api/v1/inventory/status
type UpdateStatusRequest struct {
	InventoryID     string  `json:"inventory_id"`
	PhysicalStatus  *string `json:"physical_status,omitempty"`
	BusinessStatus  *string `json:"business_status,omitempty"`
	StatusUpdatedBy *string `json:"status_updated_by,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BulkUpdateStatusRequest is the body of PUT /api/v1/inventory/bulk-status
type BulkUpdateStatusRequest struct {
	InventoryIDs    []string `json:"inventory_ids"`
	PhysicalStatus  *string  `json:"physical_status,omitempty"`
	BusinessStatus  *string  `json:"business_status,omitempty"`
	StatusUpdatedBy *string  `json:"status_updated_by,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// CancelRequest is the optional body of POST /api/v1/inventory/{id}/cancel
type CancelRequest struct {
	CancelledBy *string `json:"cancelled_by,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// StatusUpdateResponse is returned by a successful single-item update
type StatusUpdateResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *domain.InventoryItem `json:"data"`
	Changes domain.StatusChanges  `json:"changes"`
}

// BulkStatusResponse is returned by a successful bulk update
type BulkStatusResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    *domain.BulkStatusResult `json:"data"`
}

// ErrorResponse is the generic error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// BulkValidationResponse lists every item that blocked a bulk update
type BulkValidationResponse struct {
	Error            string                   `json:"error"`
	ValidationErrors []domain.ValidationError `json:"validation_errors"`
	ValidItems       int                      `json:"valid_items"`
	TotalItems       int                      `json:"total_items"`
	NotFoundIDs      []uuid.UUID              `json:"not_found_ids,omitempty"`
}

// ToDomain converts the request into a domain status update
func (r *UpdateStatusRequest) ToDomain() domain.StatusUpdate {
	return toStatusUpdate(r.PhysicalStatus, r.BusinessStatus, r.StatusUpdatedBy, r.Notes)
}

// ToDomain converts the request into a domain status update
func (r *BulkUpdateStatusRequest) ToDomain() domain.StatusUpdate {
	return toStatusUpdate(r.PhysicalStatus, r.BusinessStatus, r.StatusUpdatedBy, r.Notes)
}

func toStatusUpdate(physical, business, updatedBy, notes *string) domain.StatusUpdate {
	update := domain.StatusUpdate{UpdatedBy: updatedBy, Notes: notes}
	if physical != nil {
		p := domain.PhysicalStatus(*physical)
		update.PhysicalStatus = &p
	}
	if business != nil {
		b := domain.BusinessStatus(*business)
		update.BusinessStatus = &b
	}
	return update
}

// UpdateStatus handles PUT /api/v1/inventory/status
func (h *StatusHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if req.InventoryID == "" {
		h.respondError(w, http.StatusBadRequest, domain.MsgInventoryIDRequired)
		return
	}

	id, err := uuid.Parse(req.InventoryID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidIDFormat)
		return
	}

	result, err := h.service.UpdateStatus(ctx, id, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "status update failed",
			slog.String("inventory_id", id.String()),
			slog.String("error", err.Error()))
		h.respondServiceError(w, err, "Failed to update inventory status")
		return
	}

	h.respondJSON(w, http.StatusOK, StatusUpdateResponse{
		Success: true,
		Message: "Inventory status updated successfully",
		Data:    result.Item,
		Changes: result.Changes,
	})
}

// BulkUpdateStatus handles PUT /api/v1/inventory/bulk-status
func (h *StatusHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkUpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	// Oversized requests are rejected before any id is looked at
	if len(req.InventoryIDs) > domain.MaxBulkStatusItems {
		h.respondError(w, http.StatusBadRequest, domain.MsgBulkLimitExceeded)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.InventoryIDs))
	for _, raw := range req.InventoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   msgInvalidIDFormat,
				Details: raw,
			})
			return
		}
		ids = append(ids, id)
	}

	result, err := h.service.BulkUpdateStatus(ctx, ids, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "bulk status update failed",
			slog.Int("requested", len(ids)),
			slog.String("error", err.Error()))
		h.respondServiceError(w, err, "Failed to update inventory status")
		return
	}

	h.respondJSON(w, http.StatusOK, BulkStatusResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully updated status for %d items", result.UpdateSummary.TotalUpdated),
		Data:    result,
	})
}

// GetStatus handles GET /api/v1/inventory/{id}/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidIDFormat)
		return
	}

	item, err := h.service.GetStatus(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get inventory status",
			slog.String("inventory_id", id.String()),
			slog.String("error", err.Error()))
		h.respondServiceError(w, err, "Failed to retrieve inventory status")
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// CancelItem handles POST /api/v1/inventory/{id}/cancel
func (h *StatusHandler) CancelItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidIDFormat)
		return
	}

	// The body is optional
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	item, err := h.service.CancelItem(ctx, id, req.CancelledBy, req.Notes)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel failed",
			slog.String("inventory_id", id.String()),
			slog.String("error", err.Error()))
		h.respondServiceError(w, err, "Failed to cancel inventory item")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Inventory item cancelled successfully",
		"data":    item,
	})
}

// DeleteItem handles DELETE /api/v1/inventory/{id}
func (h *StatusHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidIDFormat)
		return
	}

	if err := h.service.DeleteItem(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete failed",
			slog.String("inventory_id", idStr),
			slog.String("error", err.Error()))
		h.respondServiceError(w, err, "Failed to delete inventory item")
		return
	}

	h.logger.InfoContext(ctx, "inventory item deleted", slog.String("inventory_id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Inventory item deleted successfully",
		"inventory_id": idStr,
	})
}

// respondServiceError maps service errors onto status codes.
// storeMsg is the error text used when the data store fails.
func (h *StatusHandler) respondServiceError(w http.ResponseWriter, err error, storeMsg string) {
	var (
		inputErr      *domain.InputError
		transitionErr *domain.TransitionError
		bulkErr       *domain.BulkValidationError
		notFoundErr   *domain.NotFoundError
		storeErr      *domain.StoreError
	)

	switch {
	case errors.As(err, &inputErr):
		h.respondError(w, http.StatusBadRequest, inputErr.Message)
	case errors.As(err, &transitionErr):
		h.respondError(w, http.StatusBadRequest, transitionErr.Reason)
	case errors.As(err, &bulkErr):
		h.respondJSON(w, http.StatusBadRequest, BulkValidationResponse{
			Error:            domain.MsgBulkValidationFailed,
			ValidationErrors: bulkErr.Errors,
			ValidItems:       bulkErr.ValidItems,
			TotalItems:       bulkErr.TotalItems,
			NotFoundIDs:      bulkErr.NotFoundIDs,
		})
	case errors.As(err, &notFoundErr):
		h.respondError(w, http.StatusNotFound, notFoundErr.Message)
	case errors.Is(err, domain.ErrConcurrentUpdate):
		h.respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:   msgConcurrentModified,
			Details: err.Error(),
		})
	case errors.As(err, &storeErr):
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   storeMsg,
			Details: storeErr.Details(),
		})
	default:
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   storeMsg,
			Details: err.Error(),
		})
	}
}

// respondJSON writes a JSON response
func (h *StatusHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// respondError writes an error response
func (h *StatusHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message})
}
