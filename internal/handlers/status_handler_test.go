// internal/handlers/status_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/handlers"
	"github.com/ammerola/aeroparts-be/test/helpers"
	"github.com/ammerola/aeroparts-be/test/mocks"
)

func ptr[T any](v T) *T {
	return &v
}

func decodeError(t *testing.T, body []byte) handlers.ErrorResponse {
	t.Helper()
	var response handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &response))
	return response
}

func TestStatusHandler_UpdateStatus(t *testing.T) {
	item := helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.PhysicalStatus = domain.PhysicalInRepair
		i.Version = 2
	})
	itemID := item.InventoryID.String()

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockInventoryStatusService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "maintenance_dropoff_succeeds",
			body: fmt.Sprintf(`{"inventory_id":%q,"physical_status":"in_repair","status_updated_by":"tech-4"}`, itemID),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					UpdateStatus(gomock.Any(), item.InventoryID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, u domain.StatusUpdate) (*domain.StatusUpdateResult, error) {
						require.NotNil(t, u.PhysicalStatus)
						assert.Equal(t, domain.PhysicalInRepair, *u.PhysicalStatus)
						assert.Nil(t, u.BusinessStatus)
						assert.Equal(t, "tech-4", *u.UpdatedBy)
						return &domain.StatusUpdateResult{
							Item: item,
							Changes: domain.DiffStatus(
								domain.InitialStatus,
								domain.StatusPair{Physical: domain.PhysicalInRepair, Business: domain.BusinessAvailable},
							),
						}, nil
					})
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response handlers.StatusUpdateResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.True(t, response.Success)
				assert.Equal(t, "Inventory status updated successfully", response.Message)
				assert.Equal(t, item.InventoryID, response.Data.InventoryID)
				assert.True(t, response.Changes.PhysicalStatus.Changed)
				assert.Equal(t, "depot", response.Changes.PhysicalStatus.From)
				assert.Equal(t, "in_repair", response.Changes.PhysicalStatus.To)
				assert.False(t, response.Changes.BusinessStatus.Changed)
			},
		},
		{
			name:           "malformed_json",
			body:           `{"inventory_id":`,
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Invalid request body", decodeError(t, body).Error)
			},
		},
		{
			name:           "missing_inventory_id",
			body:           `{"physical_status":"depot"}`,
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "inventory_id is required", decodeError(t, body).Error)
			},
		},
		{
			name:           "invalid_uuid_format",
			body:           `{"inventory_id":"not-a-uuid","physical_status":"depot"}`,
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Invalid inventory ID format", decodeError(t, body).Error)
			},
		},
		{
			name: "no_status_field",
			body: fmt.Sprintf(`{"inventory_id":%q}`, itemID),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					UpdateStatus(gomock.Any(), item.InventoryID, domain.StatusUpdate{}).
					Return(nil, domain.NewInputError(domain.MsgStatusFieldRequired))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, domain.MsgStatusFieldRequired, decodeError(t, body).Error)
			},
		},
		{
			name: "sell_while_in_repair_rejected",
			body: fmt.Sprintf(`{"inventory_id":%q,"business_status":"sold"}`, itemID),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					UpdateStatus(gomock.Any(), item.InventoryID, gomock.Any()).
					Return(nil, &domain.TransitionError{Reason: domain.ReasonSoldInRepair})
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Cannot mark items as sold while they are in repair", decodeError(t, body).Error)
			},
		},
		{
			name: "item_not_found",
			body: fmt.Sprintf(`{"inventory_id":%q,"physical_status":"depot"}`, itemID),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					UpdateStatus(gomock.Any(), item.InventoryID, gomock.Any()).
					Return(nil, &domain.NotFoundError{Message: domain.MsgItemNotFound})
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Inventory item not found", decodeError(t, body).Error)
			},
		},
		{
			name: "concurrent_modification",
			body: fmt.Sprintf(`{"inventory_id":%q,"physical_status":"depot"}`, itemID),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					UpdateStatus(gomock.Any(), item.InventoryID, gomock.Any()).
					Return(nil, fmt.Errorf("update status: %w", domain.ErrConcurrentUpdate))
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "Inventory item was modified by another request, please retry", resp.Error)
				assert.Contains(t, resp.Details, "modified by another request")
			},
		},
		{
			name: "store_failure_reports_details",
			body: fmt.Sprintf(`{"inventory_id":%q,"physical_status":"depot"}`, itemID),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					UpdateStatus(gomock.Any(), item.InventoryID, gomock.Any()).
					Return(nil, &domain.StoreError{Op: "update status", Err: fmt.Errorf("connection reset by peer")})
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "Failed to update inventory status", resp.Error)
				assert.Equal(t, "connection reset by peer", resp.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryStatusService(ctrl)
			handler := handlers.NewStatusHandler(mockService, helpers.TestLogger())

			tt.setupMocks(mockService)

			req := httptest.NewRequest("PUT", "/api/v1/inventory/status", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.UpdateStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStatusHandler_BulkUpdateStatus(t *testing.T) {
	items := helpers.CreateTestInventoryItems(3)
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.InventoryID.String()
	}

	bulkBody := func(ids []string, extra string) string {
		raw, _ := json.Marshal(ids)
		return fmt.Sprintf(`{"inventory_ids":%s%s}`, raw, extra)
	}

	tooMany := make([]string, domain.MaxBulkStatusItems+1)
	for i := range tooMany {
		tooMany[i] = uuid.NewString()
	}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockInventoryStatusService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "commits_all_items",
			body: bulkBody(ids, `,"physical_status":"in_transit","status_updated_by":"ops"`),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					BulkUpdateStatus(gomock.Any(), gomock.Len(3), gomock.Any()).
					DoAndReturn(func(_ context.Context, got []uuid.UUID, u domain.StatusUpdate) (*domain.BulkStatusResult, error) {
						assert.Equal(t, items[0].InventoryID, got[0])
						assert.Equal(t, domain.PhysicalInTransit, *u.PhysicalStatus)
						return &domain.BulkStatusResult{
							UpdatedItems: items,
							UpdateSummary: domain.BulkUpdateSummary{
								TotalRequested: 3,
								TotalUpdated:   3,
								PhysicalStatus: u.PhysicalStatus,
								UpdatedBy:      "ops",
								UpdatedAt:      time.Now(),
								NotFoundIDs:    []uuid.UUID{},
							},
						}, nil
					})
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response handlers.BulkStatusResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.True(t, response.Success)
				assert.Equal(t, "Successfully updated status for 3 items", response.Message)
				assert.Len(t, response.Data.UpdatedItems, 3)
				assert.Equal(t, 3, response.Data.UpdateSummary.TotalUpdated)
				assert.Equal(t, "ops", response.Data.UpdateSummary.UpdatedBy)
			},
		},
		{
			name: "validation_failure_lists_every_rejection",
			body: bulkBody(ids, `,"business_status":"sold"`),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					BulkUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &domain.BulkValidationError{
						Errors: []domain.ValidationError{{
							InventoryID: items[1].InventoryID,
							PartNumber:  items[1].PartNumber,
							Error:       domain.ReasonSoldInRepair,
						}},
						ValidItems: 2,
						TotalItems: 3,
					})
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response handlers.BulkValidationResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Status transition validation failed for some items", response.Error)
				require.Len(t, response.ValidationErrors, 1)
				assert.Equal(t, items[1].InventoryID, response.ValidationErrors[0].InventoryID)
				assert.Equal(t, items[1].PartNumber, response.ValidationErrors[0].PartNumber)
				assert.Equal(t, domain.ReasonSoldInRepair, response.ValidationErrors[0].Error)
				assert.Equal(t, 2, response.ValidItems)
				assert.Equal(t, 3, response.TotalItems)
			},
		},
		{
			name:           "rejects_more_than_one_hundred_ids",
			body:           bulkBody(tooMany, `,"physical_status":"depot"`),
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Bulk operations are limited to 100 items at a time", decodeError(t, body).Error)
			},
		},
		{
			name: "empty_id_list",
			body: bulkBody([]string{}, `,"physical_status":"depot"`),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					BulkUpdateStatus(gomock.Any(), gomock.Len(0), gomock.Any()).
					Return(nil, domain.NewInputError(domain.MsgInventoryIDsRequired))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "inventory_ids array is required and cannot be empty", decodeError(t, body).Error)
			},
		},
		{
			name:           "invalid_id_in_list",
			body:           bulkBody([]string{ids[0], "bogus"}, `,"physical_status":"depot"`),
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "Invalid inventory ID format", resp.Error)
				assert.Equal(t, "bogus", resp.Details)
			},
		},
		{
			name: "no_items_found",
			body: bulkBody(ids, `,"physical_status":"depot"`),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					BulkUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &domain.NotFoundError{Message: domain.MsgNoItemsFound})
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "No inventory items found with provided IDs", decodeError(t, body).Error)
			},
		},
		{
			name: "write_failure",
			body: bulkBody(ids, `,"physical_status":"depot"`),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					BulkUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &domain.StoreError{Op: "bulk update status", Err: fmt.Errorf("deadlock detected")})
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "Failed to update inventory status", resp.Error)
				assert.Equal(t, "deadlock detected", resp.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryStatusService(ctrl)
			handler := handlers.NewStatusHandler(mockService, helpers.TestLogger())

			tt.setupMocks(mockService)

			req := httptest.NewRequest("PUT", "/api/v1/inventory/bulk-status", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.BulkUpdateStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestStatusHandler_GetStatus(t *testing.T) {
	item := helpers.CreateTestInventoryItem()

	tests := []struct {
		name           string
		id             string
		setupMocks     func(*mocks.MockInventoryStatusService)
		expectedStatus int
	}{
		{
			name: "returns_item",
			id:   item.InventoryID.String(),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().GetStatus(gomock.Any(), item.InventoryID).Return(item, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_uuid_format",
			id:             "123",
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not_found",
			id:   item.InventoryID.String(),
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().GetStatus(gomock.Any(), item.InventoryID).
					Return(nil, &domain.NotFoundError{Message: domain.MsgItemNotFound})
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryStatusService(ctrl)
			handler := handlers.NewStatusHandler(mockService, helpers.TestLogger())
			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/inventory/"+tt.id+"/status", nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response domain.InventoryItem
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, item.InventoryID, response.InventoryID)
				assert.Equal(t, item.PartNumber, response.PartNumber)
			}
		})
	}
}

func TestStatusHandler_CancelItem(t *testing.T) {
	item := helpers.CreateTestInventoryItem()
	cancelled := *item
	cancelled.BusinessStatus = domain.BusinessCancelled

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockInventoryStatusService)
		expectedStatus int
		wantError      string
	}{
		{
			name: "cancels_available_item",
			body: `{"cancelled_by":"buyer-desk","notes":"PO withdrawn"}`,
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					CancelItem(gomock.Any(), item.InventoryID, ptr("buyer-desk"), ptr("PO withdrawn")).
					Return(&cancelled, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "empty_body_is_allowed",
			body: "",
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					CancelItem(gomock.Any(), item.InventoryID, nil, nil).
					Return(&cancelled, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "rejects_reserved_item",
			body: `{}`,
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().
					CancelItem(gomock.Any(), item.InventoryID, nil, nil).
					Return(nil, &domain.TransitionError{Reason: domain.MsgOnlyAvailableCancel})
			},
			expectedStatus: http.StatusBadRequest,
			wantError:      "Only available items can be cancelled",
		},
		{
			name:           "malformed_body",
			body:           `{"cancelled_by":`,
			setupMocks:     func(m *mocks.MockInventoryStatusService) {},
			expectedStatus: http.StatusBadRequest,
			wantError:      "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryStatusService(ctrl)
			handler := handlers.NewStatusHandler(mockService, helpers.TestLogger())
			tt.setupMocks(mockService)

			id := item.InventoryID.String()
			req := httptest.NewRequest("POST", "/api/v1/inventory/"+id+"/cancel", strings.NewReader(tt.body))
			req.SetPathValue("id", id)
			w := httptest.NewRecorder()

			handler.CancelItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, w.Body.Bytes()).Error)
				return
			}

			var response struct {
				Success bool                 `json:"success"`
				Data    domain.InventoryItem `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.True(t, response.Success)
			assert.Equal(t, domain.BusinessCancelled, response.Data.BusinessStatus)
		})
	}
}

func TestStatusHandler_DeleteItem(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockInventoryStatusService)
		expectedStatus int
		wantError      string
	}{
		{
			name: "deletes_cancelled_item",
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().DeleteItem(gomock.Any(), id).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "rejects_sold_item",
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().DeleteItem(gomock.Any(), id).
					Return(&domain.TransitionError{Reason: domain.MsgOnlyCancelledDelete})
			},
			expectedStatus: http.StatusBadRequest,
			wantError:      "Only available or cancelled items can be deleted",
		},
		{
			name: "lost_race_with_writer",
			setupMocks: func(m *mocks.MockInventoryStatusService) {
				m.EXPECT().DeleteItem(gomock.Any(), id).
					Return(fmt.Errorf("delete item: %w", domain.ErrConcurrentUpdate))
			},
			expectedStatus: http.StatusConflict,
			wantError:      "Inventory item was modified by another request, please retry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockInventoryStatusService(ctrl)
			handler := handlers.NewStatusHandler(mockService, helpers.TestLogger())
			tt.setupMocks(mockService)

			req := httptest.NewRequest("DELETE", "/api/v1/inventory/"+id.String(), nil)
			req.SetPathValue("id", id.String())
			w := httptest.NewRecorder()

			handler.DeleteItem(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, w.Body.Bytes()).Error)
				return
			}

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, true, response["success"])
			assert.Equal(t, id.String(), response["inventory_id"])
		})
	}
}
