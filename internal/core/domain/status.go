// internal/core/domain/status.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transition rejection reasons. These strings are part of the API contract.
const (
	ReasonSoldInRepair      = "Cannot mark items as sold while they are in repair"
	ReasonSoldItemRelocated = "Cannot change physical status of sold items"
	ReasonReservedInRepair  = "Reserved items should not be in repair status"
)

// Status update input messages
const (
	MsgStatusFieldRequired  = "At least one status field (physical_status or business_status) is required"
	MsgInventoryIDRequired  = "inventory_id is required"
	MsgInventoryIDsRequired = "inventory_ids array is required and cannot be empty"
	MsgBulkLimitExceeded    = "Bulk operations are limited to 100 items at a time"
	MsgNoItemsFound         = "No inventory items found with provided IDs"
	MsgBulkValidationFailed = "Status transition validation failed for some items"
	MsgItemNotFound         = "Inventory item not found"
	MsgOnlyAvailableCancel  = "Only available items can be cancelled"
	MsgOnlyCancelledDelete  = "Only available or cancelled items can be deleted"
)

// MaxBulkStatusItems caps the number of ids in one bulk status request
const MaxBulkStatusItems = 100

// ValidateTransition checks a move from current to desired against the business rules.
// Both pairs must be fully resolved. Rules are evaluated in order and the first match wins.
func ValidateTransition(current, desired StatusPair) error {
	if desired.Business == BusinessSold && desired.Physical == PhysicalInRepair {
		return &TransitionError{Reason: ReasonSoldInRepair, From: current, To: desired}
	}

	// keyed on the prior business status, not the target
	if current.Business == BusinessSold && desired.Physical != current.Physical {
		return &TransitionError{Reason: ReasonSoldItemRelocated, From: current, To: desired}
	}

	if desired.Business == BusinessReserved && desired.Physical == PhysicalInRepair {
		return &TransitionError{Reason: ReasonReservedInRepair, From: current, To: desired}
	}

	return nil
}

// StatusUpdate is a requested change to one or both status dimensions.
// A nil status field means "unchanged".
type StatusUpdate struct {
	PhysicalStatus *PhysicalStatus
	BusinessStatus *BusinessStatus
	UpdatedBy      *string
	Notes          *string
}

// Validate checks the update before any store access
func (u StatusUpdate) Validate() error {
	if u.PhysicalStatus == nil && u.BusinessStatus == nil {
		return NewInputError(MsgStatusFieldRequired)
	}
	if u.PhysicalStatus != nil && !u.PhysicalStatus.Valid() {
		return NewInputError(fmt.Sprintf("Invalid physical_status. Must be one of: %s", joinPhysical(PhysicalStatuses)))
	}
	if u.BusinessStatus != nil && !u.BusinessStatus.Assignable() {
		return NewInputError(fmt.Sprintf("Invalid business_status. Must be one of: %s", joinBusiness(AssignableBusinessStatuses)))
	}
	return nil
}

// Resolve fills every omitted field from current, producing the post-update pair
func (u StatusUpdate) Resolve(current StatusPair) StatusPair {
	desired := current
	if u.PhysicalStatus != nil {
		desired.Physical = *u.PhysicalStatus
	}
	if u.BusinessStatus != nil {
		desired.Business = *u.BusinessStatus
	}
	return desired
}

// StatusPatch is what gets written for a single item
type StatusPatch struct {
	PhysicalStatus  *PhysicalStatus
	BusinessStatus  *BusinessStatus
	UpdatedBy       *string
	Notes           *string
	StatusChanged   bool
	ExpectedVersion int64
	UpdatedAt       time.Time
}

// NewStatusPatch builds the patch for one item. Only supplied fields are written.
func NewStatusPatch(u StatusUpdate, current *InventoryItem, now time.Time) StatusPatch {
	desired := u.Resolve(current.Status())
	return StatusPatch{
		PhysicalStatus:  u.PhysicalStatus,
		BusinessStatus:  u.BusinessStatus,
		UpdatedBy:       u.UpdatedBy,
		Notes:           u.Notes,
		StatusChanged:   desired != current.Status(),
		ExpectedVersion: current.Version,
		UpdatedAt:       now,
	}
}

// ItemStatusPatch binds a patch to an item for batched writes
type ItemStatusPatch struct {
	InventoryID uuid.UUID
	Patch       StatusPatch
}

// FieldChange describes the before/after of one status dimension
type FieldChange struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Changed bool   `json:"changed"`
}

// StatusChanges summarises what an update did to each status dimension
type StatusChanges struct {
	PhysicalStatus FieldChange `json:"physical_status"`
	BusinessStatus FieldChange `json:"business_status"`
}

// Any reports whether either dimension changed
func (c StatusChanges) Any() bool {
	return c.PhysicalStatus.Changed || c.BusinessStatus.Changed
}

// DiffStatus compares two status pairs
func DiffStatus(before, after StatusPair) StatusChanges {
	return StatusChanges{
		PhysicalStatus: FieldChange{
			From:    string(before.Physical),
			To:      string(after.Physical),
			Changed: before.Physical != after.Physical,
		},
		BusinessStatus: FieldChange{
			From:    string(before.Business),
			To:      string(after.Business),
			Changed: before.Business != after.Business,
		},
	}
}

// StatusUpdateResult is returned by the single-item updater
type StatusUpdateResult struct {
	Item    *InventoryItem `json:"data"`
	Changes StatusChanges  `json:"changes"`
}

// ValidationError reports one item rejected during bulk validation
type ValidationError struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	PartNumber  string    `json:"part_number"`
	Error       string    `json:"error"`
}

// BulkUpdateSummary describes a committed bulk update
type BulkUpdateSummary struct {
	TotalRequested int             `json:"total_requested"`
	TotalUpdated   int             `json:"total_updated"`
	PhysicalStatus *PhysicalStatus `json:"physical_status,omitempty"`
	BusinessStatus *BusinessStatus `json:"business_status,omitempty"`
	UpdatedBy      string          `json:"updated_by,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
	NotFoundIDs    []uuid.UUID     `json:"not_found_ids"`
}

// BulkStatusResult is returned by the bulk updater
type BulkStatusResult struct {
	UpdatedItems  []InventoryItem   `json:"updated_items"`
	UpdateSummary BulkUpdateSummary `json:"update_summary"`
}

// StatusChangedEvent is emitted once per item whose status pair changed
type StatusChangedEvent struct {
	InventoryID uuid.UUID     `json:"inventory_id"`
	PartNumber  string        `json:"part_number"`
	Changes     StatusChanges `json:"changes"`
	ChangedBy   string        `json:"changed_by,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Source      string        `json:"source"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// Event sources
const (
	SourceSingleUpdate = "status_update"
	SourceBulkUpdate   = "bulk_status_update"
	SourceCancel       = "cancel"
)

func joinPhysical(values []PhysicalStatus) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinBusiness(values []BusinessStatus) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
