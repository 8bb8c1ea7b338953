// internal/core/domain/inventory.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PhysicalStatus represents where a unit currently sits in the operational pipeline
type PhysicalStatus string

// Physical status constants
const (
	PhysicalDepot     PhysicalStatus = "depot"
	PhysicalInRepair  PhysicalStatus = "in_repair"
	PhysicalInTransit PhysicalStatus = "in_transit"
)

// PhysicalStatuses lists every physical status in display order
var PhysicalStatuses = []PhysicalStatus{PhysicalDepot, PhysicalInRepair, PhysicalInTransit}

// Valid reports whether s is a known physical status
func (s PhysicalStatus) Valid() bool {
	switch s {
	case PhysicalDepot, PhysicalInRepair, PhysicalInTransit:
		return true
	}
	return false
}

// BusinessStatus represents the commercial/ownership state of a unit
type BusinessStatus string

// Business status constants
const (
	BusinessAvailable BusinessStatus = "available"
	BusinessReserved  BusinessStatus = "reserved"
	BusinessSold      BusinessStatus = "sold"
	BusinessCancelled BusinessStatus = "cancelled"
)

// AssignableBusinessStatuses are the business statuses a status update may set.
// cancelled is only reachable through the cancellation guard.
var AssignableBusinessStatuses = []BusinessStatus{BusinessAvailable, BusinessReserved, BusinessSold}

// Valid reports whether s is a known business status
func (s BusinessStatus) Valid() bool {
	switch s {
	case BusinessAvailable, BusinessReserved, BusinessSold, BusinessCancelled:
		return true
	}
	return false
}

// Assignable reports whether s may be set through a status update
func (s BusinessStatus) Assignable() bool {
	switch s {
	case BusinessAvailable, BusinessReserved, BusinessSold:
		return true
	}
	return false
}

// StatusPair is the two-dimensional status of an inventory item
type StatusPair struct {
	Physical PhysicalStatus `json:"physical_status"`
	Business BusinessStatus `json:"business_status"`
}

// InitialStatus is the state every item starts from
var InitialStatus = StatusPair{Physical: PhysicalDepot, Business: BusinessAvailable}

func (p StatusPair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Physical, p.Business)
}

// InventoryItem represents a single serialized aviation part held in inventory
type InventoryItem struct {
	InventoryID     uuid.UUID       `json:"inventory_id"`
	PartNumber      string          `json:"part_number"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	Description     string          `json:"description,omitempty"`
	Condition       string          `json:"condition,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Location        string          `json:"location,omitempty"`
	PhysicalStatus  PhysicalStatus  `json:"physical_status"`
	BusinessStatus  BusinessStatus  `json:"business_status"`
	StatusUpdatedAt *time.Time      `json:"status_updated_at,omitempty"`
	StatusUpdatedBy string          `json:"status_updated_by,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
}

// Status returns the item's current status pair
func (i *InventoryItem) Status() StatusPair {
	return StatusPair{Physical: i.PhysicalStatus, Business: i.BusinessStatus}
}

// Validate performs domain validation on a new inventory item
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.PartNumber) == "" {
		return fmt.Errorf("part_number is required")
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if i.UnitCost.IsNegative() {
		return fmt.Errorf("unit_cost cannot be negative")
	}
	if i.PhysicalStatus == "" {
		i.PhysicalStatus = InitialStatus.Physical
	}
	if i.BusinessStatus == "" {
		i.BusinessStatus = InitialStatus.Business
	}
	if !i.PhysicalStatus.Valid() {
		return fmt.Errorf("invalid physical_status: %s", i.PhysicalStatus)
	}
	if !i.BusinessStatus.Valid() {
		return fmt.Errorf("invalid business_status: %s", i.BusinessStatus)
	}
	return nil
}

// PrepareForStorage prepares a new item for database storage
func (i *InventoryItem) PrepareForStorage() {
	if i.InventoryID == uuid.Nil {
		i.InventoryID = uuid.New()
	}

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	i.Version = 1
}
