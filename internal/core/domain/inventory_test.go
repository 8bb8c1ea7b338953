package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
)

func TestInventoryItem_Validate(t *testing.T) {
	tests := []struct {
		name      string
		item      *domain.InventoryItem
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_item_with_all_fields",
			item: &domain.InventoryItem{
				PartNumber:     "3214552-3",
				SerialNumber:   "SN-1001",
				Quantity:       1,
				UnitCost:       decimal.NewFromFloat(12500),
				PhysicalStatus: domain.PhysicalInRepair,
				BusinessStatus: domain.BusinessAvailable,
			},
			wantError: false,
		},
		{
			name: "missing_part_number",
			item: &domain.InventoryItem{
				Quantity: 1,
			},
			wantError: true,
			errorMsg:  "part_number is required",
		},
		{
			name: "blank_part_number",
			item: &domain.InventoryItem{
				PartNumber: "   ",
				Quantity:   1,
			},
			wantError: true,
			errorMsg:  "part_number is required",
		},
		{
			name: "zero_quantity",
			item: &domain.InventoryItem{
				PartNumber: "3214552-3",
				Quantity:   0,
			},
			wantError: true,
			errorMsg:  "quantity must be positive",
		},
		{
			name: "negative_unit_cost",
			item: &domain.InventoryItem{
				PartNumber: "3214552-3",
				Quantity:   1,
				UnitCost:   decimal.NewFromFloat(-1),
			},
			wantError: true,
			errorMsg:  "unit_cost cannot be negative",
		},
		{
			name: "unknown_physical_status",
			item: &domain.InventoryItem{
				PartNumber:     "3214552-3",
				Quantity:       1,
				PhysicalStatus: "hangar",
			},
			wantError: true,
			errorMsg:  "invalid physical_status: hangar",
		},
		{
			name: "unknown_business_status",
			item: &domain.InventoryItem{
				PartNumber:     "3214552-3",
				Quantity:       1,
				BusinessStatus: "leased",
			},
			wantError: true,
			errorMsg:  "invalid business_status: leased",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestInventoryItem_Validate_DefaultsToInitialStatus(t *testing.T) {
	item := &domain.InventoryItem{PartNumber: "D23189000-5", Quantity: 2}

	require.NoError(t, item.Validate())
	assert.Equal(t, domain.InitialStatus, item.Status())
}

func TestInventoryItem_PrepareForStorage(t *testing.T) {
	item := &domain.InventoryItem{PartNumber: "D23189000-5", Quantity: 1}

	item.PrepareForStorage()

	assert.NotEqual(t, uuid.Nil, item.InventoryID)
	assert.False(t, item.CreatedAt.IsZero())
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, int64(1), item.Version)

	existing := item.InventoryID
	item.PrepareForStorage()
	assert.Equal(t, existing, item.InventoryID)
}

func TestStatusEnums(t *testing.T) {
	for _, s := range domain.PhysicalStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, domain.PhysicalStatus("Depot").Valid(), "enum values are case-sensitive")
	assert.False(t, domain.PhysicalStatus("").Valid())

	assert.True(t, domain.BusinessCancelled.Valid())
	assert.False(t, domain.BusinessCancelled.Assignable())
	for _, s := range domain.AssignableBusinessStatuses {
		assert.True(t, s.Assignable(), s)
	}
	assert.False(t, domain.BusinessStatus("SOLD").Valid())
}
