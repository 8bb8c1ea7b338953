//go:build integration
// +build integration

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/aeroparts-be/internal/adapters/db"
	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/test/helpers"
)

type InventoryRepositorySuite struct {
	suite.Suite
	testDB  *helpers.TestDB
	repo    *db.InventoryRepository
	logRepo *db.ActivityLogRepository
	ctx     context.Context
}

func (s *InventoryRepositorySuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.repo = db.NewInventoryRepository(s.testDB.Database, helpers.TestLogger())
	s.logRepo = db.NewActivityLogRepository(s.testDB.Database, helpers.TestLogger())
	s.ctx = context.Background()
}

func (s *InventoryRepositorySuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
}

func (s *InventoryRepositorySuite) createItem(overrides ...func(*domain.InventoryItem)) *domain.InventoryItem {
	item := helpers.CreateTestInventoryItem(overrides...)
	s.Require().NoError(s.repo.Create(s.ctx, item))
	return item
}

func (s *InventoryRepositorySuite) TestCreateAndFetch() {
	item := s.createItem(func(i *domain.InventoryItem) {
		i.UnitCost = decimal.RequireFromString("18450.75")
		i.Location = "MIA-B2"
	})

	found, err := s.repo.FetchStatusByID(s.ctx, item.InventoryID)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(item.PartNumber, found.PartNumber)
	s.Equal(domain.InitialStatus, found.Status())
	s.True(item.UnitCost.Equal(found.UnitCost))
	s.Equal("MIA-B2", found.Location)
	s.Equal(int64(1), found.Version)
	s.Nil(found.StatusUpdatedAt)
}

func (s *InventoryRepositorySuite) TestFetchStatusByID_Missing() {
	found, err := s.repo.FetchStatusByID(s.ctx, uuid.New())
	s.NoError(err)
	s.Nil(found)
}

func (s *InventoryRepositorySuite) TestFetchStatusByIDs_SkipsUnknownAndKeepsOrder() {
	a := s.createItem()
	b := s.createItem()

	items, err := s.repo.FetchStatusByIDs(s.ctx, []uuid.UUID{b.InventoryID, uuid.New(), a.InventoryID})
	s.NoError(err)
	s.Require().Len(items, 2)
	s.Equal(b.InventoryID, items[0].InventoryID)
	s.Equal(a.InventoryID, items[1].InventoryID)
}

func (s *InventoryRepositorySuite) TestUpdateStatusByID() {
	item := s.createItem()
	inRepair := domain.PhysicalInRepair
	who := "line-maintenance"
	now := time.Now().UTC().Truncate(time.Microsecond)

	updated, err := s.repo.UpdateStatusByID(s.ctx, item.InventoryID, domain.StatusPatch{
		PhysicalStatus:  &inRepair,
		UpdatedBy:       &who,
		StatusChanged:   true,
		ExpectedVersion: item.Version,
		UpdatedAt:       now,
	})
	s.NoError(err)
	s.Equal(domain.PhysicalInRepair, updated.PhysicalStatus)
	s.Equal(domain.BusinessAvailable, updated.BusinessStatus)
	s.Equal("line-maintenance", updated.StatusUpdatedBy)
	s.Require().NotNil(updated.StatusUpdatedAt)
	s.True(now.Equal(*updated.StatusUpdatedAt))
	s.Equal(item.Version+1, updated.Version)
}

func (s *InventoryRepositorySuite) TestUpdateStatusByID_StaleVersion() {
	item := s.createItem()
	reserved := domain.BusinessReserved

	_, err := s.repo.UpdateStatusByID(s.ctx, item.InventoryID, domain.StatusPatch{
		BusinessStatus:  &reserved,
		StatusChanged:   true,
		ExpectedVersion: item.Version + 5,
		UpdatedAt:       time.Now(),
	})
	s.True(errors.Is(err, domain.ErrConcurrentUpdate))
}

func (s *InventoryRepositorySuite) TestUpdateStatusByIDs_AllOrNothing() {
	a := s.createItem()
	b := s.createItem()
	transit := domain.PhysicalInTransit
	now := time.Now()

	_, err := s.repo.UpdateStatusByIDs(s.ctx, []domain.ItemStatusPatch{
		{InventoryID: a.InventoryID, Patch: domain.StatusPatch{PhysicalStatus: &transit, StatusChanged: true, ExpectedVersion: a.Version, UpdatedAt: now}},
		{InventoryID: b.InventoryID, Patch: domain.StatusPatch{PhysicalStatus: &transit, StatusChanged: true, ExpectedVersion: b.Version + 1, UpdatedAt: now}},
	})
	s.True(errors.Is(err, domain.ErrConcurrentUpdate))

	// the first row must be rolled back with the second
	found, err := s.repo.FetchStatusByID(s.ctx, a.InventoryID)
	s.NoError(err)
	s.Equal(domain.PhysicalDepot, found.PhysicalStatus)
	s.Equal(a.Version, found.Version)

	updated, err := s.repo.UpdateStatusByIDs(s.ctx, []domain.ItemStatusPatch{
		{InventoryID: a.InventoryID, Patch: domain.StatusPatch{PhysicalStatus: &transit, StatusChanged: true, ExpectedVersion: a.Version, UpdatedAt: now}},
		{InventoryID: b.InventoryID, Patch: domain.StatusPatch{PhysicalStatus: &transit, StatusChanged: true, ExpectedVersion: b.Version, UpdatedAt: now}},
	})
	s.NoError(err)
	s.Len(updated, 2)
	for _, item := range updated {
		s.Equal(domain.PhysicalInTransit, item.PhysicalStatus)
	}
}

func (s *InventoryRepositorySuite) TestSchemaRejectsSoldInRepair() {
	item := s.createItem()
	inRepair := domain.PhysicalInRepair
	sold := domain.BusinessSold

	_, err := s.repo.UpdateStatusByID(s.ctx, item.InventoryID, domain.StatusPatch{
		PhysicalStatus:  &inRepair,
		BusinessStatus:  &sold,
		StatusChanged:   true,
		ExpectedVersion: item.Version,
		UpdatedAt:       time.Now(),
	})
	s.Error(err)
	s.False(errors.Is(err, domain.ErrConcurrentUpdate))
}

func (s *InventoryRepositorySuite) TestSoftDelete() {
	item := s.createItem()

	s.NoError(s.repo.SoftDelete(s.ctx, item.InventoryID, item.Version))

	found, err := s.repo.FetchStatusByID(s.ctx, item.InventoryID)
	s.NoError(err)
	s.Nil(found)

	err = s.repo.SoftDelete(s.ctx, item.InventoryID, item.Version+1)
	s.True(errors.Is(err, domain.ErrConcurrentUpdate))
}

func (s *InventoryRepositorySuite) TestActivityLogs() {
	item := s.createItem()
	old := time.Now().Add(-100 * 24 * time.Hour)

	for _, at := range []time.Time{old, time.Now()} {
		s.NoError(s.logRepo.RecordStatusChange(s.ctx, domain.StatusChangedEvent{
			InventoryID: item.InventoryID,
			PartNumber:  item.PartNumber,
			Changes: domain.DiffStatus(domain.InitialStatus,
				domain.StatusPair{Physical: domain.PhysicalInTransit, Business: domain.BusinessAvailable}),
			ChangedBy:  "dispatcher",
			Source:     domain.SourceSingleUpdate,
			OccurredAt: at,
		}))
	}

	deleted, err := s.logRepo.DeleteOlderThan(s.ctx, time.Now().Add(-90*24*time.Hour))
	s.NoError(err)
	s.Equal(int64(1), deleted)
}

func TestInventoryRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(InventoryRepositorySuite))
}
