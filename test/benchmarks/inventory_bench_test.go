package benchmarks

import (
	"context"
	"log/slog"
	"strconv"
	"testing"

	"github.com/google/uuid"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/services"
	"github.com/ammerola/aeroparts-be/test/helpers"
)

func newBenchmarkService(items []domain.InventoryItem) *services.InventoryStatusService {
	return services.NewInventoryStatusService(
		newMemoryRepository(items),
		nopCache{},
		nopPublisher{},
		services.Options{},
		slog.New(slog.DiscardHandler),
	)
}

func BenchmarkValidateTransition(b *testing.B) {
	pairs := []struct {
		current domain.StatusPair
		desired domain.StatusPair
	}{
		{domain.InitialStatus, domain.StatusPair{Physical: domain.PhysicalInTransit, Business: domain.BusinessSold}},
		{domain.InitialStatus, domain.StatusPair{Physical: domain.PhysicalInRepair, Business: domain.BusinessSold}},
		{domain.StatusPair{Physical: domain.PhysicalDepot, Business: domain.BusinessSold}, domain.StatusPair{Physical: domain.PhysicalInTransit, Business: domain.BusinessSold}},
		{domain.InitialStatus, domain.StatusPair{Physical: domain.PhysicalInRepair, Business: domain.BusinessReserved}},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pairs[i%len(pairs)]
		_ = domain.ValidateTransition(p.current, p.desired)
	}
}

func BenchmarkInventoryStatusOperations(b *testing.B) {
	ctx := context.Background()

	b.Run("UpdateStatus", func(b *testing.B) {
		items := helpers.CreateTestInventoryItems(100)
		service := newBenchmarkService(items)

		// Alternate between two valid states so every call writes
		reserved, available := domain.BusinessReserved, domain.BusinessAvailable
		updates := []domain.StatusUpdate{
			{BusinessStatus: &reserved},
			{BusinessStatus: &available},
		}

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			id := items[i%len(items)].InventoryID
			_, _ = service.UpdateStatus(ctx, id, updates[(i/len(items))%2])
		}
	})

	b.Run("GetStatus", func(b *testing.B) {
		items := helpers.CreateTestInventoryItems(100)
		service := newBenchmarkService(items)

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.GetStatus(ctx, items[i%len(items)].InventoryID)
		}
	})

	for _, size := range []int{10, 50, domain.MaxBulkStatusItems} {
		b.Run("BulkUpdateStatus/"+strconv.Itoa(size), func(b *testing.B) {
			items := helpers.CreateTestInventoryItems(size)
			service := newBenchmarkService(items)

			ids := make([]uuid.UUID, len(items))
			for i := range items {
				ids[i] = items[i].InventoryID
			}

			inRepair, depot := domain.PhysicalInRepair, domain.PhysicalDepot
			updates := []domain.StatusUpdate{
				{PhysicalStatus: &inRepair},
				{PhysicalStatus: &depot},
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = service.BulkUpdateStatus(ctx, ids, updates[i%2])
			}
		})
	}

	b.Run("BulkUpdateStatus/rejected", func(b *testing.B) {
		items := helpers.CreateTestInventoryItems(domain.MaxBulkStatusItems)
		items[len(items)-1].BusinessStatus = domain.BusinessSold
		service := newBenchmarkService(items)

		ids := make([]uuid.UUID, len(items))
		for i := range items {
			ids[i] = items[i].InventoryID
		}
		inTransit := domain.PhysicalInTransit

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.BulkUpdateStatus(ctx, ids, domain.StatusUpdate{PhysicalStatus: &inTransit})
		}
	})
}
