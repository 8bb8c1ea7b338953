// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

// Options tunes store and cache behaviour of the status service
type Options struct {
	// StoreTimeout bounds every individual fetch or write. Zero means no bound.
	StoreTimeout time.Duration
	CacheTTL     time.Duration
}

// InventoryStatusService handles inventory status business logic
type InventoryStatusService struct {
	repo    ports.InventoryRepository
	cache   ports.CacheRepository
	events  ports.StatusEventPublisher
	opts    Options
	logger  *slog.Logger
	nowFunc func() time.Time
	fills   fillGuard
}

// Statically assert that *InventoryStatusService implements the InventoryStatusService interface.
var _ ports.InventoryStatusService = (*InventoryStatusService)(nil)

// NewInventoryStatusService creates a new inventory status service
func NewInventoryStatusService(
	repo ports.InventoryRepository,
	cache ports.CacheRepository,
	events ports.StatusEventPublisher,
	opts Options,
	logger *slog.Logger,
) *InventoryStatusService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &InventoryStatusService{
		repo:    repo,
		cache:   cache,
		events:  events,
		opts:    opts,
		logger:  logger.With(slog.String("service", "inventory_status")),
		nowFunc: time.Now,
	}
}

// WithClock replaces the service clock. Used by tests.
func (s *InventoryStatusService) WithClock(now func() time.Time) *InventoryStatusService {
	s.nowFunc = now
	return s
}

// StatusCacheKey returns the cache key for an item's status row
func StatusCacheKey(id uuid.UUID) string {
	return "inv:status:" + id.String()
}

// UpdateStatus validates and applies a status change to a single item
func (s *InventoryStatusService) UpdateStatus(ctx context.Context, id uuid.UUID, update domain.StatusUpdate) (*domain.StatusUpdateResult, error) {
	if id == uuid.Nil {
		return nil, domain.NewInputError(domain.MsgInventoryIDRequired)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	current, err := s.fetchOne(ctx, id)
	if err != nil {
		return nil, err
	}

	desired := update.Resolve(current.Status())
	if err := domain.ValidateTransition(current.Status(), desired); err != nil {
		s.logger.WarnContext(ctx, "status transition rejected",
			slog.String("inventory_id", id.String()),
			slog.String("from", current.Status().String()),
			slog.String("to", desired.String()),
			slog.String("reason", err.Error()))
		return nil, err
	}

	patch := domain.NewStatusPatch(update, current, s.nowFunc())

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	updated, err := s.repo.UpdateStatusByID(storeCtx, id, patch)
	if err != nil {
		return nil, s.classifyWriteError("update inventory status", err)
	}

	s.invalidate(ctx, id)

	changes := domain.DiffStatus(current.Status(), updated.Status())
	if changes.Any() {
		s.publish(ctx, domain.StatusChangedEvent{
			InventoryID: id,
			PartNumber:  updated.PartNumber,
			Changes:     changes,
			ChangedBy:   deref(update.UpdatedBy),
			Notes:       deref(update.Notes),
			Source:      domain.SourceSingleUpdate,
			OccurredAt:  patch.UpdatedAt,
		})
	}

	s.logger.InfoContext(ctx, "updated inventory status",
		slog.String("inventory_id", id.String()),
		slog.String("from", current.Status().String()),
		slog.String("to", updated.Status().String()),
		slog.Bool("changed", changes.Any()))

	return &domain.StatusUpdateResult{Item: updated, Changes: changes}, nil
}

// BulkUpdateStatus applies one status change to many items, all or nothing.
// Ids that do not resolve to a row are skipped and reported as not found.
func (s *InventoryStatusService) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, update domain.StatusUpdate) (*domain.BulkStatusResult, error) {
	if len(ids) == 0 {
		return nil, domain.NewInputError(domain.MsgInventoryIDsRequired)
	}
	if len(ids) > domain.MaxBulkStatusItems {
		return nil, domain.NewInputError(domain.MsgBulkLimitExceeded)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	unique := uniqueIDs(ids)

	fetchCtx, cancelFetch := s.storeContext(ctx)
	items, err := s.repo.FetchStatusByIDs(fetchCtx, unique)
	cancelFetch()
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch inventory statuses", Err: err}
	}
	if len(items) == 0 {
		return nil, &domain.NotFoundError{Message: domain.MsgNoItemsFound, IDs: unique}
	}

	notFound := missingIDs(unique, items)

	var validationErrors []domain.ValidationError
	for i := range items {
		desired := update.Resolve(items[i].Status())
		if err := domain.ValidateTransition(items[i].Status(), desired); err != nil {
			validationErrors = append(validationErrors, domain.ValidationError{
				InventoryID: items[i].InventoryID,
				PartNumber:  items[i].PartNumber,
				Error:       err.Error(),
			})
		}
	}

	if len(validationErrors) > 0 {
		s.logger.WarnContext(ctx, "bulk status update rejected",
			slog.Int("total_items", len(items)),
			slog.Int("invalid_items", len(validationErrors)))
		return nil, &domain.BulkValidationError{
			Errors:      validationErrors,
			ValidItems:  len(items) - len(validationErrors),
			TotalItems:  len(items),
			NotFoundIDs: notFound,
		}
	}

	now := s.nowFunc()
	before := make(map[uuid.UUID]domain.StatusPair, len(items))
	patches := make([]domain.ItemStatusPatch, len(items))
	for i := range items {
		before[items[i].InventoryID] = items[i].Status()
		patches[i] = domain.ItemStatusPatch{
			InventoryID: items[i].InventoryID,
			Patch:       domain.NewStatusPatch(update, &items[i], now),
		}
	}

	writeCtx, cancelWrite := s.storeContext(ctx)
	defer cancelWrite()

	updated, err := s.repo.UpdateStatusByIDs(writeCtx, patches)
	if err != nil {
		return nil, s.classifyWriteError("bulk update inventory status", err)
	}

	keys := make([]uuid.UUID, len(updated))
	for i := range updated {
		keys[i] = updated[i].InventoryID
	}
	s.invalidate(ctx, keys...)

	for i := range updated {
		changes := domain.DiffStatus(before[updated[i].InventoryID], updated[i].Status())
		if !changes.Any() {
			continue
		}
		s.publish(ctx, domain.StatusChangedEvent{
			InventoryID: updated[i].InventoryID,
			PartNumber:  updated[i].PartNumber,
			Changes:     changes,
			ChangedBy:   deref(update.UpdatedBy),
			Notes:       deref(update.Notes),
			Source:      domain.SourceBulkUpdate,
			OccurredAt:  now,
		})
	}

	s.logger.InfoContext(ctx, "bulk updated inventory status",
		slog.Int("total_requested", len(ids)),
		slog.Int("total_updated", len(updated)),
		slog.Int("not_found", len(notFound)))

	return &domain.BulkStatusResult{
		UpdatedItems: updated,
		UpdateSummary: domain.BulkUpdateSummary{
			TotalRequested: len(ids),
			TotalUpdated:   len(updated),
			PhysicalStatus: update.PhysicalStatus,
			BusinessStatus: update.BusinessStatus,
			UpdatedBy:      deref(update.UpdatedBy),
			UpdatedAt:      now,
			NotFoundIDs:    notFound,
		},
	}, nil
}

// GetStatus returns an item's status row, served from cache when possible
func (s *InventoryStatusService) GetStatus(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	key := StatusCacheKey(id)

	var cached domain.InventoryItem
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	gen := s.fills.snapshot(id)
	item, err := s.fetchOne(ctx, id)
	if err != nil {
		return nil, err
	}

	filled := s.fills.fillIfUnchanged(id, gen, func() {
		if err := s.cache.SetWithTTL(ctx, key, item, s.opts.CacheTTL); err != nil {
			s.logger.WarnContext(ctx, "failed to cache inventory status",
				slog.String("inventory_id", id.String()),
				slog.String("error", err.Error()))
		}
	})
	if !filled {
		s.logger.DebugContext(ctx, "skipped caching status superseded by a concurrent write",
			slog.String("inventory_id", id.String()))
	}

	return item, nil
}

// CancelItem moves an available item to cancelled
func (s *InventoryStatusService) CancelItem(ctx context.Context, id uuid.UUID, cancelledBy, notes *string) (*domain.InventoryItem, error) {
	current, err := s.fetchOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.BusinessStatus != domain.BusinessAvailable {
		return nil, &domain.TransitionError{
			Reason: domain.MsgOnlyAvailableCancel,
			From:   current.Status(),
			To:     domain.StatusPair{Physical: current.PhysicalStatus, Business: domain.BusinessCancelled},
		}
	}

	cancelled := domain.BusinessCancelled
	update := domain.StatusUpdate{BusinessStatus: &cancelled, UpdatedBy: cancelledBy, Notes: notes}
	if err := domain.ValidateTransition(current.Status(), update.Resolve(current.Status())); err != nil {
		return nil, err
	}

	patch := domain.NewStatusPatch(update, current, s.nowFunc())

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	updated, err := s.repo.UpdateStatusByID(storeCtx, id, patch)
	if err != nil {
		return nil, s.classifyWriteError("cancel inventory item", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, domain.StatusChangedEvent{
		InventoryID: id,
		PartNumber:  updated.PartNumber,
		Changes:     domain.DiffStatus(current.Status(), updated.Status()),
		ChangedBy:   deref(cancelledBy),
		Notes:       deref(notes),
		Source:      domain.SourceCancel,
		OccurredAt:  patch.UpdatedAt,
	})

	s.logger.InfoContext(ctx, "cancelled inventory item",
		slog.String("inventory_id", id.String()),
		slog.String("part_number", updated.PartNumber))

	return updated, nil
}

// DeleteItem soft deletes an available or cancelled item
func (s *InventoryStatusService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	current, err := s.fetchOne(ctx, id)
	if err != nil {
		return err
	}

	if current.BusinessStatus != domain.BusinessAvailable && current.BusinessStatus != domain.BusinessCancelled {
		return &domain.TransitionError{Reason: domain.MsgOnlyCancelledDelete, From: current.Status(), To: current.Status()}
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.SoftDelete(storeCtx, id, current.Version); err != nil {
		return s.classifyWriteError("delete inventory item", err)
	}

	s.invalidate(ctx, id)

	s.logger.InfoContext(ctx, "deleted inventory item",
		slog.String("inventory_id", id.String()),
		slog.String("business_status", string(current.BusinessStatus)))

	return nil
}

func (s *InventoryStatusService) fetchOne(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	item, err := s.repo.FetchStatusByID(storeCtx, id)
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch inventory status", Err: err}
	}
	if item == nil {
		return nil, &domain.NotFoundError{Message: domain.MsgItemNotFound, IDs: []uuid.UUID{id}}
	}
	return item, nil
}

func (s *InventoryStatusService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

func (s *InventoryStatusService) classifyWriteError(op string, err error) error {
	if errors.Is(err, domain.ErrConcurrentUpdate) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &domain.StoreError{Op: op, Err: err}
}

func (s *InventoryStatusService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		s.fills.bump(id)
		keys[i] = StatusCacheKey(id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate inventory status cache",
			slog.Int("keys", len(keys)),
			slog.String("error", err.Error()))
	}
}

// publish never fails the request: the write is already committed
func (s *InventoryStatusService) publish(ctx context.Context, event domain.StatusChangedEvent) {
	if err := s.events.PublishStatusChanged(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish status change",
			slog.String("inventory_id", event.InventoryID.String()),
			slog.String("error", err.Error()))
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(requested []uuid.UUID, found []domain.InventoryItem) []uuid.UUID {
	present := make(map[uuid.UUID]struct{}, len(found))
	for i := range found {
		present[found[i].InventoryID] = struct{}{}
	}
	missing := []uuid.UUID{}
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
