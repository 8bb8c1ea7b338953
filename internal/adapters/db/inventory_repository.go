// internal/adapters/db/inventory_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ammerola/aeroparts-be/internal/core/domain"
	"github.com/ammerola/aeroparts-be/internal/core/ports"
)

var inventoryColumns = []string{
	"inventory_id", "part_number", "serial_number", "description", "condition",
	"quantity", "unit_cost", "location",
	"physical_status", "business_status", "status_updated_at", "status_updated_by",
	"notes", "version", "created_at", "updated_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// InventoryRepository implements ports.InventoryRepository on PostgreSQL
type InventoryRepository struct {
	db     *Database
	logger *slog.Logger
}

var _ ports.InventoryRepository = (*InventoryRepository)(nil)

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *Database, logger *slog.Logger) *InventoryRepository {
	return &InventoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory")),
	}
}

// Create inserts a new inventory item
func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query, args, err := psql.Insert("inventory").
		Columns(
			"inventory_id", "part_number", "serial_number", "description", "condition",
			"quantity", "unit_cost", "location", "physical_status", "business_status",
			"notes", "version", "created_at", "updated_at",
		).
		Values(
			item.InventoryID, item.PartNumber, nullText(item.SerialNumber), nullText(item.Description), nullText(item.Condition),
			item.Quantity, item.UnitCost, nullText(item.Location), string(item.PhysicalStatus), string(item.BusinessStatus),
			nullText(item.Notes), item.Version, item.CreatedAt, item.UpdatedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory item created",
		slog.String("inventory_id", item.InventoryID.String()),
		slog.String("part_number", item.PartNumber))

	return nil
}

// FetchStatusByID retrieves a live inventory item, or nil if there is none
func (r *InventoryRepository) FetchStatusByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	query, args, err := psql.Select(inventoryColumns...).
		From("inventory").
		Where(squirrel.Eq{"inventory_id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := scanInventoryItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch inventory status: %w", err)
	}

	return item, nil
}

// FetchStatusByIDs retrieves every live item among ids, in request order
func (r *InventoryRepository) FetchStatusByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.InventoryItem, error) {
	if len(ids) == 0 {
		return []domain.InventoryItem{}, nil
	}

	query, args, err := psql.Select(inventoryColumns...).
		From("inventory").
		Where(squirrel.Eq{"inventory_id": ids}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory statuses: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]domain.InventoryItem, len(ids))
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		byID[item.InventoryID] = *item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	items := make([]domain.InventoryItem, 0, len(byID))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
			delete(byID, id)
		}
	}

	return items, nil
}

// UpdateStatusByID writes one patch, conditioned on the version the caller read
func (r *InventoryRepository) UpdateStatusByID(ctx context.Context, id uuid.UUID, patch domain.StatusPatch) (*domain.InventoryItem, error) {
	query, args, err := buildStatusUpdate(id, patch).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update: %w", err)
	}

	item, err := scanInventoryItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrConcurrentUpdate)
		}
		return nil, fmt.Errorf("failed to update inventory status: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory status updated",
		slog.String("inventory_id", id.String()),
		slog.Int64("version", item.Version))

	return item, nil
}

// UpdateStatusByIDs writes every patch in one transaction. A single
// version mismatch rolls back the whole batch.
func (r *InventoryRepository) UpdateStatusByIDs(ctx context.Context, patches []domain.ItemStatusPatch) ([]domain.InventoryItem, error) {
	if len(patches) == 0 {
		return []domain.InventoryItem{}, nil
	}

	updated := make([]domain.InventoryItem, 0, len(patches))

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range patches {
			query, args, err := buildStatusUpdate(p.InventoryID, p.Patch).ToSql()
			if err != nil {
				return fmt.Errorf("failed to build update for %s: %w", p.InventoryID, err)
			}
			batch.Queue(query, args...)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for _, p := range patches {
			item, err := scanInventoryItem(br.QueryRow())
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("inventory item %s: %w", p.InventoryID, domain.ErrConcurrentUpdate)
				}
				return fmt.Errorf("failed to update item %s: %w", p.InventoryID, err)
			}
			updated = append(updated, *item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "inventory statuses updated",
		slog.Int("count", len(updated)))

	return updated, nil
}

// SoftDelete marks an item as deleted, conditioned on its version
func (r *InventoryRepository) SoftDelete(ctx context.Context, id uuid.UUID, expectedVersion int64) error {
	now := time.Now()
	query, args, err := psql.Update("inventory").
		Set("deleted_at", now).
		Set("updated_at", now).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"inventory_id": id, "version": expectedVersion}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to soft delete inventory item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %s: %w", id, domain.ErrConcurrentUpdate)
	}

	r.logger.InfoContext(ctx, "inventory item soft deleted",
		slog.String("inventory_id", id.String()))

	return nil
}

// buildStatusUpdate sets only the fields present in the patch
func buildStatusUpdate(id uuid.UUID, patch domain.StatusPatch) squirrel.UpdateBuilder {
	ub := psql.Update("inventory").
		Set("updated_at", patch.UpdatedAt).
		Set("version", squirrel.Expr("version + 1"))

	if patch.PhysicalStatus != nil {
		ub = ub.Set("physical_status", string(*patch.PhysicalStatus))
	}
	if patch.BusinessStatus != nil {
		ub = ub.Set("business_status", string(*patch.BusinessStatus))
	}
	if patch.UpdatedBy != nil {
		ub = ub.Set("status_updated_by", *patch.UpdatedBy)
	}
	if patch.Notes != nil {
		ub = ub.Set("notes", *patch.Notes)
	}
	if patch.StatusChanged {
		ub = ub.Set("status_updated_at", patch.UpdatedAt)
	}

	return ub.
		Where(squirrel.Eq{"inventory_id": id, "version": patch.ExpectedVersion}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(inventoryColumns, ", "))
}

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{}
	var serialNumber, description, condition, location, updatedBy, notes pgtype.Text
	var physical, business string

	err := row.Scan(
		&item.InventoryID, &item.PartNumber, &serialNumber, &description, &condition,
		&item.Quantity, &item.UnitCost, &location,
		&physical, &business, &item.StatusUpdatedAt, &updatedBy,
		&notes, &item.Version, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.SerialNumber = serialNumber.String
	item.Description = description.String
	item.Condition = condition.String
	item.Location = location.String
	item.StatusUpdatedBy = updatedBy.String
	item.Notes = notes.String
	item.PhysicalStatus = domain.PhysicalStatus(physical)
	item.BusinessStatus = domain.BusinessStatus(business)

	return item, nil
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
