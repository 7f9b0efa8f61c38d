package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/models"
)

const inventoryColumns = `id, code, name, category, unit_of_measure, current_stock, minimum_stock, unit_cost, storage_location, status, created_at, updated_at`

// InventoryRepository handles database operations for stocked items.
type InventoryRepository struct {
	store *database.Store
}

func NewInventoryRepository(store *database.Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func scanItemRow(scanner rowScanner) (*models.InventoryItem, error) {
	var item models.InventoryItem

	err := scanner.Scan(
		&item.ID, &item.Code, &item.Name, &item.Category,
		&item.UnitOfMeasure, &item.CurrentStock, &item.MinimumStock,
		&item.UnitCost, &item.StorageLocation, &item.Status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapError(err)
	}

	return &item, nil
}

func (r *InventoryRepository) List(ctx context.Context, filter models.InventoryFilter, limit, offset int) ([]*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE 1=1`
	args := make([]interface{}, 0, 5)

	if filter.Search != "" {
		query += ` AND (name LIKE ? OR code LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.store.DB.QueryContext(ctx, r.store.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

func (r *InventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	query := r.store.Rebind(`SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = ?`)
	return scanItemRow(r.store.DB.QueryRowContext(ctx, query, id))
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.Status == "" {
		item.Status = models.ItemActive
	}

	query := r.store.Rebind(`
		INSERT INTO inventory_items (code, name, category, unit_of_measure, current_stock, minimum_stock, unit_cost, storage_location, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + inventoryColumns)

	return scanItemRow(r.store.DB.QueryRowContext(ctx, query,
		item.Code, item.Name, item.Category, item.UnitOfMeasure,
		item.CurrentStock, item.MinimumStock, item.UnitCost,
		item.StorageLocation, item.Status, item.CreatedAt, item.UpdatedAt,
	))
}

func (r *InventoryRepository) Update(ctx context.Context, id int64, item *models.InventoryItem) (*models.InventoryItem, error) {
	query := r.store.Rebind(`
		UPDATE inventory_items
		SET name = ?, category = ?, unit_of_measure = ?, minimum_stock = ?, unit_cost = ?, storage_location = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + inventoryColumns)

	return scanItemRow(r.store.DB.QueryRowContext(ctx, query,
		item.Name, item.Category, item.UnitOfMeasure, item.MinimumStock,
		item.UnitCost, item.StorageLocation, item.Status, time.Now(), id,
	))
}

// RecordMovement adjusts current stock and appends a movement row in
// one transaction. An OUT movement larger than the remaining stock
// fails with ErrInsufficientStock; the stock check and the adjustment
// happen in the same guarded UPDATE so concurrent issues cannot
// overdraw.
func (r *InventoryRepository) RecordMovement(ctx context.Context, itemID int64, movement models.StockMovementType, quantity float64, reason string, recordedBy int64) error {
	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		update := `
			UPDATE inventory_items SET current_stock = current_stock + ?, updated_at = ?
			WHERE id = ?`
		args := []interface{}{quantity, time.Now(), itemID}

		if movement == models.StockOut {
			update += ` AND current_stock >= ?`
			args[0] = -quantity
			args = append(args, quantity)
		}

		result, err := tx.ExecContext(ctx, r.store.Rebind(update), args...)
		if err != nil {
			return database.MapError(err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			// Either the item is missing or the guard rejected an overdraw
			var exists int
			check := r.store.Rebind(`SELECT COUNT(*) FROM inventory_items WHERE id = ?`)
			if err := tx.QueryRowContext(ctx, check, itemID).Scan(&exists); err != nil {
				return database.MapError(err)
			}
			if exists == 0 {
				return models.ErrNotFound
			}
			return models.ErrInsufficientStock
		}

		insert := r.store.Rebind(`
			INSERT INTO stock_movements (item_id, movement_type, quantity, reason, recorded_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`)

		// recorded_by is a nullable reference
		var by *int64
		if recordedBy != 0 {
			by = &recordedBy
		}

		_, err = tx.ExecContext(ctx, insert, itemID, movement, quantity, reason, by, time.Now())
		return database.MapError(err)
	})
}

// NextCodeSequence returns the highest numeric suffix among existing
// ITEM-prefixed codes.
func (r *InventoryRepository) NextCodeSequence(ctx context.Context) (int64, error) {
	query := r.store.Rebind(`SELECT COALESCE(MAX(CAST(SUBSTR(code, 6) AS INTEGER)), 0) FROM inventory_items WHERE code LIKE 'ITEM-%'`)
	if r.store.Dialect == database.DialectPostgres {
		query = `SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM 6) AS INTEGER)), 0) FROM inventory_items WHERE code LIKE 'ITEM-%'`
	}

	var max int64
	if err := r.store.DB.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, database.MapError(err)
	}
	return max + 1, nil
}
