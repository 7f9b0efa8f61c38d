package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/models"
)

// DistributionRepository handles database operations for aid hand-outs.
type DistributionRepository struct {
	store *database.Store
}

func NewDistributionRepository(store *database.Store) *DistributionRepository {
	return &DistributionRepository{store: store}
}

// Create records the distribution and decrements the item's stock in
// the same transaction, rejecting an overdraw.
func (r *DistributionRepository) Create(ctx context.Context, d *models.Distribution) (*models.Distribution, error) {
	d.CreatedAt = time.Now()

	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		deduct := r.store.Rebind(`
			UPDATE inventory_items SET current_stock = current_stock - ?, updated_at = ?
			WHERE id = ? AND current_stock >= ?`)

		result, err := tx.ExecContext(ctx, deduct, d.Quantity, d.CreatedAt, d.ItemID, d.Quantity)
		if err != nil {
			return database.MapError(err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			var exists int
			check := r.store.Rebind(`SELECT COUNT(*) FROM inventory_items WHERE id = ?`)
			if err := tx.QueryRowContext(ctx, check, d.ItemID).Scan(&exists); err != nil {
				return database.MapError(err)
			}
			if exists == 0 {
				return models.ErrNotFound
			}
			return models.ErrInsufficientStock
		}

		insert := r.store.Rebind(`
			INSERT INTO distributions (reference_no, beneficiary_id, item_id, quantity, distributed_by, remarks, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id`)

		// distributed_by is a nullable reference
		var by *int64
		if d.DistributedBy != 0 {
			by = &d.DistributedBy
		}

		return database.MapError(tx.QueryRowContext(ctx, insert,
			d.ReferenceNo, d.BeneficiaryID, d.ItemID, d.Quantity,
			by, d.Remarks, d.CreatedAt,
		).Scan(&d.ID))
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// ListRecent returns the newest distributions with beneficiary and item
// names joined in for display.
func (r *DistributionRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.Distribution, error) {
	query := r.store.Rebind(`
		SELECT d.id, d.reference_no, d.beneficiary_id, b.full_name, d.item_id, i.name, d.quantity, d.distributed_by, d.remarks, d.created_at
		FROM distributions d
		JOIN beneficiaries b ON b.id = d.beneficiary_id
		JOIN inventory_items i ON i.id = d.item_id
		ORDER BY d.created_at DESC
		LIMIT ? OFFSET ?`)

	rows, err := r.store.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query distributions: %w", err)
	}
	defer rows.Close()

	distributions := make([]*models.Distribution, 0)
	for rows.Next() {
		var d models.Distribution
		var distributedBy *int64
		err := rows.Scan(
			&d.ID, &d.ReferenceNo, &d.BeneficiaryID, &d.BeneficiaryName,
			&d.ItemID, &d.ItemName, &d.Quantity, &distributedBy,
			&d.Remarks, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		if distributedBy != nil {
			d.DistributedBy = *distributedBy
		}
		distributions = append(distributions, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return distributions, nil
}
