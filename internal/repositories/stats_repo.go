package repositories

import (
	"context"

	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/models"
)

// StatsRepository aggregates the dashboard counters.
type StatsRepository struct {
	store *database.Store
}

func NewStatsRepository(store *database.Store) *StatsRepository {
	return &StatsRepository{store: store}
}

func (r *StatsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	err := r.store.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM beneficiaries WHERE status = 'ACTIVE'`,
	).Scan(&stats.TotalBeneficiaries)
	if err != nil {
		return nil, database.MapError(err)
	}

	// DATE() truncation differs per engine
	today := `SELECT COUNT(*) FROM distributions WHERE DATE(created_at) = DATE('now')`
	if r.store.Dialect == database.DialectPostgres {
		today = `SELECT COUNT(*) FROM distributions WHERE created_at::date = CURRENT_DATE`
	}
	if err := r.store.DB.QueryRowContext(ctx, today).Scan(&stats.DistributionsToday); err != nil {
		return nil, database.MapError(err)
	}

	err = r.store.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE current_stock <= minimum_stock AND status = 'ACTIVE'`,
	).Scan(&stats.LowStockItems)
	if err != nil {
		return nil, database.MapError(err)
	}

	return &stats, nil
}
