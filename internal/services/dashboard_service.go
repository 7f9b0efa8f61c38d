package services

import (
	"context"
	"log/slog"

	"github.com/aidsync/aidsync/internal/models"
)

// StatsRepository aggregates the dashboard counters.
type StatsRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type DashboardService struct {
	repo   StatsRepository
	logger *slog.Logger
}

func NewDashboardService(repo StatsRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		s.logger.Error("failed to load dashboard stats", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return stats, nil
}
