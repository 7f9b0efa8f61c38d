package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/google/uuid"
)

// DistributionRepository defines persistence for aid hand-outs.
type DistributionRepository interface {
	Create(ctx context.Context, d *models.Distribution) (*models.Distribution, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*models.Distribution, error)
}

// DistributionService records hand-outs of stock to beneficiaries.
type DistributionService struct {
	repo          DistributionRepository
	beneficiaries BeneficiaryRepository
	logger        *slog.Logger
}

func NewDistributionService(repo DistributionRepository, beneficiaries BeneficiaryRepository, logger *slog.Logger) *DistributionService {
	return &DistributionService{
		repo:          repo,
		beneficiaries: beneficiaries,
		logger:        logger,
	}
}

// Record hands quantity of an item to a beneficiary, decrementing stock
// in the same transaction.
func (s *DistributionService) Record(ctx context.Context, beneficiaryID, itemID int64, quantity float64, distributedBy int64, remarks string) (*models.Distribution, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrBadRequest)
	}

	beneficiary, err := s.beneficiaries.GetByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get beneficiary for distribution",
			slog.Int64("beneficiary_id", beneficiaryID), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	if beneficiary.Status != models.BeneficiaryActive {
		return nil, fmt.Errorf("beneficiary is not active: %w", models.ErrBadRequest)
	}

	d := &models.Distribution{
		ReferenceNo:   uuid.New().String(),
		BeneficiaryID: beneficiaryID,
		ItemID:        itemID,
		Quantity:      quantity,
		DistributedBy: distributedBy,
		Remarks:       strings.TrimSpace(remarks),
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return nil, models.ErrNotFound
		case errors.Is(err, models.ErrInsufficientStock):
			return nil, models.ErrInsufficientStock
		}
		s.logger.Error("failed to record distribution", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	s.logger.Info("distribution recorded",
		slog.String("reference_no", created.ReferenceNo),
		slog.Int64("beneficiary_id", beneficiaryID),
		slog.Int64("item_id", itemID))
	return created, nil
}

func (s *DistributionService) ListRecent(ctx context.Context, limit, offset int) ([]*models.Distribution, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.ListRecent(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list distributions", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return list, nil
}
