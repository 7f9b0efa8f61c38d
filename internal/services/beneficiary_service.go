package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aidsync/aidsync/internal/models"
)

// BeneficiaryRepository defines persistence for beneficiary records.
type BeneficiaryRepository interface {
	List(ctx context.Context, filter models.BeneficiaryFilter, limit, offset int) ([]*models.Beneficiary, error)
	GetByID(ctx context.Context, id int64) (*models.Beneficiary, error)
	Create(ctx context.Context, b *models.Beneficiary) (*models.Beneficiary, error)
	Update(ctx context.Context, id int64, b *models.Beneficiary) (*models.Beneficiary, error)
	Deactivate(ctx context.Context, id int64) error
	NextCodeSequence(ctx context.Context) (int64, error)
}

// BeneficiaryService handles beneficiary registration and lookup.
type BeneficiaryService struct {
	repo   BeneficiaryRepository
	logger *slog.Logger
}

func NewBeneficiaryService(repo BeneficiaryRepository, logger *slog.Logger) *BeneficiaryService {
	return &BeneficiaryService{repo: repo, logger: logger}
}

func (s *BeneficiaryService) List(ctx context.Context, filter models.BeneficiaryFilter, limit, offset int) ([]*models.Beneficiary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list beneficiaries", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return list, nil
}

func (s *BeneficiaryService) Get(ctx context.Context, id int64) (*models.Beneficiary, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get beneficiary", slog.Int64("id", id), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return b, nil
}

// Register creates a beneficiary with a generated BEN-NNNNNN code.
func (s *BeneficiaryService) Register(ctx context.Context, b *models.Beneficiary) (*models.Beneficiary, error) {
	b.FullName = strings.TrimSpace(b.FullName)
	if b.FullName == "" {
		return nil, fmt.Errorf("full name is required: %w", models.ErrBadRequest)
	}
	if b.FamilySize <= 0 {
		b.FamilySize = 1
	}
	if b.PriorityLevel < 1 || b.PriorityLevel > 5 {
		b.PriorityLevel = 3
	}

	seq, err := s.repo.NextCodeSequence(ctx)
	if err != nil {
		s.logger.Error("failed to get next beneficiary code", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	b.Code = fmt.Sprintf("BEN-%06d", seq)

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create beneficiary", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	s.logger.Info("beneficiary registered",
		slog.Int64("id", created.ID), slog.String("code", created.Code))
	return created, nil
}

func (s *BeneficiaryService) Update(ctx context.Context, id int64, b *models.Beneficiary) (*models.Beneficiary, error) {
	b.FullName = strings.TrimSpace(b.FullName)
	if b.FullName == "" {
		return nil, fmt.Errorf("full name is required: %w", models.ErrBadRequest)
	}

	updated, err := s.repo.Update(ctx, id, b)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update beneficiary", slog.Int64("id", id), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return updated, nil
}

// Deactivate soft-deletes the record; history stays intact.
func (s *BeneficiaryService) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to deactivate beneficiary", slog.Int64("id", id), slog.Any("error", err))
		return models.ErrUnavailable
	}
	return nil
}
