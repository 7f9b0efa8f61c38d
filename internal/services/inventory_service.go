package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aidsync/aidsync/internal/models"
)

// InventoryRepository defines persistence for stocked items.
type InventoryRepository interface {
	List(ctx context.Context, filter models.InventoryFilter, limit, offset int) ([]*models.InventoryItem, error)
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	Update(ctx context.Context, id int64, item *models.InventoryItem) (*models.InventoryItem, error)
	RecordMovement(ctx context.Context, itemID int64, movement models.StockMovementType, quantity float64, reason string, recordedBy int64) error
	NextCodeSequence(ctx context.Context) (int64, error)
}

// InventoryService handles stock tracking.
type InventoryService struct {
	repo   InventoryRepository
	logger *slog.Logger
}

func NewInventoryService(repo InventoryRepository, logger *slog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) List(ctx context.Context, filter models.InventoryFilter, limit, offset int) ([]*models.InventoryItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list inventory", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return items, nil
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get inventory item", slog.Int64("id", id), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return item, nil
}

// Create adds an item with a generated ITEM-NNNNN code.
func (s *InventoryService) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, fmt.Errorf("item name is required: %w", models.ErrBadRequest)
	}
	if item.CurrentStock < 0 || item.MinimumStock < 0 || item.UnitCost < 0 {
		return nil, fmt.Errorf("negative quantities not allowed: %w", models.ErrBadRequest)
	}

	seq, err := s.repo.NextCodeSequence(ctx)
	if err != nil {
		s.logger.Error("failed to get next item code", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	item.Code = fmt.Sprintf("ITEM-%05d", seq)

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create inventory item", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	s.logger.Info("inventory item created",
		slog.Int64("id", created.ID), slog.String("code", created.Code))
	return created, nil
}

func (s *InventoryService) Update(ctx context.Context, id int64, item *models.InventoryItem) (*models.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, fmt.Errorf("item name is required: %w", models.ErrBadRequest)
	}

	updated, err := s.repo.Update(ctx, id, item)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update inventory item", slog.Int64("id", id), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}
	return updated, nil
}

// RecordMovement receives or issues stock.
func (s *InventoryService) RecordMovement(ctx context.Context, itemID int64, movement models.StockMovementType, quantity float64, reason string, recordedBy int64) error {
	if movement != models.StockIn && movement != models.StockOut {
		return fmt.Errorf("unknown movement type: %w", models.ErrBadRequest)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", models.ErrBadRequest)
	}

	err := s.repo.RecordMovement(ctx, itemID, movement, quantity, strings.TrimSpace(reason), recordedBy)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return models.ErrNotFound
		case errors.Is(err, models.ErrInsufficientStock):
			return models.ErrInsufficientStock
		}
		s.logger.Error("failed to record stock movement",
			slog.Int64("item_id", itemID), slog.Any("error", err))
		return models.ErrUnavailable
	}

	s.logger.Info("stock movement recorded",
		slog.Int64("item_id", itemID),
		slog.String("type", string(movement)),
		slog.Float64("quantity", quantity))
	return nil
}
