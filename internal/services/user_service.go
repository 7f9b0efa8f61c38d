package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aidsync/aidsync/internal/models"
	pkgauth "github.com/aidsync/aidsync/pkg/auth"
	pkglogger "github.com/aidsync/aidsync/pkg/logger"
	"github.com/aidsync/aidsync/pkg/security"
)

// UserService handles staff account administration.
type UserService struct {
	repo   AccountRepository
	logger *slog.Logger
	audit  *pkglogger.AuditLogger
}

func NewUserService(repo AccountRepository, logger *slog.Logger, audit *pkglogger.AuditLogger) *UserService {
	return &UserService{repo: repo, logger: logger, audit: audit}
}

// CreateAccount registers a staff account with a hashed password.
func (s *UserService) CreateAccount(ctx context.Context, username, password, email, fullName string, role models.Role) (*models.Account, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)

	if !security.IsValidUsername(username) {
		return nil, fmt.Errorf("invalid username: %w", models.ErrBadRequest)
	}
	if fullName == "" {
		return nil, fmt.Errorf("full name is required: %w", models.ErrBadRequest)
	}
	if email != "" && !security.IsValidEmail(email) {
		return nil, fmt.Errorf("invalid email: %w", models.ErrBadRequest)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role: %w", models.ErrBadRequest)
	}
	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, err
	}

	// Uniqueness checks before the insert; the unique index is the
	// backstop under concurrency.
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check username availability", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	if email != "" {
		inUse, err := s.repo.EmailInUse(ctx, email)
		if err != nil {
			s.logger.Error("failed to check email availability", slog.Any("error", err))
			return nil, models.ErrUnavailable
		}
		if inUse {
			return nil, models.ErrConflict
		}
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	acct := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FullName:     fullName,
		Role:         role,
		Status:       models.StatusActive,
	}

	created, err := s.repo.Create(ctx, acct)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create account", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	s.logger.Info("account created", slog.Int64("account_id", created.ID))
	s.audit.LogAccountAction("account_created", created.ID, map[string]string{
		"role": string(created.Role),
	})

	return created.Scrubbed(), nil
}

// ListAccounts returns staff accounts with password hashes scrubbed.
func (s *UserService) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list accounts", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	scrubbed := make([]*models.Account, 0, len(accounts))
	for _, a := range accounts {
		scrubbed = append(scrubbed, a.Scrubbed())
	}
	return scrubbed, nil
}

// UpdateAccount changes profile fields, role or status.
func (s *UserService) UpdateAccount(ctx context.Context, id int64, fullName, email string, role models.Role, status models.AccountStatus) (*models.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role: %w", models.ErrBadRequest)
	}
	switch status {
	case models.StatusActive, models.StatusInactive, models.StatusLocked:
	default:
		return nil, fmt.Errorf("unknown status: %w", models.ErrBadRequest)
	}
	if email != "" && !security.IsValidEmail(email) {
		return nil, fmt.Errorf("invalid email: %w", models.ErrBadRequest)
	}

	updated, err := s.repo.Update(ctx, id, &models.Account{
		FullName: strings.TrimSpace(fullName),
		Email:    strings.TrimSpace(email),
		Role:     role,
		Status:   status,
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update account", slog.Int64("account_id", id), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	s.audit.LogAccountAction("account_updated", id, map[string]string{
		"role":   string(role),
		"status": string(status),
	})
	return updated.Scrubbed(), nil
}

// UnlockAccount clears the lockout counter and restores ACTIVE status.
func (s *UserService) UnlockAccount(ctx context.Context, id int64) error {
	if err := s.repo.Unlock(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to unlock account", slog.Int64("account_id", id), slog.Any("error", err))
		return models.ErrUnavailable
	}

	s.audit.LogAccountAction("account_unlocked", id, nil)
	return nil
}
