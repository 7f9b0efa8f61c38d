package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aidsync/aidsync/internal/models"
	pkgauth "github.com/aidsync/aidsync/pkg/auth"
	pkglogger "github.com/aidsync/aidsync/pkg/logger"
	"github.com/aidsync/aidsync/pkg/security"
)

// AccountRepository defines the persistence operations the
// authentication subsystem needs. Lockout mutations must be atomic per
// account row; the repository provides that, not the service.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context, limit, offset int) ([]*models.Account, error)
	Create(ctx context.Context, acct *models.Account) (*models.Account, error)
	Update(ctx context.Context, id int64, acct *models.Account) (*models.Account, error)
	RecordFailure(ctx context.Context, id int64, threshold int) (int, error)
	RecordLogin(ctx context.Context, id int64, at time.Time) error
	Unlock(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	EmailInUse(ctx context.Context, email string) (bool, error)
}

// AuthService is the credential verifier: it owns every mutation of the
// lockout state (counter, status, last login).
type AuthService struct {
	repo   AccountRepository
	logger *slog.Logger
	audit  *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo AccountRepository, logger *slog.Logger, audit *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		repo:   repo,
		logger: logger,
		audit:  audit,
	}
}

// Authenticate verifies a username/password pair and applies the
// lockout policy. Outcomes:
//
//   - success: the account, password hash scrubbed
//   - models.ErrInvalidCredentials: unknown username, wrong password or
//     inactive account - indistinguishable to the caller
//   - models.ErrAccountLocked: locked before this attempt started
//   - models.ErrUnavailable: storage failure; never a false success
//
// The attempt that causes a lock still reports invalid credentials;
// only the next attempt sees locked.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	if username == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials")
		return nil, models.ErrInvalidCredentials
	}

	acct, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Logged for audit, never surfaced to the caller
			s.logger.Info("login failed: unknown username",
				slog.String("username", security.SanitizeForLogging(username)))
			s.audit.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				Username:      security.SanitizeForLogging(username),
				FailureReason: "unknown_username",
				Success:       false,
			})
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to get account by username", slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	if acct.Locked() {
		s.logger.Info("login blocked: account locked",
			slog.Int64("account_id", acct.ID),
			slog.Int("failed_attempts", acct.FailedLoginAttempts))
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			AccountID:     acct.ID,
			FailureReason: "account_locked",
			Success:       false,
		})
		return nil, models.ErrAccountLocked
	}

	if acct.Status == models.StatusInactive {
		s.logger.Info("login blocked: account inactive", slog.Int64("account_id", acct.ID))
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			AccountID:     acct.ID,
			FailureReason: "account_inactive",
			Success:       false,
		})
		return nil, models.ErrInvalidCredentials
	}

	if err := pkgauth.ComparePassword(acct.PasswordHash, password); err != nil {
		attempts, rerr := s.repo.RecordFailure(ctx, acct.ID, models.LockoutThreshold)
		if rerr != nil {
			s.logger.Error("failed to record failed attempt",
				slog.Int64("account_id", acct.ID), slog.Any("error", rerr))
			return nil, models.ErrUnavailable
		}

		reason := "invalid_credentials"
		if attempts >= models.LockoutThreshold {
			reason = "invalid_credentials_lockout"
			s.logger.Warn("account locked after repeated failures",
				slog.Int64("account_id", acct.ID),
				slog.Int("failed_attempts", attempts))
		}
		s.audit.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			AccountID:     acct.ID,
			FailureReason: reason,
			Success:       false,
		})
		return nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.RecordLogin(ctx, acct.ID, now); err != nil {
		s.logger.Error("failed to record login",
			slog.Int64("account_id", acct.ID), slog.Any("error", err))
		return nil, models.ErrUnavailable
	}

	acct.FailedLoginAttempts = 0
	acct.Status = models.StatusActive
	acct.LastLogin = &now

	s.logger.Info("login succeeded", slog.Int64("account_id", acct.ID))
	s.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		AccountID: acct.ID,
		Success:   true,
	})

	return acct.Scrubbed(), nil
}

// ChangePassword re-verifies the current password before storing a new
// hash at the same cost. It does not touch the lockout counter.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error {
	acct, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get account for password change",
			slog.Int64("account_id", accountID), slog.Any("error", err))
		return models.ErrUnavailable
	}

	if err := pkgauth.ComparePassword(acct.PasswordHash, currentPassword); err != nil {
		s.audit.LogPasswordChange(accountID, false)
		return models.ErrInvalidCredentials
	}

	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.Any("error", err))
		return models.ErrUnavailable
	}

	if err := s.repo.UpdatePassword(ctx, accountID, hash); err != nil {
		s.logger.Error("failed to update password",
			slog.Int64("account_id", accountID), slog.Any("error", err))
		return models.ErrUnavailable
	}

	s.audit.LogPasswordChange(accountID, true)
	return nil
}
