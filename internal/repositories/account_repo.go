package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/models"
)

const accountColumns = `id, username, password_hash, email, full_name, role, status, failed_login_attempts, last_login, created_at, updated_at`

// AccountRepository handles database operations for staff accounts.
type AccountRepository struct {
	store *database.Store
}

func NewAccountRepository(store *database.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccountRow(scanner rowScanner) (*models.Account, error) {
	var acct models.Account
	var email *string
	var lastLogin *time.Time

	err := scanner.Scan(
		&acct.ID, &acct.Username, &acct.PasswordHash, &email,
		&acct.FullName, &acct.Role, &acct.Status,
		&acct.FailedLoginAttempts, &lastLogin,
		&acct.CreatedAt, &acct.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapError(err)
	}

	if email != nil {
		acct.Email = *email
	}
	acct.LastLogin = lastLogin

	return &acct, nil
}

// GetByUsername looks up exactly one account by exact, case-sensitive
// username match.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := r.store.Rebind(`SELECT ` + accountColumns + ` FROM users WHERE username = ?`)
	return scanAccountRow(r.store.DB.QueryRowContext(ctx, query, username))
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := r.store.Rebind(`SELECT ` + accountColumns + ` FROM users WHERE id = ?`)
	return scanAccountRow(r.store.DB.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	query := r.store.Rebind(`SELECT ` + accountColumns + ` FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`)

	rows, err := r.store.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		acct, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Create(ctx context.Context, acct *models.Account) (*models.Account, error) {
	now := time.Now()
	acct.CreatedAt = now
	acct.UpdatedAt = now

	if acct.Status == "" {
		acct.Status = models.StatusActive
	}

	var email *string
	if acct.Email != "" {
		email = &acct.Email
	}

	query := r.store.Rebind(`
		INSERT INTO users (username, password_hash, email, full_name, role, status, failed_login_attempts, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
		RETURNING ` + accountColumns)

	return scanAccountRow(r.store.DB.QueryRowContext(ctx, query,
		acct.Username, acct.PasswordHash, email, acct.FullName,
		acct.Role, acct.Status, acct.CreatedAt, acct.UpdatedAt,
	))
}

// Update replaces the mutable profile fields (full name, email, role,
// status). Lockout bookkeeping goes through the dedicated methods.
func (r *AccountRepository) Update(ctx context.Context, id int64, acct *models.Account) (*models.Account, error) {
	var email *string
	if acct.Email != "" {
		email = &acct.Email
	}

	query := r.store.Rebind(`
		UPDATE users SET full_name = ?, email = ?, role = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + accountColumns)

	return scanAccountRow(r.store.DB.QueryRowContext(ctx, query,
		acct.FullName, email, acct.Role, acct.Status, time.Now(), id,
	))
}

// RecordFailure increments the failed-attempt counter and flips status
// to LOCKED in the same statement when the increment reaches the
// threshold. The read-modify-write happens server-side, so concurrent
// attempts against the same row serialize instead of losing updates.
// Returns the counter value after the increment.
func (r *AccountRepository) RecordFailure(ctx context.Context, id int64, threshold int) (int, error) {
	query := r.store.Rebind(`
		UPDATE users
		SET failed_login_attempts = failed_login_attempts + 1,
		    status = CASE WHEN failed_login_attempts + 1 >= ? THEN 'LOCKED' ELSE status END,
		    updated_at = ?
		WHERE id = ?
		RETURNING failed_login_attempts`)

	var attempts int
	err := r.store.DB.QueryRowContext(ctx, query, threshold, time.Now(), id).Scan(&attempts)
	if err != nil {
		return 0, database.MapError(err)
	}
	return attempts, nil
}

// RecordLogin resets the failed-attempt counter, restores ACTIVE status
// and stamps the last successful login, atomically.
func (r *AccountRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	query := r.store.Rebind(`
		UPDATE users
		SET failed_login_attempts = 0, status = 'ACTIVE', last_login = ?, updated_at = ?
		WHERE id = ?`)

	result, err := r.store.DB.ExecContext(ctx, query, at, at, id)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Unlock clears the lockout state: counter to zero, status ACTIVE.
func (r *AccountRepository) Unlock(ctx context.Context, id int64) error {
	query := r.store.Rebind(`
		UPDATE users
		SET failed_login_attempts = 0, status = 'ACTIVE', updated_at = ?
		WHERE id = ?`)

	result, err := r.store.DB.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored hash and stamps updated_at.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := r.store.Rebind(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`)

	result, err := r.store.DB.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// EmailInUse reports whether any account already uses the email.
func (r *AccountRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	query := r.store.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`)

	var count int
	if err := r.store.DB.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return false, database.MapError(err)
	}
	return count > 0, nil
}
