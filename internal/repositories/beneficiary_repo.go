package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/models"
)

const beneficiaryColumns = `id, code, full_name, birth_date, gender, barangay, contact_number, is_household_head, family_size, is_pwd, is_senior_citizen, is_solo_parent, priority_level, status, created_at, updated_at`

// BeneficiaryRepository handles database operations for beneficiaries.
type BeneficiaryRepository struct {
	store *database.Store
}

func NewBeneficiaryRepository(store *database.Store) *BeneficiaryRepository {
	return &BeneficiaryRepository{store: store}
}

func scanBeneficiaryRow(scanner rowScanner) (*models.Beneficiary, error) {
	var b models.Beneficiary
	var birthDate *time.Time

	err := scanner.Scan(
		&b.ID, &b.Code, &b.FullName, &birthDate, &b.Gender,
		&b.Barangay, &b.ContactNumber, &b.IsHouseholdHead, &b.FamilySize,
		&b.IsPWD, &b.IsSeniorCitizen, &b.IsSoloParent,
		&b.PriorityLevel, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapError(err)
	}

	b.BirthDate = birthDate
	return &b, nil
}

// List returns beneficiaries matching the filter, newest first.
func (r *BeneficiaryRepository) List(ctx context.Context, filter models.BeneficiaryFilter, limit, offset int) ([]*models.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE 1=1`
	args := make([]interface{}, 0, 5)

	if filter.Search != "" {
		query += ` AND (full_name LIKE ? OR code LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Barangay != "" {
		query += ` AND barangay = ?`
		args = append(args, filter.Barangay)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.store.DB.QueryContext(ctx, r.store.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries: %w", err)
	}
	defer rows.Close()

	beneficiaries := make([]*models.Beneficiary, 0)
	for rows.Next() {
		b, err := scanBeneficiaryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		beneficiaries = append(beneficiaries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return beneficiaries, nil
}

func (r *BeneficiaryRepository) GetByID(ctx context.Context, id int64) (*models.Beneficiary, error) {
	query := r.store.Rebind(`SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE id = ?`)
	return scanBeneficiaryRow(r.store.DB.QueryRowContext(ctx, query, id))
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b *models.Beneficiary) (*models.Beneficiary, error) {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if b.Status == "" {
		b.Status = models.BeneficiaryActive
	}

	query := r.store.Rebind(`
		INSERT INTO beneficiaries (code, full_name, birth_date, gender, barangay, contact_number, is_household_head, family_size, is_pwd, is_senior_citizen, is_solo_parent, priority_level, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + beneficiaryColumns)

	return scanBeneficiaryRow(r.store.DB.QueryRowContext(ctx, query,
		b.Code, b.FullName, b.BirthDate, b.Gender, b.Barangay,
		b.ContactNumber, b.IsHouseholdHead, b.FamilySize,
		b.IsPWD, b.IsSeniorCitizen, b.IsSoloParent,
		b.PriorityLevel, b.Status, b.CreatedAt, b.UpdatedAt,
	))
}

func (r *BeneficiaryRepository) Update(ctx context.Context, id int64, b *models.Beneficiary) (*models.Beneficiary, error) {
	query := r.store.Rebind(`
		UPDATE beneficiaries
		SET full_name = ?, birth_date = ?, gender = ?, barangay = ?, contact_number = ?, is_household_head = ?, family_size = ?, is_pwd = ?, is_senior_citizen = ?, is_solo_parent = ?, priority_level = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + beneficiaryColumns)

	return scanBeneficiaryRow(r.store.DB.QueryRowContext(ctx, query,
		b.FullName, b.BirthDate, b.Gender, b.Barangay, b.ContactNumber,
		b.IsHouseholdHead, b.FamilySize, b.IsPWD, b.IsSeniorCitizen,
		b.IsSoloParent, b.PriorityLevel, b.Status, time.Now(), id,
	))
}

// Deactivate soft-deletes: beneficiaries are never physically removed.
func (r *BeneficiaryRepository) Deactivate(ctx context.Context, id int64) error {
	query := r.store.Rebind(`UPDATE beneficiaries SET status = 'INACTIVE', updated_at = ? WHERE id = ?`)

	result, err := r.store.DB.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return database.MapError(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// NextCodeSequence returns the highest numeric suffix among existing
// BEN-prefixed codes, used to generate the next registration code.
func (r *BeneficiaryRepository) NextCodeSequence(ctx context.Context) (int64, error) {
	query := r.store.Rebind(`SELECT COALESCE(MAX(CAST(SUBSTR(code, 5) AS INTEGER)), 0) FROM beneficiaries WHERE code LIKE 'BEN-%'`)
	if r.store.Dialect == database.DialectPostgres {
		query = `SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM 5) AS INTEGER)), 0) FROM beneficiaries WHERE code LIKE 'BEN-%'`
	}

	var max int64
	if err := r.store.DB.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, database.MapError(err)
	}
	return max + 1, nil
}
