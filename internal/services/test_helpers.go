package services

import (
	"context"
	"time"

	"github.com/aidsync/aidsync/internal/models"
)

// MockAccountRepository implements AccountRepository for testing
type MockAccountRepository struct {
	GetByUsernameFunc  func(ctx context.Context, username string) (*models.Account, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Account, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]*models.Account, error)
	CreateFunc         func(ctx context.Context, acct *models.Account) (*models.Account, error)
	UpdateFunc         func(ctx context.Context, id int64, acct *models.Account) (*models.Account, error)
	RecordFailureFunc  func(ctx context.Context, id int64, threshold int) (int, error)
	RecordLoginFunc    func(ctx context.Context, id int64, at time.Time) error
	UnlockFunc         func(ctx context.Context, id int64) error
	UpdatePasswordFunc func(ctx context.Context, id int64, passwordHash string) error
	EmailInUseFunc     func(ctx context.Context, email string) (bool, error)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Account{}, nil
}

func (m *MockAccountRepository) Create(ctx context.Context, acct *models.Account) (*models.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, acct)
	}
	return nil, models.ErrUnavailable
}

func (m *MockAccountRepository) Update(ctx context.Context, id int64, acct *models.Account) (*models.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, acct)
	}
	return nil, models.ErrUnavailable
}

func (m *MockAccountRepository) RecordFailure(ctx context.Context, id int64, threshold int) (int, error) {
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, id, threshold)
	}
	return 0, models.ErrUnavailable
}

func (m *MockAccountRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	if m.RecordLoginFunc != nil {
		return m.RecordLoginFunc(ctx, id, at)
	}
	return nil
}

func (m *MockAccountRepository) Unlock(ctx context.Context, id int64) error {
	if m.UnlockFunc != nil {
		return m.UnlockFunc(ctx, id)
	}
	return nil
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockAccountRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	if m.EmailInUseFunc != nil {
		return m.EmailInUseFunc(ctx, email)
	}
	return false, nil
}

// MockBeneficiaryRepository implements BeneficiaryRepository for testing
type MockBeneficiaryRepository struct {
	ListFunc             func(ctx context.Context, filter models.BeneficiaryFilter, limit, offset int) ([]*models.Beneficiary, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*models.Beneficiary, error)
	CreateFunc           func(ctx context.Context, b *models.Beneficiary) (*models.Beneficiary, error)
	UpdateFunc           func(ctx context.Context, id int64, b *models.Beneficiary) (*models.Beneficiary, error)
	DeactivateFunc       func(ctx context.Context, id int64) error
	NextCodeSequenceFunc func(ctx context.Context) (int64, error)
}

func (m *MockBeneficiaryRepository) List(ctx context.Context, filter models.BeneficiaryFilter, limit, offset int) ([]*models.Beneficiary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	return []*models.Beneficiary{}, nil
}

func (m *MockBeneficiaryRepository) GetByID(ctx context.Context, id int64) (*models.Beneficiary, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockBeneficiaryRepository) Create(ctx context.Context, b *models.Beneficiary) (*models.Beneficiary, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	return nil, models.ErrUnavailable
}

func (m *MockBeneficiaryRepository) Update(ctx context.Context, id int64, b *models.Beneficiary) (*models.Beneficiary, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, b)
	}
	return nil, models.ErrUnavailable
}

func (m *MockBeneficiaryRepository) Deactivate(ctx context.Context, id int64) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}

func (m *MockBeneficiaryRepository) NextCodeSequence(ctx context.Context) (int64, error) {
	if m.NextCodeSequenceFunc != nil {
		return m.NextCodeSequenceFunc(ctx)
	}
	return 1, nil
}

// MockInventoryRepository implements InventoryRepository for testing
type MockInventoryRepository struct {
	ListFunc             func(ctx context.Context, filter models.InventoryFilter, limit, offset int) ([]*models.InventoryItem, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*models.InventoryItem, error)
	CreateFunc           func(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	UpdateFunc           func(ctx context.Context, id int64, item *models.InventoryItem) (*models.InventoryItem, error)
	RecordMovementFunc   func(ctx context.Context, itemID int64, movement models.StockMovementType, quantity float64, reason string, recordedBy int64) error
	NextCodeSequenceFunc func(ctx context.Context) (int64, error)
}

func (m *MockInventoryRepository) List(ctx context.Context, filter models.InventoryFilter, limit, offset int) ([]*models.InventoryItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, limit, offset)
	}
	return []*models.InventoryItem{}, nil
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil, models.ErrUnavailable
}

func (m *MockInventoryRepository) Update(ctx context.Context, id int64, item *models.InventoryItem) (*models.InventoryItem, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, item)
	}
	return nil, models.ErrUnavailable
}

func (m *MockInventoryRepository) RecordMovement(ctx context.Context, itemID int64, movement models.StockMovementType, quantity float64, reason string, recordedBy int64) error {
	if m.RecordMovementFunc != nil {
		return m.RecordMovementFunc(ctx, itemID, movement, quantity, reason, recordedBy)
	}
	return nil
}

func (m *MockInventoryRepository) NextCodeSequence(ctx context.Context) (int64, error) {
	if m.NextCodeSequenceFunc != nil {
		return m.NextCodeSequenceFunc(ctx)
	}
	return 1, nil
}

// MockDistributionRepository implements DistributionRepository for testing
type MockDistributionRepository struct {
	CreateFunc     func(ctx context.Context, d *models.Distribution) (*models.Distribution, error)
	ListRecentFunc func(ctx context.Context, limit, offset int) ([]*models.Distribution, error)
}

func (m *MockDistributionRepository) Create(ctx context.Context, d *models.Distribution) (*models.Distribution, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return nil, models.ErrUnavailable
}

func (m *MockDistributionRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.Distribution, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit, offset)
	}
	return []*models.Distribution{}, nil
}

// MockStatsRepository implements StatsRepository for testing
type MockStatsRepository struct {
	DashboardStatsFunc func(ctx context.Context) (*models.DashboardStats, error)
}

func (m *MockStatsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(ctx)
	}
	return &models.DashboardStats{}, nil
}

// fakeAccountStore is an in-memory AccountRepository with real lockout
// semantics, for sequential multi-attempt scenarios.
type fakeAccountStore struct {
	accounts map[string]*models.Account
}

func newFakeAccountStore(accounts ...*models.Account) *fakeAccountStore {
	s := &fakeAccountStore{accounts: make(map[string]*models.Account)}
	for _, a := range accounts {
		s.accounts[a.Username] = a
	}
	return s
}

func (s *fakeAccountStore) byID(id int64) *models.Account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *fakeAccountStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	a, ok := s.accounts[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (s *fakeAccountStore) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	a := s.byID(id)
	if a == nil {
		return nil, models.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (s *fakeAccountStore) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	out := make([]*models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (s *fakeAccountStore) Create(ctx context.Context, acct *models.Account) (*models.Account, error) {
	if _, ok := s.accounts[acct.Username]; ok {
		return nil, models.ErrConflict
	}
	acct.ID = int64(len(s.accounts) + 1)
	s.accounts[acct.Username] = acct
	c := *acct
	return &c, nil
}

func (s *fakeAccountStore) Update(ctx context.Context, id int64, acct *models.Account) (*models.Account, error) {
	a := s.byID(id)
	if a == nil {
		return nil, models.ErrNotFound
	}
	a.FullName = acct.FullName
	a.Email = acct.Email
	a.Role = acct.Role
	a.Status = acct.Status
	c := *a
	return &c, nil
}

func (s *fakeAccountStore) RecordFailure(ctx context.Context, id int64, threshold int) (int, error) {
	a := s.byID(id)
	if a == nil {
		return 0, models.ErrNotFound
	}
	a.FailedLoginAttempts++
	if a.FailedLoginAttempts >= threshold {
		a.Status = models.StatusLocked
	}
	return a.FailedLoginAttempts, nil
}

func (s *fakeAccountStore) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	a := s.byID(id)
	if a == nil {
		return models.ErrNotFound
	}
	a.FailedLoginAttempts = 0
	a.Status = models.StatusActive
	t := at
	a.LastLogin = &t
	return nil
}

func (s *fakeAccountStore) Unlock(ctx context.Context, id int64) error {
	a := s.byID(id)
	if a == nil {
		return models.ErrNotFound
	}
	a.FailedLoginAttempts = 0
	a.Status = models.StatusActive
	return nil
}

func (s *fakeAccountStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	a := s.byID(id)
	if a == nil {
		return models.ErrNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func (s *fakeAccountStore) EmailInUse(ctx context.Context, email string) (bool, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}
