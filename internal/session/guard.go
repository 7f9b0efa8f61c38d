// Package session tracks the single authenticated identity of a
// running application instance. The Guard is constructed once in main
// and passed explicitly to whoever needs it; there is no package-level
// instance.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aidsync/aidsync/internal/models"
)

// DefaultWindow is the inactivity duration after which a live session
// is treated as expired.
const DefaultWindow = 30 * time.Minute

// Guard holds at most one authenticated account and its last-activity
// timestamp. All mutations are O(1) field assignments under one mutex;
// the interactive path and the background sweep never touch the fields
// unsynchronized.
type Guard struct {
	mu           sync.Mutex
	account      *models.Account
	lastActivity time.Time
	window       time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// NewGuard creates a guard with the given inactivity window. A zero or
// negative window falls back to DefaultWindow.
func NewGuard(window time.Duration, logger *slog.Logger) *Guard {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Guard{
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// Login replaces any existing session identity unconditionally and
// stamps last-activity to now.
func (g *Guard) Login(acct *models.Account) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.account = acct
	g.lastActivity = g.now()
	g.logger.Info("session started", slog.String("username", acct.Username))
}

// Logout clears the held identity. Idempotent.
func (g *Guard) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.account == nil {
		return
	}
	g.logger.Info("session ended", slog.String("username", g.account.Username))
	g.account = nil
	g.lastActivity = time.Time{}
}

// UpdateActivity stamps last-activity to now; no-op when no identity is
// held.
func (g *Guard) UpdateActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.account != nil {
		g.lastActivity = g.now()
	}
}

// IsLoggedIn reports whether an identity is held and the session is not
// stale. Total: never fails.
func (g *Guard) IsLoggedIn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.account != nil && !g.staleLocked()
}

// CurrentUser returns the held account, or nil when anonymous or stale.
func (g *Guard) CurrentUser() *models.Account {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.account == nil || g.staleLocked() {
		return nil
	}
	return g.account
}

// ExpireIfStale collapses a stale session to anonymous, returning the
// account that was expired. The background sweep calls this once per
// tick.
func (g *Guard) ExpireIfStale() (*models.Account, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.account == nil || !g.staleLocked() {
		return nil, false
	}

	expired := g.account
	g.account = nil
	g.lastActivity = time.Time{}
	g.logger.Info("session expired", slog.String("username", expired.Username))
	return expired, true
}

// staleLocked requires g.mu held.
func (g *Guard) staleLocked() bool {
	if g.lastActivity.IsZero() {
		return true
	}
	return g.now().Sub(g.lastActivity) > g.window
}
