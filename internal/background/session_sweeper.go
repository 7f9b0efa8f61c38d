package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/aidsync/aidsync/internal/session"
	pkglogger "github.com/aidsync/aidsync/pkg/logger"
)

// SessionSweeper periodically force-expires a stale session. It is the
// only autonomous behavior in the authentication subsystem.
type SessionSweeper struct {
	guard    *session.Guard
	audit    *pkglogger.AuditLogger
	logger   *slog.Logger
	interval time.Duration
	onExpire func()
	stopCh   chan struct{}
}

// NewSessionSweeper creates a sweeper. onExpire (optional) is invoked
// after an expired session has been cleared; the UI layer uses it to
// redirect to the login entry point.
func NewSessionSweeper(
	guard *session.Guard,
	audit *pkglogger.AuditLogger,
	logger *slog.Logger,
	interval time.Duration,
	onExpire func(),
) *SessionSweeper {
	return &SessionSweeper{
		guard:    guard,
		audit:    audit,
		logger:   logger,
		interval: interval,
		onExpire: onExpire,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic staleness check. It blocks until Stop is
// called or ctx is cancelled; no sweep runs after either.
func (sw *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.runSweep()
		case <-sw.stopCh:
			sw.logger.Info("session sweeper stopped")
			return
		case <-ctx.Done():
			sw.logger.Info("session sweeper context cancelled")
			return
		}
	}
}

func (sw *SessionSweeper) runSweep() {
	acct, expired := sw.guard.ExpireIfStale()
	if !expired {
		return
	}

	sw.logger.Info("stale session force-expired", slog.String("username", acct.Username))
	sw.audit.LogSessionEvent("session_expired", acct.ID, acct.Username)

	if sw.onExpire != nil {
		sw.onExpire()
	}
}

// Stop signals the sweeper to stop
func (sw *SessionSweeper) Stop() {
	close(sw.stopCh)
}
