package background

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/session"
	pkglogger "github.com/aidsync/aidsync/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionSweeper_ExpiresStaleSession(t *testing.T) {
	guard := session.NewGuard(10*time.Millisecond, testLogger())
	guard.Login(&models.Account{ID: 3, Username: "viewer_luz", Role: models.RoleViewer})

	var expirations atomic.Int32
	sw := NewSessionSweeper(guard, pkglogger.NewAuditLogger(testLogger()), testLogger(),
		5*time.Millisecond, func() { expirations.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sw.Start(ctx)
	defer sw.Stop()

	assert.Eventually(t, func() bool {
		return !guard.IsLoggedIn()
	}, time.Second, 5*time.Millisecond, "stale session should be swept")

	assert.Eventually(t, func() bool {
		return expirations.Load() == 1
	}, time.Second, 5*time.Millisecond, "onExpire should fire exactly once")

	// Further ticks with no session must not fire the callback again.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), expirations.Load())
}

func TestSessionSweeper_LeavesActiveSessionAlone(t *testing.T) {
	guard := session.NewGuard(time.Hour, testLogger())
	guard.Login(&models.Account{ID: 3, Username: "viewer_luz", Role: models.RoleViewer})

	sw := NewSessionSweeper(guard, pkglogger.NewAuditLogger(testLogger()), testLogger(),
		5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sw.Start(ctx)

	time.Sleep(30 * time.Millisecond)
	sw.Stop()

	assert.True(t, guard.IsLoggedIn(), "an active session must survive sweeps")
}

func TestSessionSweeper_StopsOnContextCancel(t *testing.T) {
	guard := session.NewGuard(time.Hour, testLogger())
	sw := NewSessionSweeper(guard, pkglogger.NewAuditLogger(testLogger()), testLogger(),
		time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
