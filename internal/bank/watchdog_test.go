package bank

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWatchdogTicks(t *testing.T) {
	clk := newFakeClock()
	st := &memStore{}
	expired := make(chan Event, 1)
	s := NewSession(st, DefaultPolicy(), WithClock(clk.Now), WithNotifier(func(ev Event) {
		if ev.Kind == EventSessionExpired {
			expired <- ev
		}
	}))
	_, err := s.Create(Savings, "Asha", "10")
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunWatchdog(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case ev := <-expired:
		assert.Contains(t, ev.Message, "auto-saved")
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not fire")
	}
	assert.False(t, s.Summary().Active)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not stop after cancel")
	}
}
