package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackend_Check(t *testing.T) {
	var up atomic.Bool
	b := NewBackend("sentiment", func(context.Context) bool { return up.Load() })

	assert.True(t, b.Healthy())
	assert.False(t, b.Check(context.Background()))
	assert.False(t, b.Healthy())

	up.Store(true)
	assert.True(t, b.Check(context.Background()))
	assert.True(t, b.Healthy())
}

func TestMonitorBackendHealth_StopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	b := NewBackend("whisper", func(context.Context) bool {
		calls.Add(1)
		return false
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		MonitorBackendHealth(ctx, b, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
	assert.False(t, b.Healthy())
}
