package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

// Probe reports whether a backend is reachable right now.
type Probe func(ctx context.Context) bool

// Backend holds the last observed health of one remote model server.
type Backend struct {
	Name    string
	probe   Probe
	healthy atomic.Bool
}

// NewBackend starts out healthy until a probe says otherwise.
func NewBackend(name string, probe Probe) *Backend {
	b := &Backend{Name: name, probe: probe}
	b.healthy.Store(true)
	return b
}

func (b *Backend) Healthy() bool {
	return b.healthy.Load()
}

func (b *Backend) Check(ctx context.Context) bool {
	isHealthy := b.probe(ctx)
	b.healthy.Store(isHealthy)
	if !isHealthy {
		slog.Warn("[HealthCheck] Backend is unhealthy", slog.String("backend", b.Name))
	}
	return isHealthy
}

// MonitorBackendHealth probes b every interval until ctx is done. A
// non-positive interval uses HEALTHCHECK_TIMER seconds.
func MonitorBackendHealth(ctx context.Context, b *Backend, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second * HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Check(ctx)
		}
	}
}
