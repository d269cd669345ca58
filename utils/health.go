package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthStatus represents the current reachability of the portal backend.
type HealthStatus struct {
	Backend   bool      `json:"backend"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// SetHealthStatus records the result of a one-off connectivity probe.
func SetHealthStatus(backend bool) {
	mu.Lock()
	currentHealth = HealthStatus{Backend: backend, CheckedAt: time.Now()}
	mu.Unlock()
}

// StartHealthMonitor performs periodic connectivity probes against the backend
// and updates in-memory state. probe should issue GET /api/health.
func StartHealthMonitor(interval time.Duration, probe func(ctx context.Context) error) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := probe(ctx)
			cancel()

			if err != nil {
				GetLogger().Warn("Backend health probe failed", zap.Error(err))
			}

			mu.Lock()
			currentHealth = HealthStatus{Backend: err == nil, CheckedAt: time.Now()}
			mu.Unlock()
		}
	}()
}
