package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Pinger is a dependency the health monitor can probe.
type Pinger func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every probed dependency answered.
func (h HealthStatus) Healthy() bool {
	if !h.Store {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
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

// CheckHealth probes every dependency once and stores the result.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, store Pinger) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}

	status := HealthStatus{
		Store:     store == nil || store(ctx) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, store Pinger) {
	CheckHealth(ctx, redisClients, store)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, redisClients, store)
			}
		}
	}()
}
