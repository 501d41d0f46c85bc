package core

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter names tracked by the metrics service.
const (
	CounterUserRegistered = "user_registered"
	CounterLoginSuccess   = "login_success"
	CounterLoginFailed    = "login_failed"
	CounterLogout         = "logout"
	CounterTokenRenewed   = "token_renewed"
)

var counterNames = []string{
	CounterUserRegistered,
	CounterLoginSuccess,
	CounterLoginFailed,
	CounterLogout,
	CounterTokenRenewed,
}

const counterKeyPrefix = "authapi:counter:"

// RedisCounterClient is the minimal subset of go-redis used for counters.
type RedisCounterClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MetricsService keeps operational tallies of auth operations in Redis.
// All writes are best-effort: failures are logged, never surfaced.
type MetricsService struct {
	redis RedisCounterClient
}

// NewMetricsService wraps a redis client. A nil client yields a no-op
// service, which is what tests without redis use.
func NewMetricsService(client RedisCounterClient) *MetricsService {
	return &MetricsService{redis: client}
}

// Incr bumps the named counter.
func (s *MetricsService) Incr(ctx context.Context, name string) {
	if s == nil || s.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := s.redis.Incr(ctx, counterKeyPrefix+name).Err(); err != nil {
		log.Printf("failed to increment counter %s: %v", name, err)
	}
}

// Snapshot returns the current value of every known counter. Counters
// that were never incremented read as zero.
func (s *MetricsService) Snapshot(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(counterNames))
	if s == nil || s.redis == nil {
		for _, name := range counterNames {
			out[name] = 0
		}
		return out, nil
	}
	for _, name := range counterNames {
		v, err := s.redis.Get(ctx, counterKeyPrefix+name).Int64()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				return nil, err
			}
			v = 0
		}
		out[name] = v
	}
	return out, nil
}

// SystemStatus is the aggregate reported by the status endpoint.
type SystemStatus struct {
	UptimeSeconds   int64            `json:"uptime_seconds"`
	RegisteredUsers int              `json:"registered_users"`
	Counters        map[string]int64 `json:"counters"`
}

// CollectSystemStatus aggregates uptime, the user count and the counter
// snapshot. Counter failures are tolerated to keep the endpoint best-effort.
func CollectSystemStatus(ctx context.Context, metrics *MetricsService, users UserRepository, startedAt time.Time) (SystemStatus, error) {
	var st SystemStatus

	if !startedAt.IsZero() {
		st.UptimeSeconds = int64(time.Since(startedAt).Seconds())
	}

	if users != nil {
		n, err := users.Count(ctx)
		if err != nil {
			return SystemStatus{}, err
		}
		st.RegisteredUsers = n
	}

	counters, err := metrics.Snapshot(ctx)
	if err != nil {
		log.Printf("failed to read counters: %v", err)
		counters = map[string]int64{}
	}
	st.Counters = counters

	return st, nil
}
