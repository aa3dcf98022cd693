// Package redis implements the external state persistence collaborator.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iho/amlguard/internal/domain"
)

// statePrefix namespaces the risk state keys.
const statePrefix = "risk_state:"

// StateStore implements usecase.StatePersistence on Redis. Risk states are
// stored as plain strings under risk_state:<account_id> with a TTL; an
// expired or missing key simply means the in-memory default applies.
type StateStore struct {
	client *redis.Client

	maxRetries      uint64
	initialInterval time.Duration
}

// NewStateStore creates a StateStore.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{
		client:          client,
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
	}
}

// Load retrieves a previously saved risk state. A missing key is not an
// error; an invalid stored value is treated as absent.
func (s *StateStore) Load(ctx context.Context, accountID string) (domain.RiskState, bool, error) {
	val, err := s.client.Get(ctx, statePrefix+accountID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}

	state := domain.RiskState(val)
	if !state.Valid() {
		return "", false, nil
	}
	return state, true, nil
}

// Save writes the risk state with the given TTL, retrying transient
// failures with exponential backoff.
func (s *StateStore) Save(ctx context.Context, accountID string, state domain.RiskState, ttl time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval

	return backoff.Retry(func() error {
		return s.client.Set(ctx, statePrefix+accountID, string(state), ttl).Err()
	}, backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx))
}
