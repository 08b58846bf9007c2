package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "leaderboard:v1:standings"

// ErrNoSnapshot indicates no fallback snapshot exists or it has expired.
var ErrNoSnapshot = errors.New("no leaderboard snapshot")

// Snapshot persists the most recent standings in Redis. The TTL is the
// staleness contract: a snapshot older than the TTL is gone, and callers get
// a hard error instead of unbounded staleness.
type Snapshot struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewSnapshot builds the snapshot tier.
func NewSnapshot(cache *redis.Client, ttl time.Duration) *Snapshot {
	return &Snapshot{cache: cache, ttl: ttl}
}

// Store serializes the standings under the snapshot key. Only masked player
// data is ever written.
func (s *Snapshot) Store(ctx context.Context, standings Standings) error {
	payload, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.cache.Set(ctx, snapshotKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load returns the most recent standings snapshot.
func (s *Snapshot) Load(ctx context.Context) (Standings, error) {
	payload, err := s.cache.Get(ctx, snapshotKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Standings{}, ErrNoSnapshot
		}
		return Standings{}, fmt.Errorf("load snapshot: %w", err)
	}

	var standings Standings
	if err := json.Unmarshal([]byte(payload), &standings); err != nil {
		return Standings{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return standings, nil
}
