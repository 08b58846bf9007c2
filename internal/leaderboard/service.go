package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucky-wheel/lucky_wheel/internal/player"
)

const winnersLimit = 3

// Standings is a leaderboard read. Stale marks a result served from the
// fallback snapshot because the primary store was unreachable.
type Standings struct {
	Players []player.Public `json:"players"`
	Stale   bool            `json:"stale"`
	AsOf    time.Time       `json:"as_of"`
}

// Service derives standings from the player store on demand, with a Redis
// snapshot as the fallback read tier. Reads hit the primary first; a primary
// failure serves the most recent snapshot within its TTL.
type Service struct {
	players  player.Repository
	snapshot *Snapshot
	logger   *slog.Logger
}

// NewService builds a leaderboard service. Cache may be nil, which disables
// the fallback tier.
func NewService(players player.Repository, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	var snap *Snapshot
	if cache != nil {
		snap = NewSnapshot(cache, ttl)
	}
	return &Service{players: players, snapshot: snap, logger: logger}
}

// Standings returns all participants sorted descending by score. Ties keep
// fetch order.
func (s *Service) Standings(ctx context.Context) (Standings, error) {
	players, err := s.players.ListByScore(ctx)
	if err != nil {
		return s.fallback(ctx, err)
	}

	public := make([]player.Public, 0, len(players))
	for _, p := range players {
		public = append(public, p.Public())
	}
	standings := Standings{Players: public, AsOf: time.Now().UTC()}

	if s.snapshot != nil {
		if err := s.snapshot.Store(ctx, standings); err != nil {
			s.logger.Warn("leaderboard snapshot write failed", slog.Any("error", err))
		}
	}
	return standings, nil
}

// Winners returns the top entries by score, restricted to participants who
// have actually played. A registered wallet that never spun is not a winner.
func (s *Service) Winners(ctx context.Context) (Standings, error) {
	standings, err := s.Standings(ctx)
	if err != nil {
		return Standings{}, err
	}

	winners := make([]player.Public, 0, winnersLimit)
	for _, p := range standings.Players {
		if !p.HasPlayed {
			continue
		}
		winners = append(winners, p)
		if len(winners) == winnersLimit {
			break
		}
	}
	standings.Players = winners
	return standings, nil
}

func (s *Service) fallback(ctx context.Context, cause error) (Standings, error) {
	if s.snapshot == nil {
		return Standings{}, fmt.Errorf("list players: %w", cause)
	}

	cached, err := s.snapshot.Load(ctx)
	if err != nil {
		return Standings{}, fmt.Errorf("list players: %w (snapshot: %v)", cause, err)
	}

	s.logger.Warn("serving stale leaderboard snapshot",
		slog.Time("as_of", cached.AsOf),
		slog.Any("error", cause),
	)
	cached.Stale = true
	return cached, nil
}
