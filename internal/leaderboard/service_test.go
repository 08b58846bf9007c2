package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lucky-wheel/lucky_wheel/internal/logging"
	"github.com/lucky-wheel/lucky_wheel/internal/player"
	"github.com/lucky-wheel/lucky_wheel/internal/prize"
)

// flakyRepository forwards to a memory repository until tripped.
type flakyRepository struct {
	player.Repository
	down bool
}

func (r *flakyRepository) ListByScore(ctx context.Context) ([]player.Player, error) {
	if r.down {
		return nil, errors.New("primary store unreachable")
	}
	return r.Repository.ListByScore(ctx)
}

func setup(t *testing.T) (*Service, *flakyRepository, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &flakyRepository{Repository: player.NewMemoryRepository()}
	svc := NewService(repo, cache, time.Minute, logging.Discard())

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return svc, repo, cleanup
}

func seed(t *testing.T, repo player.Repository, name, wallet string, score int, played bool) {
	t.Helper()
	ctx := context.Background()
	svc := player.NewService(repo, prize.DefaultCatalog)
	p, err := svc.Register(ctx, name, wallet)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	if played {
		if err := svc.CommitScore(ctx, p.ID, score); err != nil {
			t.Fatalf("commit %s: %v", name, err)
		}
	}
}

func TestStandingsOrderAndMasking(t *testing.T) {
	svc, repo, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, repo.Repository, "Alice", "01711111111", 100, true)
	seed(t, repo.Repository, "Bob", "01722222222", 200, true)
	seed(t, repo.Repository, "Carol", "01733333333", 0, false)

	standings, err := svc.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if standings.Stale {
		t.Fatal("fresh read must not be stale")
	}
	if len(standings.Players) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(standings.Players))
	}
	if standings.Players[0].Name != "Bob" || standings.Players[1].Name != "Alice" {
		t.Fatalf("wrong order: %+v", standings.Players)
	}
	for _, p := range standings.Players {
		if p.WalletNumber[2:9] != "*******" {
			t.Errorf("wallet not masked: %q", p.WalletNumber)
		}
	}
}

func TestWinnersFilterHasPlayed(t *testing.T) {
	svc, repo, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, repo.Repository, "Alice", "01711111111", 100, true)
	seed(t, repo.Repository, "Carol", "01733333333", 0, false)

	winners, err := svc.Winners(ctx)
	if err != nil {
		t.Fatalf("winners: %v", err)
	}
	if len(winners.Players) != 1 {
		t.Fatalf("expected 1 winner, got %d", len(winners.Players))
	}
	if winners.Players[0].Name != "Alice" {
		t.Fatalf("unexpected winner: %+v", winners.Players[0])
	}
}

func TestFallbackToSnapshot(t *testing.T) {
	svc, repo, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, repo.Repository, "Alice", "01711111111", 100, true)

	// Warm the snapshot with a successful read.
	if _, err := svc.Standings(ctx); err != nil {
		t.Fatalf("warm read: %v", err)
	}

	repo.down = true

	standings, err := svc.Standings(ctx)
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if !standings.Stale {
		t.Fatal("fallback result must be marked stale")
	}
	if len(standings.Players) != 1 || standings.Players[0].Name != "Alice" {
		t.Fatalf("unexpected snapshot content: %+v", standings.Players)
	}

	winners, err := svc.Winners(ctx)
	if err != nil {
		t.Fatalf("winners via fallback: %v", err)
	}
	if len(winners.Players) != 1 {
		t.Fatalf("expected winners from snapshot, got %+v", winners.Players)
	}
}

func TestFallbackWithoutSnapshotFails(t *testing.T) {
	svc, repo, cleanup := setup(t)
	defer cleanup()

	repo.down = true
	if _, err := svc.Standings(context.Background()); err == nil {
		t.Fatal("cold fallback must fail")
	}
}
