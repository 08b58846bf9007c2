package player

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	players map[string]Player // keyed by wallet number
	order   []string          // insertion order of wallet numbers
}

// NewMemoryRepository builds an in-memory player store used in tests and when
// the service runs without a database in development.
func NewMemoryRepository() Repository {
	return &memoryRepository{players: make(map[string]Player)}
}

func (r *memoryRepository) Create(_ context.Context, player Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.players[player.WalletNumber]; exists {
		return ErrWalletTaken
	}
	r.players[player.WalletNumber] = player
	r.order = append(r.order, player.WalletNumber)
	return nil
}

func (r *memoryRepository) FindByWallet(_ context.Context, wallet string) (Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[wallet]
	if !ok {
		return Player{}, ErrNotFound
	}
	return player, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, player := range r.players {
		if player.ID == id {
			return player, nil
		}
	}
	return Player{}, ErrNotFound
}

func (r *memoryRepository) CommitScore(_ context.Context, id string, score, expectedPrev int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for wallet, player := range r.players {
		if player.ID != id {
			continue
		}
		if player.HasPlayed && player.Score != score && !(expectedPrev >= 0 && player.Score == expectedPrev) {
			return ErrScoreCommitted
		}
		player.Score = score
		player.HasPlayed = true
		r.players[wallet] = player
		return nil
	}
	return ErrNotFound
}

func (r *memoryRepository) UpdateName(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for wallet, player := range r.players {
		if player.ID == id {
			player.Name = name
			r.players[wallet] = player
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRepository) ListByScore(_ context.Context) ([]Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := make([]Player, 0, len(r.order))
	for _, wallet := range r.order {
		players = append(players, r.players[wallet])
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})
	return players, nil
}
