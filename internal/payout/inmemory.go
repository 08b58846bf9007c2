package payout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemoryJournal struct {
	mu      sync.RWMutex
	entries map[string]Payout // keyed by reference
}

// NewInMemory creates a concurrency-safe in-memory journal useful for unit
// tests and database-less development runs.
func NewInMemory() Journal {
	return &inMemoryJournal{entries: make(map[string]Payout)}
}

func (j *inMemoryJournal) Record(_ context.Context, playerID string, amount int, reference string) (Payout, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if existing, ok := j.entries[reference]; ok {
		return existing, ErrDuplicatePayout
	}

	p := Payout{
		ID:        uuid.New().String(),
		PlayerID:  playerID,
		Amount:    amount,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}
	j.entries[reference] = p
	return p, nil
}

func (j *inMemoryJournal) Total(_ context.Context) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var total int64
	for _, p := range j.entries {
		total += int64(p.Amount)
	}
	return total, nil
}
