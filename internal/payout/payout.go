package payout

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicatePayout indicates the reference was already recorded; the stored
// entry is returned and the operation is treated as idempotent.
var ErrDuplicatePayout = errors.New("duplicate payout")

// Payout is one recorded prize disbursement.
type Payout struct {
	ID        string
	PlayerID  string
	Amount    int
	Reference string
	CreatedAt time.Time
}

// Journal records prize disbursements. Record is idempotent on the client
// supplied reference so a retried resolve cannot pay twice.
type Journal interface {
	Record(ctx context.Context, playerID string, amount int, reference string) (Payout, error)
	Total(ctx context.Context) (int64, error)
}
