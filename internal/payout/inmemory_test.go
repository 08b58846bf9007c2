package payout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRecordIsIdempotent(t *testing.T) {
	journal := NewInMemory()
	ctx := context.Background()
	playerID := uuid.NewString()

	first, err := journal.Record(ctx, playerID, 150, "session-1:"+playerID)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	again, err := journal.Record(ctx, playerID, 150, "session-1:"+playerID)
	if !errors.Is(err, ErrDuplicatePayout) {
		t.Fatalf("expected ErrDuplicatePayout, got %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("duplicate must return the stored entry, got %+v", again)
	}

	total, err := journal.Total(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 150 {
		t.Fatalf("expected total 150, got %d", total)
	}
}
