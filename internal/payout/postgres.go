package payout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresJournal persists payouts in PostgreSQL.
type PostgresJournal struct {
	db *pgxpool.Pool
}

// NewPostgresJournal constructs a Postgres-backed payout journal.
func NewPostgresJournal(db *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// Record inserts a payout. The unique reference makes retries idempotent: a
// conflicting insert returns the previously stored entry with
// ErrDuplicatePayout.
func (j *PostgresJournal) Record(ctx context.Context, playerID string, amount int, reference string) (Payout, error) {
	id := uuid.New()
	pid, err := uuid.Parse(playerID)
	if err != nil {
		return Payout{}, err
	}
	createdAt := time.Now().UTC()

	cmd, err := j.db.Exec(ctx, `INSERT INTO payouts (id, player_id, amount, reference, created_at)
        VALUES ($1, $2, $3, $4, $5) ON CONFLICT (reference) DO NOTHING`,
		id, pid, amount, reference, createdAt)
	if err != nil {
		return Payout{}, err
	}
	if cmd.RowsAffected() == 0 {
		existing, err := j.findByReference(ctx, reference)
		if err != nil {
			return Payout{}, err
		}
		return existing, ErrDuplicatePayout
	}

	return Payout{ID: id.String(), PlayerID: playerID, Amount: amount, Reference: reference, CreatedAt: createdAt}, nil
}

// Total sums all recorded disbursements.
func (j *PostgresJournal) Total(ctx context.Context) (int64, error) {
	var total int64
	if err := j.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payouts`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (j *PostgresJournal) findByReference(ctx context.Context, reference string) (Payout, error) {
	row := j.db.QueryRow(ctx, `SELECT id, player_id, amount, reference, created_at
        FROM payouts WHERE reference = $1`, reference)
	var (
		id        uuid.UUID
		pid       uuid.UUID
		p         Payout
		createdAt time.Time
	)
	if err := row.Scan(&id, &pid, &p.Amount, &p.Reference, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payout{}, errors.New("payout reference not found")
		}
		return Payout{}, err
	}
	p.ID = id.String()
	p.PlayerID = pid.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
