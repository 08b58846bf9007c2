package player

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the targeted player does not exist.
	ErrNotFound = errors.New("player not found")

	// ErrWalletTaken indicates the wallet number is already registered.
	ErrWalletTaken = errors.New("wallet number already registered")

	// ErrScoreCommitted indicates a different score has already been
	// persisted for the player, so the write was refused.
	ErrScoreCommitted = errors.New("score already committed")
)

// Repository persists players.
type Repository interface {
	Create(ctx context.Context, player Player) error
	FindByWallet(ctx context.Context, wallet string) (Player, error)
	FindByID(ctx context.Context, id string) (Player, error)
	// CommitScore persists the prize and marks the player as played. The
	// write only succeeds while has_played is false, when the submitted
	// score equals the stored one (idempotent retry), or when the caller
	// presents the stored score as expectedPrev (version token for
	// legitimate re-commits, e.g. a stale score mapped to a new catalog
	// value). Pass a negative expectedPrev to disable the token.
	CommitScore(ctx context.Context, id string, score, expectedPrev int) error
	UpdateName(ctx context.Context, id, name string) error
	ListByScore(ctx context.Context) ([]Player, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed player repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new player record.
func (r *PostgresRepository) Create(ctx context.Context, player Player) error {
	playerID, err := uuid.Parse(player.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO players (id, name, wallet_number, score, has_played, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		playerID, player.Name, player.WalletNumber, player.Score, player.HasPlayed, player.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrWalletTaken
		}
		return err
	}
	return nil
}

// FindByWallet fetches a player by wallet number.
func (r *PostgresRepository) FindByWallet(ctx context.Context, wallet string) (Player, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, wallet_number, score, has_played, created_at
        FROM players WHERE wallet_number = $1`, wallet)
	return scanPlayer(row)
}

// FindByID fetches a player by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Player, error) {
	playerID, err := uuid.Parse(id)
	if err != nil {
		return Player{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, wallet_number, score, has_played, created_at
        FROM players WHERE id = $1`, playerID)
	return scanPlayer(row)
}

// CommitScore writes the prize under the optimistic guard. A row that exists
// but fails the guard means a different score is already committed.
func (r *PostgresRepository) CommitScore(ctx context.Context, id string, score, expectedPrev int) error {
	playerID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE players SET score = $1, has_played = TRUE
        WHERE id = $2 AND (has_played = FALSE OR score = $1 OR ($3 >= 0 AND score = $3))`,
		score, playerID, expectedPrev)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrScoreCommitted
	}
	return nil
}

// UpdateName stores a new display name, last write wins.
func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) error {
	playerID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE players SET name = $1 WHERE id = $2`, name, playerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByScore returns all players ordered by score descending. Ties keep the
// database fetch order.
func (r *PostgresRepository) ListByScore(ctx context.Context) ([]Player, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, wallet_number, score, has_played, created_at
        FROM players ORDER BY score DESC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func scanPlayer(row pgx.Row) (Player, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		p         Player
	)
	if err := row.Scan(&id, &p.Name, &p.WalletNumber, &p.Score, &p.HasPlayed, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, err
	}
	p.ID = id.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
