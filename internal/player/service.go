package player

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucky-wheel/lucky_wheel/internal/prize"
)

var (
	// ErrInvalidWallet indicates the wallet number fails the accepted format.
	ErrInvalidWallet = errors.New("wallet number must be 11 digits starting with 01")

	// ErrEmptyName indicates a missing or blank display name.
	ErrEmptyName = errors.New("name is required")

	// ErrUnknownScore indicates a score that no wheel segment can produce.
	ErrUnknownScore = errors.New("score is not a configured prize value")
)

// Service manages participant lifecycle: identity resolution by wallet
// number, registration, renames, and the guarded score commit.
type Service struct {
	repo    Repository
	catalog []prize.Prize
}

// NewService creates a player service validating scores against the catalog.
func NewService(repo Repository, catalog []prize.Prize) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// CheckWallet resolves a wallet number: for a known wallet it returns the
// existing record and true, for an available one the zero value and false.
// Validation happens before any storage interaction.
func (s *Service) CheckWallet(ctx context.Context, wallet string) (Player, bool, error) {
	wallet = strings.TrimSpace(wallet)
	if !ValidWallet(wallet) {
		return Player{}, false, ErrInvalidWallet
	}

	existing, err := s.repo.FindByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Player{}, false, nil
		}
		return Player{}, false, err
	}
	return existing, true, nil
}

// Register creates a participant with score 0 and has-played false. If the
// wallet is already registered, no new record is created: the stored name is
// updated when the caller supplied a different one (last write wins) and the
// existing record is returned alongside ErrWalletTaken so the caller can
// switch to the returning-participant path.
func (s *Service) Register(ctx context.Context, name, wallet string) (Player, error) {
	name = strings.TrimSpace(name)
	wallet = strings.TrimSpace(wallet)
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if !ValidWallet(wallet) {
		return Player{}, ErrInvalidWallet
	}

	existing, err := s.repo.FindByWallet(ctx, wallet)
	if err == nil {
		if existing.Name != name {
			if renameErr := s.repo.UpdateName(ctx, existing.ID, name); renameErr == nil {
				existing.Name = name
			}
		}
		return existing, ErrWalletTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return Player{}, err
	}

	player := Player{
		ID:           uuid.New().String(),
		Name:         name,
		WalletNumber: wallet,
		Score:        0,
		HasPlayed:    false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, player); err != nil {
		// Lost a race on the unique wallet index: surface the winner.
		if errors.Is(err, ErrWalletTaken) {
			if winner, findErr := s.repo.FindByWallet(ctx, wallet); findErr == nil {
				return winner, ErrWalletTaken
			}
		}
		return Player{}, err
	}

	return player, nil
}

// CommitScore validates the submitted score against the prize catalog and
// persists it under the repository's optimistic guard. Callers of the public
// endpoint carry no version token, so a committed score can only be retried,
// never replaced.
func (s *Service) CommitScore(ctx context.Context, id string, score int) error {
	if !prize.ValidValue(s.catalog, score) {
		return ErrUnknownScore
	}
	return s.repo.CommitScore(ctx, id, score, -1)
}

// Rename updates the display name, last write wins.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.repo.UpdateName(ctx, id, name)
}

// Get fetches a player by id.
func (s *Service) Get(ctx context.Context, id string) (Player, error) {
	return s.repo.FindByID(ctx, id)
}
