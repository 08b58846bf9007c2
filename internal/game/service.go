package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucky-wheel/lucky_wheel/internal/notification"
	"github.com/lucky-wheel/lucky_wheel/internal/payout"
	"github.com/lucky-wheel/lucky_wheel/internal/player"
	"github.com/lucky-wheel/lucky_wheel/internal/prize"
)

var (
	// ErrNoSession indicates an unknown or expired session token.
	ErrNoSession = errors.New("session not found")

	// ErrNoPlayer indicates no current participant is set.
	ErrNoPlayer = errors.New("no current participant")

	// ErrNotSpinning indicates a resolve with no spin in flight.
	ErrNotSpinning = errors.New("no spin in progress")

	// ErrEmptyRoster indicates a session cannot start without participants.
	ErrEmptyRoster = errors.New("no registered participants")
)

// Options tunes the game service.
type Options struct {
	SpinDuration time.Duration // animation length reported to clients
	SessionTTL   time.Duration // idle eviction threshold; 0 disables the janitor
	StoreTimeout time.Duration // per-call budget for storage writes
}

// Service drives the spin state machine over token-keyed sessions.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	players  player.Repository
	engine   *prize.Engine
	payouts  payout.Journal
	notifier notification.Notifier
	logger   *slog.Logger
	opts     Options
}

// NewService builds the game service. With a positive SessionTTL a janitor
// goroutine evicts inactive sessions for the lifetime of the process.
func NewService(players player.Repository, engine *prize.Engine, payouts payout.Journal, notifier notification.Notifier, logger *slog.Logger, opts Options) *Service {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 3 * time.Second
	}
	s := &Service{
		sessions: make(map[string]*Session),
		players:  players,
		engine:   engine,
		payouts:  payouts,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
	if opts.SessionTTL > 0 {
		go s.janitor()
	}
	return s
}

// Start loads the current roster and opens a session pointed at the first
// participant.
func (s *Service) Start(ctx context.Context) (*Session, error) {
	players, err := s.players.ListByScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if len(players) == 0 {
		return nil, ErrEmptyRoster
	}

	sess := &Session{
		Token:        uuid.New().String(),
		Roster:       rosterFrom(players),
		Current:      0,
		State:        StateIdle,
		LastActivity: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()

	return sess, nil
}

// SpinResult reports the picked outcome and how long the client animation
// should run before it resolves.
type SpinResult struct {
	Prize     prize.Prize
	Duration  time.Duration
	SpinCount int
}

// Spin picks the outcome for the current participant and enters the spinning
// state. Spinning again while a spin is in flight is an idempotent no-op that
// returns the in-flight outcome. Returning participants with a recorded score
// get a deterministic replay instead of a random draw.
func (s *Service) Spin(_ context.Context, token string) (SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return SpinResult{}, ErrNoSession
	}
	sess.LastActivity = time.Now()

	if sess.State == StateSpinning {
		return SpinResult{Prize: *sess.Outcome, Duration: s.opts.SpinDuration, SpinCount: sess.SpinCount}, nil
	}

	entry := sess.CurrentEntry()
	if entry == nil || sess.State == StateComplete {
		return SpinResult{}, ErrNoPlayer
	}

	picked := s.engine.SelectFor(entry.HasPlayed, entry.Score)
	sess.State = StateSpinning
	sess.Outcome = &picked
	sess.SpinCount++

	return SpinResult{Prize: picked, Duration: s.opts.SpinDuration, SpinCount: sess.SpinCount}, nil
}

// ResolveResult reports the committed outcome and the progression state.
type ResolveResult struct {
	Prize     prize.Prize
	Player    RosterEntry
	Committed bool // false when the stored score already matched
	Completed bool // roster exhausted
}

// Resolve commits the in-flight outcome once the animation has elapsed and
// advances the session pointer. When the stored score already equals the
// outcome nothing is written. A failed store write is logged and the
// session-local copy updated anyway so the game continues.
func (s *Service) Resolve(ctx context.Context, token string) (ResolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return ResolveResult{}, ErrNoSession
	}
	sess.LastActivity = time.Now()

	if sess.State != StateSpinning {
		return ResolveResult{}, ErrNotSpinning
	}

	entry := sess.CurrentEntry()
	if entry == nil {
		return ResolveResult{}, ErrNoPlayer
	}
	outcome := *sess.Outcome

	committed := false
	if !(entry.HasPlayed && entry.Score == outcome.Value) {
		s.commit(ctx, sess.Token, entry, outcome)
		committed = true
	}
	entry.Score = outcome.Value
	entry.HasPlayed = true
	resolved := *entry

	// Progression is purely positional.
	sess.Outcome = nil
	sess.Current++
	if sess.Current >= len(sess.Roster) {
		sess.Current = -1
		sess.State = StateComplete
	} else {
		sess.State = StateResolved
	}

	return ResolveResult{
		Prize:     outcome,
		Player:    resolved,
		Committed: committed,
		Completed: sess.State == StateComplete,
	}, nil
}

// commit persists the outcome best-effort: score first, then the payout
// journal entry and the win notification. Failures are logged, never fatal.
func (s *Service) commit(ctx context.Context, token string, entry *RosterEntry, outcome prize.Prize) {
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	// The roster copy of the score is the version token: it lets a stale
	// stored value be replaced by its closest catalog match while still
	// refusing blind overwrites of a committed prize.
	if err := s.players.CommitScore(storeCtx, entry.ID, outcome.Value, entry.Score); err != nil {
		s.logger.Warn("score commit failed, continuing with session copy",
			slog.String("player_id", entry.ID),
			slog.Int("score", outcome.Value),
			slog.Any("error", err),
		)
		return
	}

	reference := token + ":" + entry.ID
	if _, err := s.payouts.Record(storeCtx, entry.ID, outcome.Value, reference); err != nil && !errors.Is(err, payout.ErrDuplicatePayout) {
		s.logger.Warn("payout record failed",
			slog.String("player_id", entry.ID),
			slog.String("reference", reference),
			slog.Any("error", err),
		)
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindPrizeWin,
			Destination: entry.Wallet,
			Body:        fmt.Sprintf("%s won %s", entry.Name, outcome.Label),
		})
	}
}

// Get returns a snapshot of the session for the token.
func (s *Service) Get(token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrNoSession
	}
	sess.LastActivity = time.Now()

	snapshot := *sess
	snapshot.Roster = append([]RosterEntry(nil), sess.Roster...)
	if sess.Outcome != nil {
		outcome := *sess.Outcome
		snapshot.Outcome = &outcome
	}
	return snapshot, nil
}

// Reset drops the session.
func (s *Service) Reset(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// CleanupInactive evicts sessions idle past the TTL and reports how many.
func (s *Service) CleanupInactive() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for token, sess := range s.sessions {
		if time.Since(sess.LastActivity) > s.opts.SessionTTL {
			delete(s.sessions, token)
			evicted++
		}
	}
	return evicted
}

func (s *Service) janitor() {
	interval := s.opts.SessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if n := s.CleanupInactive(); n > 0 {
			s.logger.Info("evicted inactive sessions", slog.Int("count", n))
		}
	}
}
