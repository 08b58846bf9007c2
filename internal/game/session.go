package game

import (
	"time"

	"github.com/lucky-wheel/lucky_wheel/internal/player"
	"github.com/lucky-wheel/lucky_wheel/internal/prize"
)

// Session states. A session starts idle, enters spinning when an outcome has
// been picked, returns to resolved once committed, and becomes complete when
// the roster is exhausted.
const (
	StateIdle     = "idle"
	StateSpinning = "spinning"
	StateResolved = "resolved"
	StateComplete = "complete"
)

// RosterEntry is the session-local mirror of a participant. The best-effort
// commit policy updates this copy even when the backing store write fails, so
// the game flow never wedges on a storage hiccup.
type RosterEntry struct {
	ID        string
	Name      string
	Wallet    string // masked
	Score     int
	HasPlayed bool
}

// Session is the explicit per-game state object, owned by the session store
// and keyed by token. Participants advance in roster order regardless of
// score or has-played state.
type Session struct {
	Token        string
	Roster       []RosterEntry
	Current      int // index into Roster, -1 when no participant is set
	SpinCount    int
	State        string
	Outcome      *prize.Prize
	LastActivity time.Time
}

// CurrentEntry returns the entry the pointer references, or nil.
func (s *Session) CurrentEntry() *RosterEntry {
	if s.Current < 0 || s.Current >= len(s.Roster) {
		return nil
	}
	return &s.Roster[s.Current]
}

func rosterFrom(players []player.Player) []RosterEntry {
	roster := make([]RosterEntry, 0, len(players))
	for _, p := range players {
		roster = append(roster, RosterEntry{
			ID:        p.ID,
			Name:      p.Name,
			Wallet:    player.MaskWallet(p.WalletNumber),
			Score:     p.Score,
			HasPlayed: p.HasPlayed,
		})
	}
	return roster
}
