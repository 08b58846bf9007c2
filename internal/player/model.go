package player

import (
	"regexp"
	"strings"
	"time"
)

// Player represents a registered participant. The wallet number is the
// natural key: one record per wallet, reused across visits.
type Player struct {
	ID           string
	Name         string
	WalletNumber string
	Score        int
	HasPlayed    bool
	CreatedAt    time.Time
}

// Public is the externally visible shape of a player. The wallet number is
// always masked; the raw value never leaves the service.
type Public struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	WalletNumber string    `json:"wallet_number"`
	Score        int       `json:"score"`
	HasPlayed    bool      `json:"has_played"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the masked representation of the player.
func (p Player) Public() Public {
	return Public{
		ID:           p.ID,
		Name:         p.Name,
		WalletNumber: MaskWallet(p.WalletNumber),
		Score:        p.Score,
		HasPlayed:    p.HasPlayed,
		CreatedAt:    p.CreatedAt,
	}
}

// walletPattern is the accepted mobile-wallet format: "01" + 9 digits.
var walletPattern = regexp.MustCompile(`^01\d{9}$`)

// ValidWallet reports whether the wallet number has the accepted format.
func ValidWallet(wallet string) bool {
	return walletPattern.MatchString(wallet)
}

// MaskWallet hides the middle of a wallet number for display, keeping the
// first two and last two characters. Values shorter than four characters are
// returned unchanged.
func MaskWallet(wallet string) string {
	if len(wallet) < 4 {
		return wallet
	}
	return wallet[:2] + strings.Repeat("*", len(wallet)-4) + wallet[len(wallet)-2:]
}
