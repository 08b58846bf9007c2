package prize

import (
	"math/rand"
	"sync"
	"time"
)

// Engine selects prizes from a fixed catalog. New participants get a weighted
// random draw; participants with a recorded score get the same prize
// reproduced deterministically so a reload never shows a different value.
type Engine struct {
	catalog []Prize
	weights []int
	total   int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine builds an engine over the catalog. A nil rng gets a time-seeded
// source; tests inject a seeded one.
func NewEngine(catalog []Prize, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	weights := make([]int, len(catalog))
	total := 0
	for i, p := range catalog {
		weights[i] = Weight(p.Value)
		total += weights[i]
	}

	return &Engine{catalog: catalog, weights: weights, total: total, rng: rng}
}

// Catalog returns the engine's prize catalog.
func (e *Engine) Catalog() []Prize {
	return e.catalog
}

// Draw performs a cumulative-weight discrete draw over the catalog. Each
// prize is selected with probability weight/total.
func (e *Engine) Draw() Prize {
	e.mu.Lock()
	r := e.rng.Intn(e.total)
	e.mu.Unlock()

	for i, w := range e.weights {
		r -= w
		if r < 0 {
			return e.catalog[i]
		}
	}
	// Unreachable: weights sum to total.
	return e.catalog[len(e.catalog)-1]
}

// Replay maps a previously recorded score back onto the catalog. An exact
// value match wins; otherwise the entry with the smallest absolute difference
// is chosen, first such entry on ties.
func (e *Engine) Replay(score int) Prize {
	best := 0
	bestDiff := -1
	for i, p := range e.catalog {
		if p.Value == score {
			return p
		}
		diff := p.Value - score
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return e.catalog[best]
}

// SelectFor picks the outcome for a spin. A returning participant (already
// played with a positive recorded score) gets a deterministic replay; anyone
// else gets the weighted draw.
func (e *Engine) SelectFor(hasPlayed bool, score int) Prize {
	if hasPlayed && score > 0 {
		return e.Replay(score)
	}
	return e.Draw()
}
