package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/luckyroue/wheelplay-backend/internal/models"
)

// DrawEngine performs a single weighted random selection over a prize set.
// The random source lives server-side and is cryptographically unpredictable
// by default; tests inject a deterministic source.
type DrawEngine struct {
	randInt func(max int64) (int64, error)
}

// NewDrawEngine creates a DrawEngine backed by crypto/rand.
func NewDrawEngine() *DrawEngine {
	return &DrawEngine{randInt: cryptoRandInt}
}

// NewDrawEngineWithSource creates a DrawEngine with an injected integer
// source returning values in [0, max). For tests only.
func NewDrawEngineWithSource(randInt func(max int64) (int64, error)) *DrawEngine {
	return &DrawEngine{randInt: randInt}
}

func cryptoRandInt(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// Draw selects one prize with probability weight_i / sum(weights) over the
// prizes that still have stock. A nil prize with nil error is the "no win"
// outcome: no candidates, or all candidate weights are zero. The consolation
// flag plays no part here; a consolation prize is one entry among many.
func (e *DrawEngine) Draw(prizes []*models.Prize) (*models.Prize, error) {
	candidates := make([]*models.Prize, 0, len(prizes))
	total := int64(0)
	for _, p := range prizes {
		if p.StockRemaining > 0 && p.Weight > 0 {
			candidates = append(candidates, p)
			total += int64(p.Weight)
		}
	}
	if len(candidates) == 0 || total == 0 {
		return nil, nil
	}

	n, err := e.randInt(total)
	if err != nil {
		return nil, fmt.Errorf("draw random source failed: %w", err)
	}

	// Cumulative-weight walk: the first candidate whose running total
	// exceeds n wins.
	cumulative := int64(0)
	for _, p := range candidates {
		cumulative += int64(p.Weight)
		if n < cumulative {
			return p, nil
		}
	}
	// Unreachable while n < total holds.
	return candidates[len(candidates)-1], nil
}
