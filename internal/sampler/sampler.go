// Package sampler picks the cards for a quiz session.
package sampler

import (
	"fmt"
	"math/rand/v2"

	"github.com/conorfennell/flashcard/internal/domain"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default is a Source backed by the runtime's auto-seeded generator.
var Default Source = globalSource{}

// Sample draws count cards independently and uniformly from deck, with
// replacement: each draw considers the full deck, so a card may repeat.
func Sample(deck []domain.Card, count int, src Source) ([]domain.Card, error) {
	if err := checkCount(deck, count); err != nil {
		return nil, err
	}

	picked := make([]domain.Card, 0, count)
	for range count {
		picked = append(picked, deck[src.IntN(len(deck))])
	}
	return picked, nil
}

// SampleDistinct draws count different positions from deck without
// replacement. count may not exceed the deck size.
func SampleDistinct(deck []domain.Card, count int, src Source) ([]domain.Card, error) {
	if err := checkCount(deck, count); err != nil {
		return nil, err
	}
	if count > len(deck) {
		return nil, fmt.Errorf("%w: asked for %d distinct cards, deck has %d", domain.ErrInvalidCount, count, len(deck))
	}

	pool := make([]domain.Card, len(deck))
	copy(pool, deck)
	for i := range count {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count], nil
}

func checkCount(deck []domain.Card, count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", domain.ErrInvalidCount, count)
	}
	if len(deck) == 0 {
		return fmt.Errorf("%w: deck is empty", domain.ErrInvalidCount)
	}
	return nil
}
