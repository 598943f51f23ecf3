package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomRoller_Roll(t *testing.T) {
	t.Parallel()

	roller := NewRandomRoller()

	for i := 0; i < 100; i++ {
		result := roller.Roll()
		assert.Len(t, result, DiceCount)
		for _, s := range result {
			assert.True(t, s.IsValid(), "roll produced unknown symbol %q", s)
		}
	}
}

func TestRandomRoller_EventuallyCoversAllSymbols(t *testing.T) {
	t.Parallel()

	roller := NewRandomRoller()
	seen := make(map[Symbol]bool)

	// 200 rolls of 6 dice make a missing symbol astronomically unlikely
	for i := 0; i < 200; i++ {
		for _, s := range roller.Roll() {
			seen[s] = true
		}
	}

	assert.Len(t, seen, 6)
}

func TestFixedRoller_ReturnsCopy(t *testing.T) {
	t.Parallel()

	roller := &FixedRoller{Result: DiceResult{
		SymbolHeart, SymbolHeart, SymbolSpade, SymbolClub, SymbolFlag, SymbolCrown,
	}}

	first := roller.Roll()
	first[0] = SymbolDiamond

	second := roller.Roll()
	assert.Equal(t, SymbolHeart, second[0], "mutating a result must not affect later rolls")
}
