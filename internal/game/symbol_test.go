package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range Symbols {
		assert.True(t, s.IsValid(), "symbol %s should be valid", s)
	}

	assert.False(t, Symbol("Anchor").IsValid())
	assert.False(t, Symbol("").IsValid())
	assert.False(t, Symbol("heart").IsValid(), "symbols are case-sensitive")
}

func TestNewBetSet_AllSymbolsPresent(t *testing.T) {
	t.Parallel()

	bets := NewBetSet()

	assert.Len(t, bets, 6)
	for _, s := range Symbols {
		amount, ok := bets[s]
		assert.True(t, ok)
		assert.Zero(t, amount)
	}
}

func TestBetSet_Clone(t *testing.T) {
	t.Parallel()

	bets := NewBetSet()
	bets[SymbolHeart] = 100

	clone := bets.Clone()
	clone[SymbolHeart] = 999

	// Clone must not share the underlying map
	assert.Equal(t, 100, bets[SymbolHeart])
	assert.Equal(t, 999, clone[SymbolHeart])
}

func TestBetSet_TotalAndClear(t *testing.T) {
	t.Parallel()

	bets := NewBetSet()
	bets[SymbolHeart] = 100
	bets[SymbolSpade] = 50

	assert.Equal(t, 150, bets.Total())

	bets.Clear()
	assert.Zero(t, bets.Total())
	assert.Len(t, bets, 6, "Clear keeps all symbols present")
}
