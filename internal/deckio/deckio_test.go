package deckio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelforge/duelforge/internal/game/ir"
)

const poolYAML = `
cards:
  - name: Ember Dragon
    cost: {generic: 5, colors: [RED]}
    type: UNIT
    stats: {atk: 5, hp: 4}
    keywords: [HASTE]
    tags: [dragon]
  - name: Firebolt
    cost: {generic: 1, colors: [RED]}
    type: SPELL
    textIR:
      cast:
        kind: DEAL_DAMAGE
        amount: {kind: CONST, n: 3}
        select: {owner: OPPONENT}
  - name: War Banner
    cost: {generic: 2}
    type: ENCHANTMENT
    textIR:
      continuous:
        - kind: STATIC_BUFF
          target: {owner: CONTROLLER}
          atk: 1
          hp: 1
`

func TestParsePool(t *testing.T) {
	pool, err := ParsePool([]byte(poolYAML))
	require.NoError(t, err)
	require.Len(t, pool.Cards, 3)

	dragon, ok := pool.Lookup("ember dragon")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, ir.TypeUnit, dragon.Type)
	assert.Equal(t, 5, dragon.Cost.Generic)
	assert.True(t, dragon.Keywords.Has(ir.KeywordHaste))
	require.NotNil(t, dragon.Stats)
	assert.Equal(t, 4, dragon.Stats.HP)

	bolt, ok := pool.Lookup("Firebolt")
	require.True(t, ok)
	require.NotNil(t, bolt.TextIR.Cast)
	assert.Equal(t, ir.EffectDealDamage, bolt.TextIR.Cast.Kind)
	require.NotNil(t, bolt.TextIR.Cast.Amount)
	assert.Equal(t, 3, bolt.TextIR.Cast.Amount.N)

	banner, ok := pool.Lookup("War Banner")
	require.True(t, ok)
	require.Len(t, banner.TextIR.Continuous, 1)
	assert.Equal(t, ir.ContinuousStaticBuff, banner.TextIR.Continuous[0].Kind)
}

func TestParsePoolRejectsDuplicates(t *testing.T) {
	_, err := ParsePool([]byte("cards:\n  - name: Bear\n    type: UNIT\n    stats: {atk: 2, hp: 2}\n  - name: bear\n    type: UNIT\n    stats: {atk: 2, hp: 2}\n"))
	assert.Error(t, err)
}

func TestParseDeckResolvesAgainstPool(t *testing.T) {
	pool, err := ParsePool([]byte(poolYAML))
	require.NoError(t, err)

	deck, err := ParseDeck([]byte(`
name: Burn
cards:
  - {name: Ember Dragon, count: 2}
  - {name: Firebolt, count: 3}
  - {name: War Banner}
`), pool)
	require.NoError(t, err)

	assert.Equal(t, "Burn", deck.Name)
	assert.Len(t, deck.Cards, 6, "counts expand, missing count means one copy")
}

func TestParseDeckRejectsUnknownCard(t *testing.T) {
	pool, err := ParsePool([]byte(poolYAML))
	require.NoError(t, err)

	_, err = ParseDeck([]byte("name: Bad\ncards:\n  - {name: Nonexistent}\n"), pool)
	assert.Error(t, err)
}
