package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duelforge/duelforge/internal/game/ir"
)

func bannerCard() *ir.Card {
	return &ir.Card{
		Name: "War Banner", Type: ir.TypeEnchantment,
		TextIR: ir.TextIR{Continuous: []ir.ContinuousDef{{
			Kind:   ir.ContinuousStaticBuff,
			Target: &ir.Selector{Owner: ir.OwnerController, Where: &ir.Predicate{Kind: ir.PredHasTag, Name: "soldier"}},
			Atk:    1, HP: 1,
		}}},
	}
}

func TestStaticBuffAppliesWhileSourceOnBattlefield(t *testing.T) {
	h := newHarness(t)
	banner := h.addCard(0, bannerCard(), ir.ZoneBattlefield)
	soldier := h.addCard(0, &ir.Card{
		Name: "Soldier", Type: ir.TypeUnit, Stats: &ir.Stats{Atk: 2, HP: 2},
		Tags: []string{"soldier"},
	}, ir.ZoneBattlefield)
	bear := h.addUnit(0, "Bear", 2, 2)

	atk, _, hpMax := h.e.EffectiveStats(h.gs, h.card(soldier))
	assert.Equal(t, 3, atk)
	assert.Equal(t, 3, hpMax)

	atk, _, _ = h.e.EffectiveStats(h.gs, h.card(bear))
	assert.Equal(t, 2, atk, "untagged units are unbuffed")

	// The buff stops the moment the source leaves; nothing is cached.
	h.e.Apply(h.gs, []Operation{{Kind: OpMove, TargetID: banner, To: ir.ZoneGraveyard}})
	atk, _, _ = h.e.EffectiveStats(h.gs, h.card(soldier))
	assert.Equal(t, 2, atk)
}

func TestStaticBuffExpiryCanBeLethal(t *testing.T) {
	h := newHarness(t)
	banner := h.addCard(0, bannerCard(), ir.ZoneBattlefield)
	soldier := h.addCard(0, &ir.Card{
		Name: "Soldier", Type: ir.TypeUnit, Stats: &ir.Stats{Atk: 2, HP: 2},
		Tags: []string{"soldier"},
	}, ir.ZoneBattlefield)

	// Three damage on a buffed 2/3 leaves it alive at the threshold's edge.
	h.card(soldier).Damage = 2

	h.e.Apply(h.gs, []Operation{{Kind: OpDestroy, TargetID: banner}})
	assert.Equal(t, ir.ZoneGraveyard, h.zoneOf(soldier),
		"losing the buff drops the soldier to lethal")
}

func TestCostModifierWithFloor(t *testing.T) {
	h := newHarness(t)
	floor := 1
	discounter := &ir.Card{
		Name: "Patron", Type: ir.TypeEnchantment,
		TextIR: ir.TextIR{Continuous: []ir.ContinuousDef{{
			Kind:  ir.ContinuousCostModifier,
			Where: &ir.Predicate{Kind: ir.PredHasTag, Name: "goblin"},
			Delta: -2, Floor: &floor,
		}}},
	}
	h.addCard(0, discounter, ir.ZoneBattlefield)

	cheap := h.addCard(0, &ir.Card{
		Name: "Goblin", Type: ir.TypeUnit, Cost: ir.Cost{Generic: 2},
		Stats: &ir.Stats{Atk: 1, HP: 1}, Tags: []string{"goblin"},
	}, ir.ZoneHand)
	plain := h.addCard(0, &ir.Card{
		Name: "Bear", Type: ir.TypeUnit, Cost: ir.Cost{Generic: 2},
		Stats: &ir.Stats{Atk: 2, HP: 2},
	}, ir.ZoneHand)

	assert.Equal(t, 1, h.e.CastCost(h.gs, 0, h.card(cheap)), "discount stops at the floor")
	assert.Equal(t, 2, h.e.CastCost(h.gs, 0, h.card(plain)))
}

func TestStatLayerStacking(t *testing.T) {
	h := newHarness(t)
	unit := h.addUnit(0, "Bear", 2, 2)
	rc := h.card(unit)
	rc.PermBuff = ir.Stats{Atk: 1, HP: 1}
	rc.EOTBuff = ir.Stats{Atk: 2, HP: 0}
	rc.PermOverride = &ir.Stats{Atk: 4, HP: 4}
	rc.Damage = 1

	// End-of-turn override wins over permanent override; numeric buffs add
	// on top; damage subtracts from HP max.
	rc.EOTOverride = &ir.Stats{Atk: 1, HP: 6}
	atk, hp, hpMax := h.e.EffectiveStats(h.gs, rc)
	assert.Equal(t, 1+1+2, atk)
	assert.Equal(t, 6+1, hpMax)
	assert.Equal(t, 6, hp)
}
