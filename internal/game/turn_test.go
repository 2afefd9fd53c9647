package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

func TestPhaseOrderAdvances(t *testing.T) {
	h := newHarness(t)
	h.gs.Turn.Phase = ruleset.PhaseUpkeep

	require.True(t, h.e.AdvancePhase(h.gs).OK)
	assert.Equal(t, ruleset.PhaseMain, h.gs.Turn.Phase)
	require.True(t, h.e.AdvancePhase(h.gs).OK)
	assert.Equal(t, ruleset.PhaseCombat, h.gs.Turn.Phase)
	require.True(t, h.e.AdvancePhase(h.gs).OK)
	assert.Equal(t, ruleset.PhaseEnd, h.gs.Turn.Phase)

	check := h.e.AdvancePhase(h.gs)
	assert.False(t, check.OK, "the end phase is only left by ending the turn")
	assert.Equal(t, ruleset.PhaseEnd, h.gs.Turn.Phase)
}

func TestEndTurnHandsOverAndRefreshes(t *testing.T) {
	h := newHarness(t)
	h.addCard(1, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)
	tapped := h.addUnit(1, "Bear", 2, 2)
	h.card(tapped).Tapped = true
	h.gs.Players[1].Resources = 3

	require.True(t, h.e.EndTurn(h.gs).OK)

	assert.Equal(t, 1, h.gs.Turn.Active)
	assert.Equal(t, 3, h.gs.Turn.Number)
	assert.Equal(t, ruleset.PhaseUpkeep, h.gs.Turn.Phase)
	assert.False(t, h.card(tapped).Tapped, "the new active player untaps")
	assert.Equal(t, h.e.Rules().ResourcePerTurn, h.gs.Players[1].Resources,
		"no carry-over: resources reset to the per-turn amount")
	assert.Len(t, h.gs.Players[1].Hand, 1, "turn-start draw")
}

func TestEndOfTurnClearsDamageByDefault(t *testing.T) {
	h := newHarness(t)
	h.addCard(1, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)
	unit := h.addUnit(0, "Bear", 2, 3)
	h.card(unit).Damage = 2

	require.True(t, h.e.EndTurn(h.gs).OK)
	assert.Equal(t, 0, h.card(unit).Damage)
}

func TestDamagePersistsWhenConfigured(t *testing.T) {
	rules := ruleset.Default()
	rules.DamagePersists = true
	h := newHarnessWithRules(t, rules)
	h.addCard(1, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)
	unit := h.addUnit(0, "Bear", 2, 3)
	h.card(unit).Damage = 2

	require.True(t, h.e.EndTurn(h.gs).OK)
	assert.Equal(t, 2, h.card(unit).Damage)
}

func TestEndTurnDiscardsToHandLimit(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < h.e.Rules().MaxHandSize+2; i++ {
		h.addCard(0, &ir.Card{Name: "Held", Type: ir.TypeSpell}, ir.ZoneHand)
	}
	h.addCard(1, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)

	require.True(t, h.e.EndTurn(h.gs).OK)

	assert.Len(t, h.gs.Players[0].Hand, h.e.Rules().MaxHandSize)
	assert.Len(t, h.gs.Players[0].Graveyard, 2)
}

func TestResourceRefreshFollowsUpkeepTriggers(t *testing.T) {
	rules := ruleset.Default()
	rules.ResourcePerTurn = 3
	h := newHarnessWithRules(t, rules)
	v := ir.Const(5)
	font := &ir.Card{
		Name: "Font", Type: ir.TypeEnchantment,
		TextIR: ir.TextIR{Triggers: []ir.TriggerDef{{
			When:   ir.EventUpkeepStarted,
			Effect: ir.Effect{Kind: ir.EffectGainResource, Amount: &v},
		}}},
	}
	h.addCard(1, font, ir.ZoneBattlefield)
	h.addCard(1, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)

	require.True(t, h.e.EndTurn(h.gs).OK)

	assert.Equal(t, rules.ResourcePerTurn, h.gs.Players[1].Resources,
		"no carry-over: the refresh overrides upkeep gains")
}

func TestUpkeepTriggerFiresOnTurnStart(t *testing.T) {
	h := newHarness(t)
	v := ir.Const(1)
	shrine := &ir.Card{
		Name: "Shrine", Type: ir.TypeEnchantment,
		TextIR: ir.TextIR{Triggers: []ir.TriggerDef{{
			When:   ir.EventUpkeepStarted,
			Effect: ir.Effect{Kind: ir.EffectHealPlayer, Amount: &v},
		}}},
	}
	h.addCard(1, shrine, ir.ZoneBattlefield)
	h.addCard(1, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)
	h.gs.Players[1].Life = 10

	require.True(t, h.e.EndTurn(h.gs).OK)
	assert.Equal(t, 11, h.gs.Players[1].Life)
}

func TestMulliganRedrawsOneFewer(t *testing.T) {
	h := newHarness(t)
	h.gs.Turn = TurnState{Number: 1, Active: 0, Phase: ruleset.PhaseUpkeep}
	for i := 0; i < 10; i++ {
		h.addCard(0, &ir.Card{Name: "Filler", Type: ir.TypeSpell}, ir.ZoneLibrary)
	}
	for i := 0; i < h.e.Rules().StartingHandSize; i++ {
		top := h.gs.Players[0].Library[len(h.gs.Players[0].Library)-1]
		h.gs.placeInZone(h.gs.Cards[top], ir.ZoneHand)
	}

	require.True(t, h.e.Mulligan(h.gs, 0).OK)
	assert.Len(t, h.gs.Players[0].Hand, h.e.Rules().StartingHandSize-1)

	require.True(t, h.e.Mulligan(h.gs, 0).OK)
	assert.Len(t, h.gs.Players[0].Hand, h.e.Rules().StartingHandSize-2)
}

func TestMulliganIllegalAfterFirstTurn(t *testing.T) {
	h := newHarness(t)
	check := h.e.CanMulligan(h.gs, 0)
	assert.False(t, check.OK)
	assert.NotEmpty(t, check.Reason)
}

func TestIllegalActionsNeverMutate(t *testing.T) {
	h := newHarness(t)
	h.gs.Turn.Phase = ruleset.PhaseEnd
	snapshot := h.e.SnapshotFor(h.gs, -1)

	assert.False(t, h.e.AdvancePhase(h.gs).OK)
	assert.False(t, h.e.CanCast(h.gs, 0, "missing").OK)
	assert.False(t, h.e.Cast(h.gs, 0, "missing", nil).OK)
	assert.False(t, h.e.Attack(h.gs, 1, "missing", "").OK)

	after := h.e.SnapshotFor(h.gs, -1)
	assert.Equal(t, snapshot, after)
}
