package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

func handUnit(h *harness, owner int, name string, cost, atk, hp int, kws ...ir.Keyword) string {
	return h.addCard(owner, &ir.Card{
		Name: name, Type: ir.TypeUnit, Cost: ir.Cost{Generic: cost},
		Stats: &ir.Stats{Atk: atk, HP: hp}, Keywords: ir.KeywordSet(kws),
	}, ir.ZoneHand)
}

func TestCastUnitEntersBattlefield(t *testing.T) {
	h := newHarness(t)
	id := handUnit(h, 0, "Bear", 2, 2, 2)

	require.True(t, h.e.Cast(h.gs, 0, id, nil).OK)
	assert.Equal(t, ir.ZoneBattlefield, h.zoneOf(id))
	assert.Equal(t, 8, h.gs.Players[0].Resources)
	assert.Equal(t, h.gs.Turn.Number, h.card(id).EnteredTurn)
}

func TestCastLegality(t *testing.T) {
	h := newHarness(t)
	expensive := handUnit(h, 0, "Dragon", 99, 9, 9)
	assert.False(t, h.e.CanCast(h.gs, 0, expensive).OK, "unaffordable")

	theirs := handUnit(h, 1, "Bear", 2, 2, 2)
	assert.False(t, h.e.CanCast(h.gs, 1, theirs).OK, "only the active player casts")

	h.gs.Turn.Phase = ruleset.PhaseCombat
	cheap := handUnit(h, 0, "Imp", 1, 1, 1)
	assert.False(t, h.e.CanCast(h.gs, 0, cheap).OK, "casting is main phase only")
}

func TestCastColorRequirement(t *testing.T) {
	h := newHarness(t)
	h.gs.Players[0].Colors = []string{"RED"}

	red := h.addCard(0, &ir.Card{
		Name: "Bolt", Type: ir.TypeSpell, Cost: ir.Cost{Generic: 1, Colors: []string{"RED"}},
	}, ir.ZoneHand)
	blue := h.addCard(0, &ir.Card{
		Name: "Counter", Type: ir.TypeSpell, Cost: ir.Cost{Generic: 1, Colors: []string{"BLUE"}},
	}, ir.ZoneHand)

	assert.True(t, h.e.CanCast(h.gs, 0, red).OK)
	assert.False(t, h.e.CanCast(h.gs, 0, blue).OK)
}

func TestCastSpellResolvesAndGoesToGraveyard(t *testing.T) {
	h := newHarness(t)
	target := h.addUnit(1, "Bear", 2, 3)
	bolt := h.addCard(0, &ir.Card{
		Name: "Bolt", Type: ir.TypeSpell, Cost: ir.Cost{Generic: 1},
		TextIR: ir.TextIR{Cast: func() *ir.Effect {
			e := damageEffect(3, selectOpponents())
			return &e
		}()},
	}, ir.ZoneHand)

	require.True(t, h.e.Cast(h.gs, 0, bolt, []string{target}).OK)
	assert.Equal(t, ir.ZoneGraveyard, h.zoneOf(bolt))
	assert.Equal(t, ir.ZoneGraveyard, h.zoneOf(target), "3 damage kills the 2/3")
}

func TestSummoningSicknessAndHaste(t *testing.T) {
	h := newHarness(t)
	fresh := handUnit(h, 0, "Bear", 2, 2, 2)
	hasty := handUnit(h, 0, "Raider", 2, 2, 1, ir.KeywordHaste)
	require.True(t, h.e.Cast(h.gs, 0, fresh, nil).OK)
	require.True(t, h.e.Cast(h.gs, 0, hasty, nil).OK)
	h.gs.Turn.Phase = ruleset.PhaseCombat

	assert.False(t, h.e.CanAttack(h.gs, 0, fresh, "").OK)
	assert.True(t, h.e.CanAttack(h.gs, 0, hasty, "").OK)
}

func TestDefenderCannotAttack(t *testing.T) {
	h := newHarness(t)
	wall := h.addUnit(0, "Wall", 0, 4, ir.KeywordDefender)
	h.gs.Turn.Phase = ruleset.PhaseCombat

	assert.False(t, h.e.CanAttack(h.gs, 0, wall, "").OK)
}

func TestAttackTapsUnlessVigilant(t *testing.T) {
	h := newHarness(t)
	plain := h.addUnit(0, "Bear", 2, 2)
	vigilant := h.addUnit(0, "Sentry", 2, 2, ir.KeywordVigilance)
	h.gs.Turn.Phase = ruleset.PhaseCombat

	require.True(t, h.e.Attack(h.gs, 0, plain, "").OK)
	require.True(t, h.e.Attack(h.gs, 0, vigilant, "").OK)

	assert.True(t, h.card(plain).Tapped)
	assert.False(t, h.card(vigilant).Tapped)
	assert.Equal(t, 16, h.gs.Players[1].Life, "both attacks connected")
}

func TestTappedUnitCannotAttack(t *testing.T) {
	h := newHarness(t)
	bear := h.addUnit(0, "Bear", 2, 2)
	h.card(bear).Tapped = true
	h.gs.Turn.Phase = ruleset.PhaseCombat

	assert.False(t, h.e.CanAttack(h.gs, 0, bear, "").OK)
}

func TestUnitCombatDealsMutualDamage(t *testing.T) {
	h := newHarness(t)
	attacker := h.addUnit(0, "Knight", 3, 3)
	blocker := h.addUnit(1, "Ogre", 4, 4)
	h.gs.Turn.Phase = ruleset.PhaseCombat

	require.True(t, h.e.Attack(h.gs, 0, attacker, blocker).OK)

	assert.Equal(t, ir.ZoneGraveyard, h.zoneOf(attacker), "4 back-damage kills the 3/3")
	assert.Equal(t, 3, h.card(blocker).Damage)
	assert.Equal(t, ir.ZoneBattlefield, h.zoneOf(blocker))
	assert.Equal(t, 20, h.gs.Players[1].Life, "unit combat spills nothing onto the player")
}

func TestUnitsFirstPolicyProtectsThePlayer(t *testing.T) {
	rules := ruleset.Default()
	rules.AttackPolicy = ruleset.AttackUnitsFirst
	h := newHarnessWithRules(t, rules)
	attacker := h.addUnit(0, "Bear", 2, 2)
	blocker := h.addUnit(1, "Guard", 1, 1)
	h.gs.Turn.Phase = ruleset.PhaseCombat

	assert.False(t, h.e.CanAttack(h.gs, 0, attacker, "").OK)
	require.True(t, h.e.Attack(h.gs, 0, attacker, blocker).OK)
}

func TestDirectAttackCanWinTheMatch(t *testing.T) {
	h := newHarness(t)
	attacker := h.addUnit(0, "Giant", 6, 6)
	h.gs.Players[1].Life = 5
	h.gs.Turn.Phase = ruleset.PhaseCombat

	require.True(t, h.e.Attack(h.gs, 0, attacker, "").OK)
	winner, over := h.e.WinnerOf(h.gs)
	require.True(t, over)
	assert.Equal(t, 0, winner)
}
