package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duelforge/duelforge/internal/game/ir"
)

func TestMetricLifeAndBoardCount(t *testing.T) {
	h := newHarness(t)
	h.gs.Players[1].Life = 13
	h.addUnit(1, "Bear", 2, 2)
	h.addCard(1, &ir.Card{
		Name: "Goblin", Type: ir.TypeUnit, Stats: &ir.Stats{Atk: 1, HP: 1},
		Tags: []string{"goblin"},
	}, ir.ZoneBattlefield)

	ctx := evalCtx{controller: 0}
	assert.Equal(t, 13, h.e.EvalMetric(h.gs, ctx, ir.Metric{Kind: ir.MetricLife, Who: ir.WhoOpponent}))
	assert.Equal(t, 2, h.e.EvalMetric(h.gs, ctx, ir.Metric{Kind: ir.MetricBoardCount, Who: ir.WhoOpponent}))
	assert.Equal(t, 1, h.e.EvalMetric(h.gs, ctx, ir.Metric{Kind: ir.MetricBoardCount, Who: ir.WhoOpponent, Tag: "goblin"}))
}

func TestMetricCardStatReadsEffectiveStats(t *testing.T) {
	h := newHarness(t)
	unit := h.addUnit(0, "Bear", 2, 2)
	h.card(unit).PermBuff = ir.Stats{Atk: 3, HP: 0}

	ctx := evalCtx{controller: 0, targetID: unit}
	got := h.e.EvalMetric(h.gs, ctx, ir.Metric{Kind: ir.MetricCardStat, Of: ir.SubjectTarget, Stat: ir.StatATK})
	assert.Equal(t, 5, got, "buffs count, template stats alone do not")
}

func TestClampValueBounds(t *testing.T) {
	h := newHarness(t)
	h.gs.Players[0].Life = 30
	ctx := evalCtx{controller: 0}

	v := ir.Clamp(0, 10, ir.Metric{Kind: ir.MetricLife, Who: ir.WhoController})
	assert.Equal(t, 10, h.e.EvalValue(h.gs, ctx, v))

	h.gs.Players[0].Life = -5
	assert.Equal(t, 0, h.e.EvalValue(h.gs, ctx, v))
}

func TestPredicateComposition(t *testing.T) {
	h := newHarness(t)
	token := h.addUnit(1, "Goblin", 1, 1)
	h.card(token).IsToken = true
	ctx := evalCtx{controller: 0, targetID: token}

	isToken := ir.Predicate{Kind: ir.PredIsToken}
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, isToken))

	notToken := ir.Predicate{Kind: ir.PredNot, Not: &isToken}
	assert.False(t, h.e.EvalPredicate(h.gs, ctx, notToken))

	both := ir.Predicate{Kind: ir.PredAnd, All: []ir.Predicate{isToken, ir.True()}}
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, both))

	either := ir.Predicate{Kind: ir.PredOr, Any: []ir.Predicate{notToken, isToken}}
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, either))
}

func TestPredicateNameMatching(t *testing.T) {
	h := newHarness(t)
	id := h.addUnit(0, "Ember Dragon", 5, 5)
	ctx := evalCtx{controller: 0, targetID: id}

	exact := ir.Predicate{Kind: ir.PredHasName, Name: "ember dragon"}
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, exact), "matching is case-insensitive")

	prefix := ir.Predicate{Kind: ir.PredHasName, Name: "Ember", Match: ir.NamePrefix}
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, prefix))

	contains := ir.Predicate{Kind: ir.PredHasName, Name: "drag", Match: ir.NameContains}
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, contains))

	assert.False(t, h.e.EvalPredicate(h.gs, ctx, ir.Predicate{Kind: ir.PredHasName, Name: "Ember"}))
}

func TestPredicateSummonedThisTurn(t *testing.T) {
	h := newHarness(t)
	id := h.addUnit(0, "Bear", 2, 2)
	ctx := evalCtx{controller: 0, targetID: id}
	pred := ir.Predicate{Kind: ir.PredWasSummonedThisTurn}

	assert.False(t, h.e.EvalPredicate(h.gs, ctx, pred))
	h.card(id).EnteredTurn = h.gs.Turn.Number
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, pred))
}

func TestPredicateEventOccurred(t *testing.T) {
	h := newHarness(t)
	ctx := evalCtx{controller: 1}
	pred := ir.Predicate{Kind: ir.PredEventOccurred, Event: ir.EventUnitDied}

	assert.False(t, h.e.EvalPredicate(h.gs, ctx, pred))
	victim := h.addUnit(1, "Bear", 2, 2)
	h.e.Apply(h.gs, []Operation{{Kind: OpDestroy, TargetID: victim}})
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, pred))

	h.e.cleanupEndOfTurn(h.gs)
	assert.False(t, h.e.EvalPredicate(h.gs, ctx, pred), "the default window is the turn")

	game := pred
	game.Since = ir.LimitPerGame
	assert.True(t, h.e.EvalPredicate(h.gs, ctx, game))
}

func TestPredicateMissingSubjectIsFalse(t *testing.T) {
	h := newHarness(t)
	ctx := evalCtx{controller: 0}
	assert.False(t, h.e.EvalPredicate(h.gs, ctx, ir.Predicate{Kind: ir.PredHasTag, Name: "x"}))
	assert.False(t, h.e.EvalPredicate(h.gs, ctx, ir.Predicate{Kind: ir.PredIsToken}))
}
