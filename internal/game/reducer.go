package game

import (
	"math/rand"

	"github.com/duelforge/duelforge/internal/game/ir"
)

// Reduce deep-copies a game state and applies the given operations to
// the copy, leaving the live match untouched. This is the entry point
// for speculative lines: plan against the live state, reduce, inspect
// the outcome.
func (e *Engine) Reduce(gs *GameState, ops []Operation) *GameState {
	out := cloneState(gs)
	if len(ops) > 0 {
		e.Apply(out, ops)
	}
	return out
}

// cloneState copies everything mutable. Card templates are shared (they
// are immutable). The copy's rng is reseeded from the turn number so a
// speculative shuffle cannot leak the live sequence position.
func cloneState(gs *GameState) *GameState {
	out := newGameState(int64(gs.Turn.Number))
	out.Turn = gs.Turn
	out.Log = append([]string(nil), gs.Log...)
	out.EffectStack = append([]ir.Effect(nil), gs.EffectStack...)
	out.rng = rand.New(rand.NewSource(int64(gs.Turn.Number)))
	out.triggerCredits = gs.triggerCredits
	out.spawnCredits = gs.spawnCredits

	if gs.Winner != nil {
		w := *gs.Winner
		out.Winner = &w
	}

	for id, rc := range gs.Cards {
		out.Cards[id] = cloneCard(rc)
	}
	for i, p := range gs.Players {
		out.Players[i] = clonePlayer(p)
	}

	copyCounts(out.PreventPerm, gs.PreventPerm)
	copyCounts(out.PreventEOT, gs.PreventEOT)
	copyCounts(out.ControlRevert, gs.ControlRevert)
	copyCounts(out.EventsTurn, gs.EventsTurn)
	copyCounts(out.EventsGame, gs.EventsGame)
	copyCounts(out.UsageTurn, gs.UsageTurn)
	copyCounts(out.UsageGame, gs.UsageGame)
	return out
}

func cloneCard(rc *RuntimeCard) *RuntimeCard {
	out := *rc
	out.Counters = rc.Counters.Copy()
	if rc.PermOverride != nil {
		block := *rc.PermOverride
		out.PermOverride = &block
	}
	if rc.EOTOverride != nil {
		block := *rc.EOTOverride
		out.EOTOverride = &block
	}
	return &out
}

func clonePlayer(p *PlayerState) *PlayerState {
	out := *p
	out.Colors = append([]string(nil), p.Colors...)
	out.Library = append([]string(nil), p.Library...)
	out.Hand = append([]string(nil), p.Hand...)
	out.Battlefield = append([]string(nil), p.Battlefield...)
	out.Graveyard = append([]string(nil), p.Graveyard...)
	out.Exile = append([]string(nil), p.Exile...)
	return &out
}

func copyCounts(dst, src map[string]int) {
	for k, v := range src {
		dst[k] = v
	}
}
