package game

import (
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// CanAdvancePhase checks whether the active player may move to the next
// phase. The end phase is never advanced out of; it is left by ending the
// turn.
func (e *Engine) CanAdvancePhase(gs *GameState) CheckResult {
	if gs.Winner != nil {
		return denied("the match is over")
	}
	if _, ok := e.rules.NextPhase(gs.Turn.Phase); !ok {
		return denied("the %s phase is exited by ending the turn", gs.Turn.Phase)
	}
	return allowed()
}

// AdvancePhase moves the turn to the next phase in the configured order.
func (e *Engine) AdvancePhase(gs *GameState) CheckResult {
	if check := e.CanAdvancePhase(gs); !check.OK {
		return check
	}
	next, _ := e.rules.NextPhase(gs.Turn.Phase)
	gs.Turn.Phase = next
	gs.Logf("%s phase begins", next)
	return allowed()
}

// CanEndTurn checks whether the active player may end the turn. Ending is
// legal from any phase; it fast-forwards past the remaining ones.
func (e *Engine) CanEndTurn(gs *GameState) CheckResult {
	if gs.Winner != nil {
		return denied("the match is over")
	}
	return allowed()
}

// EndTurn runs end-of-turn cleanup and hands the turn to the opponent.
func (e *Engine) EndTurn(gs *GameState) CheckResult {
	if check := e.CanEndTurn(gs); !check.OK {
		return check
	}
	e.cleanupEndOfTurn(gs)
	if gs.Winner != nil {
		return allowed()
	}
	gs.Turn.Active = OpponentOf(gs.Turn.Active)
	gs.Turn.Number++
	e.beginTurn(gs)
	return allowed()
}

// cleanupEndOfTurn expires everything scoped to the ending turn: the
// active player discards down to the hand limit, control changes revert,
// end-of-turn stat layers and prevention pools clear, and the per-turn
// counter windows reset. Expiring a stat layer can drop a unit to
// lethal, so the sweep re-checks every battlefield unit after.
func (e *Engine) cleanupEndOfTurn(gs *GameState) {
	gs.Logf("turn %d ends", gs.Turn.Number)
	e.discardOver(gs, gs.Turn.Active)

	for id, original := range gs.ControlRevert {
		rc, ok := gs.Card(id)
		if !ok || rc.Zone != ir.ZoneBattlefield {
			continue
		}
		gs.detachFromZones(rc)
		rc.Owner = original
		gs.placeInZone(rc, ir.ZoneBattlefield)
		gs.Logf("%s returns to %s", rc.Template.Name, gs.Players[original].Name)
	}
	gs.ControlRevert = make(map[string]int)

	for _, rc := range gs.Cards {
		if rc.Zone != ir.ZoneBattlefield {
			continue
		}
		rc.EOTBuff = ir.Stats{}
		rc.EOTOverride = nil
		if !e.rules.DamagePersists {
			rc.Damage = 0
		}
	}
	gs.PreventEOT = make(map[string]int)
	gs.EventsTurn = make(map[string]int)
	gs.UsageTurn = make(map[string]int)

	gs.triggerCredits = e.rules.Caps.MaxTriggerCredits
	gs.spawnCredits = e.rules.Caps.MaxSpawnCredits
	for _, id := range gs.battlefieldIDs() {
		e.checkLethal(gs, "", id)
	}
}

// beginTurn starts the active player's turn: phase reset, untap, the
// upkeep event, resource refresh, then the turn-start draw. The refresh
// comes after the upkeep triggers, so a reset-policy ruleset overrides
// whatever the triggers granted.
func (e *Engine) beginTurn(gs *GameState) {
	p := gs.Players[gs.Turn.Active]
	gs.Turn.Phase = e.rules.FirstPhase()
	gs.Logf("turn %d: %s", gs.Turn.Number, p.Name)

	for _, id := range p.Battlefield {
		gs.Cards[id].Tapped = false
	}

	gs.triggerCredits = e.rules.Caps.MaxTriggerCredits
	gs.spawnCredits = e.rules.Caps.MaxSpawnCredits
	gs.CountEvent(ir.EventUpkeepStarted, gs.Turn.Active)
	e.fireTriggers(gs, ir.EventUpkeepStarted, gs.Turn.Active, "")

	if !e.rules.ResourceCarryOver {
		p.Resources = 0
	}
	p.Resources += e.rules.ResourcePerTurn
	if p.Resources > e.rules.ResourceMax {
		p.Resources = e.rules.ResourceMax
	}

	if e.rules.DrawOnTurnStart && gs.Winner == nil {
		e.drawCards(gs, gs.Turn.Active, 1)
	}
}

// CanMulligan checks whether the player may still take a mulligan: only
// before the first turn's main phase, and only while a replacement hand
// would hold at least one card.
func (e *Engine) CanMulligan(gs *GameState, player int) CheckResult {
	if gs.Winner != nil {
		return denied("the match is over")
	}
	if gs.Turn.Number != 1 || gs.Turn.Phase != e.rules.FirstPhase() {
		return denied("mulligans are only taken before the first turn's %s phase ends", e.rules.FirstPhase())
	}
	p := gs.Players[player]
	if e.rules.StartingHandSize-p.Mulligans-1 < 1 {
		return denied("no cards would remain after another mulligan")
	}
	return allowed()
}

// Mulligan shuffles the player's hand back and deals a fresh hand one card
// smaller.
func (e *Engine) Mulligan(gs *GameState, player int) CheckResult {
	if check := e.CanMulligan(gs, player); !check.OK {
		return check
	}
	p := gs.Players[player]
	for _, id := range p.ZoneIDs(ir.ZoneHand) {
		gs.placeInZone(gs.Cards[id], ir.ZoneLibrary)
	}
	gs.shuffleLibrary(player)
	p.Mulligans++

	size := e.rules.StartingHandSize - p.Mulligans
	for i := 0; i < size && len(p.Library) > 0; i++ {
		top := p.Library[len(p.Library)-1]
		gs.placeInZone(gs.Cards[top], ir.ZoneHand)
	}
	gs.Logf("%s mulligans to %d", p.Name, size)
	return allowed()
}

// PhaseIs reports whether the turn is in the given phase.
func (e *Engine) PhaseIs(gs *GameState, phase ruleset.Phase) bool {
	return gs.Turn.Phase == phase
}
