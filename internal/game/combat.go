package game

import (
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// CanCast checks every cast precondition without paying anything: match
// live, caster active, main phase, card in hand, cost payable after
// continuous modifiers, color requirements covered by the caster's
// identity.
func (e *Engine) CanCast(gs *GameState, player int, cardID string) CheckResult {
	if gs.Winner != nil {
		return denied("the match is over")
	}
	if player != gs.Turn.Active {
		return denied("only the active player casts")
	}
	if gs.Turn.Phase != ruleset.PhaseMain {
		return denied("cards are cast in the %s phase, not %s", ruleset.PhaseMain, gs.Turn.Phase)
	}
	rc, ok := gs.Card(cardID)
	if !ok || rc.Owner != player || rc.Zone != ir.ZoneHand {
		return denied("card is not in your hand")
	}
	cost := e.CastCost(gs, player, rc)
	if cost > gs.Players[player].Resources {
		return denied("%s costs %d, %d available", rc.Template.Name, cost, gs.Players[player].Resources)
	}
	for _, color := range rc.Template.Cost.Colors {
		if !playerHasColor(gs.Players[player], color) {
			return denied("%s requires %s", rc.Template.Name, color)
		}
	}
	return allowed()
}

// Cast pays the cost and resolves the card: permanents enter the
// battlefield, spells resolve their cast effect and go to the graveyard.
// chosenTargets binds declared targets for the cast effect; legality is
// re-checked at resolution and an empty result follows the fizzle policy.
func (e *Engine) Cast(gs *GameState, player int, cardID string, chosenTargets []string) CheckResult {
	if check := e.CanCast(gs, player, cardID); !check.OK {
		return check
	}
	rc := gs.Cards[cardID]
	cost := e.CastCost(gs, player, rc)
	gs.Players[player].Resources -= cost
	gs.Logf("%s casts %s for %d", gs.Players[player].Name, rc.Template.Name, cost)

	gs.triggerCredits = e.rules.Caps.MaxTriggerCredits
	gs.spawnCredits = e.rules.Caps.MaxSpawnCredits
	gs.CountEvent(ir.EventSpellCast, player)
	e.fireTriggers(gs, ir.EventSpellCast, player, cardID)
	if gs.Winner != nil {
		return allowed()
	}

	if rc.Template.Type.Permanent() {
		gs.placeInZone(rc, ir.ZoneBattlefield)
		e.enterBattlefield(gs, rc)
		if cast := rc.Template.TextIR.Cast; cast != nil && gs.Winner == nil {
			e.applyOps(gs, e.Plan(gs, player, cardID, *cast, chosenTargets))
		}
		return allowed()
	}

	if cast := rc.Template.TextIR.Cast; cast != nil {
		e.applyOps(gs, e.Plan(gs, player, cardID, *cast, chosenTargets))
	}
	if rc.Zone == ir.ZoneHand {
		gs.placeInZone(rc, ir.ZoneGraveyard)
	}
	return allowed()
}

// CanAttack checks attack legality. defenderID names the defending unit,
// or is empty for a direct attack on the opponent.
func (e *Engine) CanAttack(gs *GameState, player int, attackerID, defenderID string) CheckResult {
	if gs.Winner != nil {
		return denied("the match is over")
	}
	if player != gs.Turn.Active {
		return denied("only the active player attacks")
	}
	if gs.Turn.Phase != ruleset.PhaseCombat {
		return denied("attacks happen in the %s phase, not %s", ruleset.PhaseCombat, gs.Turn.Phase)
	}

	attacker, ok := gs.Card(attackerID)
	if !ok || attacker.Owner != player || attacker.Zone != ir.ZoneBattlefield {
		return denied("attacker is not on your battlefield")
	}
	if attacker.Template.Type != ir.TypeUnit {
		return denied("%s is not a unit", attacker.Template.Name)
	}
	if attacker.Tapped {
		return denied("%s is tapped", attacker.Template.Name)
	}
	if attacker.HasKeyword(ir.KeywordDefender) {
		return denied("%s has defender and cannot attack", attacker.Template.Name)
	}
	if attacker.SummonedThisTurn(gs.Turn.Number) && !attacker.HasKeyword(ir.KeywordHaste) {
		return denied("%s was summoned this turn", attacker.Template.Name)
	}

	opponent := OpponentOf(player)
	if defenderID == "" {
		if e.rules.AttackPolicy == ruleset.AttackUnitsFirst && e.hasDefendingUnit(gs, opponent) {
			return denied("you must attack a unit while the opponent controls one")
		}
		return allowed()
	}

	defender, ok := gs.Card(defenderID)
	if !ok || defender.Owner != opponent || defender.Zone != ir.ZoneBattlefield {
		return denied("defender is not on the opponent's battlefield")
	}
	if defender.Template.Type != ir.TypeUnit {
		return denied("%s is not a unit", defender.Template.Name)
	}
	return allowed()
}

// Attack resolves one attack. Against a unit both sides deal their
// effective ATK through the full damage pipeline simultaneously; against a
// player the attacker's ATK hits life directly. The attacker taps unless
// it has Vigilance.
func (e *Engine) Attack(gs *GameState, player int, attackerID, defenderID string) CheckResult {
	if check := e.CanAttack(gs, player, attackerID, defenderID); !check.OK {
		return check
	}
	attacker := gs.Cards[attackerID]
	if !attacker.HasKeyword(ir.KeywordVigilance) {
		attacker.Tapped = true
	}

	gs.triggerCredits = e.rules.Caps.MaxTriggerCredits
	gs.spawnCredits = e.rules.Caps.MaxSpawnCredits

	attackerAtk, _, _ := e.EffectiveStats(gs, attacker)
	if defenderID == "" {
		gs.Logf("%s attacks %s", attacker.Template.Name, gs.Players[OpponentOf(player)].Name)
		e.damagePlayer(gs, attackerID, OpponentOf(player), attackerAtk)
		return allowed()
	}

	defender := gs.Cards[defenderID]
	defenderAtk, _, _ := e.EffectiveStats(gs, defender)
	gs.Logf("%s attacks %s", attacker.Template.Name, defender.Template.Name)

	// Both damage packets are dealt from pre-combat stats, so neither death
	// cancels the counter-blow.
	e.damageUnit(gs, attackerID, defenderID, attackerAtk)
	e.damageUnit(gs, defenderID, attackerID, defenderAtk)
	return allowed()
}

func (e *Engine) hasDefendingUnit(gs *GameState, player int) bool {
	for _, id := range gs.Players[player].Battlefield {
		if gs.Cards[id].Template.Type == ir.TypeUnit {
			return true
		}
	}
	return false
}

func playerHasColor(p *PlayerState, color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
