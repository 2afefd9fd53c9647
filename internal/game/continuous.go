package game

import "github.com/duelforge/duelforge/internal/game/ir"

// Continuous effects are never cached: static buffs are re-summed on every
// stat read and cost modifiers on every cost check, so a card leaving the
// battlefield stops contributing immediately.

// EffectiveStats computes a unit's current ATK, HP and HP maximum.
// Base stats come from the transform override layers (end-of-turn wins
// over permanent wins over template), plus the summed continuous static
// buffs; ATK and HP max then add the permanent and end-of-turn numeric
// buffs; current HP subtracts accumulated damage, floored at the lethal
// threshold.
func (e *Engine) EffectiveStats(gs *GameState, rc *RuntimeCard) (atk, hp, hpMax int) {
	base := ir.Stats{}
	if rc.Template.Stats != nil {
		base = *rc.Template.Stats
	}
	if rc.PermOverride != nil {
		base = *rc.PermOverride
	}
	if rc.EOTOverride != nil {
		base = *rc.EOTOverride
	}

	buffAtk, buffHP := e.staticBuffFor(gs, rc)

	atk = base.Atk + buffAtk + rc.PermBuff.Atk + rc.EOTBuff.Atk
	hpMax = base.HP + buffHP + rc.PermBuff.HP + rc.EOTBuff.HP

	hp = hpMax - rc.Damage
	if hp < e.rules.LethalThreshold {
		hp = e.rules.LethalThreshold
	}
	return atk, hp, hpMax
}

// staticBuffFor sums the ATK/HP deltas of every active StaticBuff whose
// target selector matches the card. Only battlefield-resident sources
// contribute.
func (e *Engine) staticBuffFor(gs *GameState, rc *RuntimeCard) (atk, hp int) {
	for _, sourceID := range gs.battlefieldIDs() {
		source := gs.Cards[sourceID]
		for _, def := range source.Template.TextIR.Continuous {
			if def.Kind != ir.ContinuousStaticBuff {
				continue
			}
			if !e.selectorMatches(gs, source.Owner, sourceID, def.Target, rc) {
				continue
			}
			atk += def.Atk
			hp += def.HP
		}
	}
	return atk, hp
}

// CastCost computes a card's current generic cast cost: the template cost
// plus the summed deltas of every active CostModifier whose predicate
// matches, honoring each modifier's floor, never below zero.
func (e *Engine) CastCost(gs *GameState, caster int, rc *RuntimeCard) int {
	cost := rc.Template.Cost.Generic
	for _, sourceID := range gs.battlefieldIDs() {
		source := gs.Cards[sourceID]
		for _, def := range source.Template.TextIR.Continuous {
			if def.Kind != ir.ContinuousCostModifier {
				continue
			}
			ctx := evalCtx{controller: source.Owner, selfID: sourceID, targetID: rc.ID}
			if !e.evalOptPredicate(gs, ctx, def.Where) {
				continue
			}
			cost += def.Delta
			if def.Floor != nil && cost < *def.Floor {
				cost = *def.Floor
			}
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

// selectorMatches reports whether a candidate card satisfies a continuous
// effect's target selector, evaluated from the source's perspective. A nil
// selector matches every battlefield card.
func (e *Engine) selectorMatches(gs *GameState, controller int, selfID string, sel *ir.Selector, candidate *RuntimeCard) bool {
	effective := ir.Selector{}
	if sel != nil {
		effective = *sel
	}
	if candidate.Zone != effective.EffectiveZone() {
		return false
	}
	switch effective.EffectiveOwner() {
	case ir.OwnerController:
		if candidate.Owner != controller {
			return false
		}
	case ir.OwnerOpponent:
		if candidate.Owner != OpponentOf(controller) {
			return false
		}
	}
	ctx := evalCtx{controller: controller, selfID: selfID, targetID: candidate.ID}
	return e.evalOptPredicate(gs, ctx, effective.Where)
}
