package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/duelforge/duelforge/internal/game/counters"
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// Apply executes a plan against the state. This is the public entry: it
// refills the cascade credit budgets before running, so trigger chains
// started by these operations cannot run unbounded.
func (e *Engine) Apply(gs *GameState, ops []Operation) {
	gs.triggerCredits = e.rules.Caps.MaxTriggerCredits
	gs.spawnCredits = e.rules.Caps.MaxSpawnCredits
	e.applyOps(gs, ops)
}

// applyOps executes operations in order without touching the credit
// budgets. Trigger cascades re-enter here.
func (e *Engine) applyOps(gs *GameState, ops []Operation) {
	for _, op := range ops {
		if gs.Winner != nil {
			return
		}
		e.applyOp(gs, op)
	}
}

func (e *Engine) applyOp(gs *GameState, op Operation) {
	switch op.Kind {
	case OpLog, OpFizzle:
		gs.Logf("effect fizzled: %s", op.Note)

	case OpDamage:
		e.damageUnit(gs, op.SourceID, op.TargetID, op.Amount)

	case OpDamagePlayer:
		e.damagePlayer(gs, op.SourceID, op.Player, op.Amount)

	case OpHealPlayer:
		if op.Amount > 0 {
			gs.Players[op.Player].Life += op.Amount
			gs.Logf("%s heals %d", gs.Players[op.Player].Name, op.Amount)
		}

	case OpHealUnit:
		e.healUnit(gs, op.TargetID, op.Amount)

	case OpDraw:
		e.drawCards(gs, op.Player, op.Count)

	case OpLookAtTop:
		e.lookAtTop(gs, op.Player, op.Count, op.Keep)

	case OpMove:
		e.moveCard(gs, op.TargetID, op.To)

	case OpDestroy:
		e.destroyUnit(gs, op.SourceID, op.TargetID, "destroy effect")

	case OpCreateToken:
		e.createTokens(gs, op.Player, op.Token, op.Count)

	case OpBuff:
		e.buffUnit(gs, op.TargetID, op.Atk, op.HP, op.Duration)

	case OpTransform:
		e.transformUnit(gs, op.TargetID, op.Stats, op.Duration)

	case OpAddCounter:
		if rc, ok := gs.Card(op.TargetID); ok {
			rc.Counters.Add(op.Counter, op.Amount)
			gs.Logf("%s gains %d %s counter(s)", rc.Template.Name, op.Amount, op.Counter)
		}

	case OpRemoveCounter:
		if rc, ok := gs.Card(op.TargetID); ok {
			removed := rc.Counters.Remove(op.Counter, op.Amount)
			gs.Logf("%s loses %d %s counter(s)", rc.Template.Name, removed, op.Counter)
		}

	case OpTap:
		if rc, ok := gs.Card(op.TargetID); ok && rc.Zone == ir.ZoneBattlefield {
			rc.Tapped = true
		}

	case OpUntap:
		if rc, ok := gs.Card(op.TargetID); ok && rc.Zone == ir.ZoneBattlefield {
			rc.Tapped = false
		}

	case OpChangeController:
		e.changeController(gs, op.TargetID, op.Player, op.Duration)

	case OpPrevent:
		if op.Amount > 0 {
			if op.Duration == ir.DurationEndOfTurn {
				gs.PreventEOT[op.TargetID] += op.Amount
			} else {
				gs.PreventPerm[op.TargetID] += op.Amount
			}
		}

	case OpGainResource:
		p := gs.Players[op.Player]
		p.Resources += op.Amount
		if p.Resources > e.rules.ResourceMax {
			p.Resources = e.rules.ResourceMax
		}
		if p.Resources < 0 {
			p.Resources = 0
		}

	default:
		e.unhandledVariant(gs, "operation", string(op.Kind))
	}
}

// damageUnit runs the unit damage pipeline: WouldBeDamaged replacement,
// prevention pools (permanent before end-of-turn), then marked damage with
// Lifelink, Deathtouch and the lethal check.
func (e *Engine) damageUnit(gs *GameState, sourceID, targetID string, amount int) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield || amount <= 0 {
		return
	}

	if e.runReplacement(gs, ir.ReplaceWouldBeDamaged, targetID) {
		return
	}

	amount = e.consumePrevention(gs, targetID, amount)
	if amount <= 0 {
		gs.Logf("all damage to %s prevented", rc.Template.Name)
		return
	}

	rc.Damage += amount
	gs.Logf("%s takes %d damage", rc.Template.Name, amount)

	source, hasSource := gs.Card(sourceID)
	dealer := rc.Owner
	if hasSource {
		dealer = source.Owner
	}
	gs.CountEvent(ir.EventDamageDealt, dealer)

	if hasSource && source.HasKeyword(ir.KeywordLifelink) {
		gs.Players[source.Owner].Life += amount
		gs.Logf("%s gains %d life from lifelink", gs.Players[source.Owner].Name, amount)
	}

	e.fireTriggers(gs, ir.EventDamageDealt, dealer, targetID)

	if hasSource && source.HasKeyword(ir.KeywordDeathtouch) {
		e.destroyUnit(gs, sourceID, targetID, "deathtouch")
		return
	}
	e.checkLethal(gs, sourceID, targetID)
}

// consumePrevention drains the target's prevention pools, permanent pool
// first, and returns the damage that remains.
func (e *Engine) consumePrevention(gs *GameState, targetID string, amount int) int {
	if pool := gs.PreventPerm[targetID]; pool > 0 {
		used := min(pool, amount)
		gs.PreventPerm[targetID] -= used
		amount -= used
	}
	if pool := gs.PreventEOT[targetID]; pool > 0 && amount > 0 {
		used := min(pool, amount)
		gs.PreventEOT[targetID] -= used
		amount -= used
	}
	return amount
}

// checkLethal destroys the unit when its current HP is at or below the
// lethal threshold. Only units are subject to it; stat-less permanents
// have no HP to compare.
func (e *Engine) checkLethal(gs *GameState, sourceID, targetID string) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield || rc.Template.Type != ir.TypeUnit {
		return
	}
	if _, hp, _ := e.EffectiveStats(gs, rc); hp <= e.rules.LethalThreshold {
		e.destroyUnit(gs, sourceID, targetID, "lethal damage")
	}
}

// damagePlayer reduces a player's life directly, with Lifelink credit to
// the source and the loss check.
func (e *Engine) damagePlayer(gs *GameState, sourceID string, player, amount int) {
	if amount <= 0 {
		return
	}
	p := gs.Players[player]
	p.Life -= amount
	gs.Logf("%s takes %d damage, life %d", p.Name, amount, p.Life)

	dealer := OpponentOf(player)
	if source, ok := gs.Card(sourceID); ok {
		dealer = source.Owner
		if source.HasKeyword(ir.KeywordLifelink) {
			gs.Players[source.Owner].Life += amount
			gs.Logf("%s gains %d life from lifelink", gs.Players[source.Owner].Name, amount)
		}
	}
	gs.CountEvent(ir.EventDamageDealt, dealer)
	e.fireTriggers(gs, ir.EventDamageDealt, dealer, "")

	if p.Life <= 0 {
		e.declareWinner(gs, OpponentOf(player), "opponent's life reached zero")
	}
}

// healUnit removes marked damage, never below zero.
func (e *Engine) healUnit(gs *GameState, targetID string, amount int) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield || amount <= 0 {
		return
	}
	rc.Damage -= amount
	if rc.Damage < 0 {
		rc.Damage = 0
	}
	gs.Logf("%s is healed for %d", rc.Template.Name, amount)
}

// destroyUnit runs the death pipeline: Indestructible guard, WouldDie
// replacement, the death event and OnDeath triggers, then the zone move.
// Triggers fire while the dying card is still battlefield-resident, so
// its own on-death abilities see the event.
func (e *Engine) destroyUnit(gs *GameState, sourceID, targetID, why string) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield {
		return
	}
	if rc.HasKeyword(ir.KeywordIndestructible) {
		// Marked damage stays on the unit; indestructible only blocks the
		// death itself.
		gs.Logf("%s is indestructible, survives %s", rc.Template.Name, why)
		return
	}

	if e.runReplacement(gs, ir.ReplaceWouldDie, targetID) {
		return
	}

	owner := rc.Owner
	gs.Logf("%s dies (%s)", rc.Template.Name, why)
	gs.CountEvent(ir.EventUnitDied, owner)
	e.fireTriggers(gs, ir.EventUnitDied, owner, targetID)
	// The cascade may have moved the card itself already.
	if rc.Zone == ir.ZoneBattlefield {
		if rc.IsToken {
			e.leaveBattlefield(gs, rc, e.rules.TokenLeaveZone)
		} else {
			e.leaveBattlefield(gs, rc, ir.ZoneGraveyard)
		}
	}
	e.sweepLethal(gs)
}

// sweepLethal re-checks every battlefield unit after a continuous-effect
// source may have left: losing a static buff can itself be lethal.
func (e *Engine) sweepLethal(gs *GameState) {
	for _, id := range gs.battlefieldIDs() {
		e.checkLethal(gs, "", id)
	}
}

// moveCard transfers a card between zones, running battlefield entry and
// exit bookkeeping as needed. Tokens that leave the battlefield go to the
// configured leave zone regardless of the requested destination.
func (e *Engine) moveCard(gs *GameState, targetID string, to ir.Zone) {
	rc, ok := gs.Card(targetID)
	if !ok || !to.Supported() || rc.Zone == to {
		return
	}
	from := rc.Zone
	if from == ir.ZoneBattlefield {
		if rc.IsToken && to != ir.ZoneBattlefield {
			to = e.rules.TokenLeaveZone
		}
		e.leaveBattlefield(gs, rc, to)
	} else {
		gs.placeInZone(rc, to)
	}
	gs.Logf("%s moves from %s to %s", rc.Template.Name, from, to)
	if to == ir.ZoneBattlefield {
		e.enterBattlefield(gs, rc)
	}
	if from == ir.ZoneBattlefield {
		e.sweepLethal(gs)
	}
}

// leaveBattlefield moves the card out and strips all battlefield-scoped
// runtime state: damage, buffs, overrides, tap and prevention pools.
func (e *Engine) leaveBattlefield(gs *GameState, rc *RuntimeCard, to ir.Zone) {
	gs.placeInZone(rc, to)
	rc.Damage = 0
	rc.Tapped = false
	rc.EnteredTurn = 0
	rc.PermBuff = ir.Stats{}
	rc.EOTBuff = ir.Stats{}
	rc.PermOverride = nil
	rc.EOTOverride = nil
	rc.Counters = counters.New()
	delete(gs.PreventPerm, rc.ID)
	delete(gs.PreventEOT, rc.ID)
	delete(gs.ControlRevert, rc.ID)
}

// enterBattlefield records entry state and fires the entry events.
func (e *Engine) enterBattlefield(gs *GameState, rc *RuntimeCard) {
	rc.EnteredTurn = gs.Turn.Number
	rc.Tapped = false
	gs.CountEvent(ir.EventEnteredBattlefield, rc.Owner)
	e.fireTriggers(gs, ir.EventEnteredBattlefield, rc.Owner, rc.ID)
	e.fireNameMatched(gs, rc)
}

// drawCards draws one card at a time: WouldDraw replacement first, then
// the empty-library rule, then the actual draw with its events.
func (e *Engine) drawCards(gs *GameState, player, count int) {
	for i := 0; i < count; i++ {
		if gs.Winner != nil {
			return
		}
		if e.runPlayerReplacement(gs, ir.ReplaceWouldDraw, player) {
			continue
		}
		p := gs.Players[player]
		if len(p.Library) == 0 {
			if e.rules.EmptyDraw == ruleset.EmptyDrawLose {
				e.declareWinner(gs, OpponentOf(player), "draw from an empty library")
			} else {
				gs.Logf("%s draws from an empty library, nothing happens", p.Name)
			}
			return
		}
		top := p.Library[len(p.Library)-1]
		rc := gs.Cards[top]
		gs.placeInZone(rc, ir.ZoneHand)
		gs.Logf("%s draws a card", p.Name)
		gs.CountEvent(ir.EventCardDrawn, player)
		e.fireTriggers(gs, ir.EventCardDrawn, player, top)
		e.fireNameMatched(gs, rc)
	}
}

// discardOver discards from the front of the hand down to the maximum.
// The hand limit is enforced at end of turn only; a hand may run over it
// mid-turn.
func (e *Engine) discardOver(gs *GameState, player int) {
	p := gs.Players[player]
	for len(p.Hand) > e.rules.MaxHandSize {
		rc := gs.Cards[p.Hand[0]]
		gs.placeInZone(rc, ir.ZoneGraveyard)
		gs.Logf("%s discards %s over the hand limit", p.Name, rc.Template.Name)
	}
}

// lookAtTop reveals the top cards, keeps the first keep of them on top and
// sends the rest to the bottom of the library.
func (e *Engine) lookAtTop(gs *GameState, player, count, keep int) {
	p := gs.Players[player]
	if count <= 0 {
		return
	}
	if count > len(p.Library) {
		count = len(p.Library)
	}
	if keep > count {
		keep = count
	}
	if keep < 0 {
		keep = 0
	}

	// Library top is the end of the list.
	top := make([]string, count)
	copy(top, p.Library[len(p.Library)-count:])
	names := make([]string, count)
	for i, id := range top {
		names[count-1-i] = gs.Cards[id].Template.Name
	}
	gs.Logf("%s looks at: %s", p.Name, strings.Join(names, ", "))

	bottom := top[:count-keep]
	p.Library = p.Library[:len(p.Library)-count+keep]
	rest := append([]string(nil), p.Library...)
	p.Library = append(bottom, rest...)
	gs.Logf("%s keeps %d on top", p.Name, keep)
}

// createTokens mints token units onto the controller's battlefield,
// bounded by the spawn credit budget.
func (e *Engine) createTokens(gs *GameState, controller int, spec *ir.TokenSpec, count int) {
	for i := 0; i < count; i++ {
		if gs.spawnCredits <= 0 {
			gs.Logf("token creation stopped: spawn budget exhausted")
			return
		}
		gs.spawnCredits--

		stats := spec.Stats
		template := &ir.Card{
			Name:     spec.Name,
			Type:     ir.TypeUnit,
			Stats:    &stats,
			Keywords: append(ir.KeywordSet(nil), spec.Keywords...),
			Tags:     append([]string(nil), spec.Tags...),
		}
		rc := &RuntimeCard{
			ID:       uuid.NewString(),
			Owner:    controller,
			Template: template,
			IsToken:  true,
			Counters: counters.New(),
		}
		gs.Cards[rc.ID] = rc
		gs.placeInZone(rc, ir.ZoneBattlefield)
		gs.Logf("%s creates a %d/%d %s token", gs.Players[controller].Name, stats.Atk, stats.HP, spec.Name)
		gs.CountEvent(ir.EventTokenCreated, controller)
		e.fireTriggers(gs, ir.EventTokenCreated, controller, rc.ID)
		e.enterBattlefield(gs, rc)
	}
}

// buffUnit adds to one of the numeric buff layers and re-runs the lethal
// check, since a negative HP buff can kill.
func (e *Engine) buffUnit(gs *GameState, targetID string, atk, hp int, duration ir.Duration) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield {
		return
	}
	if duration == ir.DurationEndOfTurn {
		rc.EOTBuff.Atk += atk
		rc.EOTBuff.HP += hp
	} else {
		rc.PermBuff.Atk += atk
		rc.PermBuff.HP += hp
	}
	gs.Logf("%s gets %+d/%+d", rc.Template.Name, atk, hp)
	e.checkLethal(gs, "", targetID)
}

// transformUnit installs a stat override layer and re-runs the lethal
// check.
func (e *Engine) transformUnit(gs *GameState, targetID string, stats ir.Stats, duration ir.Duration) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield {
		return
	}
	block := stats
	if duration == ir.DurationEndOfTurn {
		rc.EOTOverride = &block
	} else {
		rc.PermOverride = &block
	}
	gs.Logf("%s becomes %d/%d", rc.Template.Name, stats.Atk, stats.HP)
	e.checkLethal(gs, "", targetID)
}

// changeController hands a battlefield card to the new controller. An
// end-of-turn change records the original owner once so nested changes
// still revert to the true original.
func (e *Engine) changeController(gs *GameState, targetID string, newController int, duration ir.Duration) {
	rc, ok := gs.Card(targetID)
	if !ok || rc.Zone != ir.ZoneBattlefield || rc.Owner == newController {
		return
	}
	if duration == ir.DurationEndOfTurn {
		if _, recorded := gs.ControlRevert[targetID]; !recorded {
			gs.ControlRevert[targetID] = rc.Owner
		}
	} else {
		delete(gs.ControlRevert, targetID)
	}
	gs.detachFromZones(rc)
	rc.Owner = newController
	gs.placeInZone(rc, ir.ZoneBattlefield)
	gs.Logf("%s takes control of %s", gs.Players[newController].Name, rc.Template.Name)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
