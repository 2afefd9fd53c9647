package game

import "github.com/duelforge/duelforge/internal/game/ir"

// Trigger and replacement definitions live on card templates; activation
// is a scan over battlefield cards at event time, active player's side
// first. There is no subscription registry to keep in sync with zone
// moves: a card that left the battlefield simply stops showing up in the
// scan.

// fireTriggers runs every battlefield trigger listening for the event.
// player is the player the event is counted against; subjectID is the card
// the event is about, bound as the trigger condition's target (may be
// empty). Each firing drains one trigger credit.
func (e *Engine) fireTriggers(gs *GameState, kind ir.EventKind, player int, subjectID string) {
	for _, hostID := range gs.battlefieldIDs() {
		if gs.Winner != nil {
			return
		}
		host, ok := gs.Card(hostID)
		if !ok || host.Zone != ir.ZoneBattlefield {
			continue
		}
		for idx, def := range host.Template.TextIR.Triggers {
			if def.When != kind {
				continue
			}
			if !e.triggerApplies(gs, host, idx, def, subjectID) {
				continue
			}
			if gs.triggerCredits <= 0 {
				gs.Logf("trigger cascade stopped: trigger budget exhausted")
				e.logger.Warn("trigger credit budget exhausted")
				return
			}
			gs.triggerCredits--
			e.consumeUsage(gs, host.ID, idx, def.Limit)
			gs.Logf("%s triggers on %s", host.Template.Name, kind)

			ops := e.Plan(gs, host.Owner, host.ID, def.Effect, subjectChosen(def.Effect, subjectID))
			e.applyOps(gs, ops)
		}
	}
}

// triggerApplies checks the usage limit, the name filter and the condition
// predicate for one trigger definition.
func (e *Engine) triggerApplies(gs *GameState, host *RuntimeCard, idx int, def ir.TriggerDef, subjectID string) bool {
	if !e.usageRemaining(gs, host.ID, idx, def.Limit) {
		return false
	}
	if def.When == ir.EventNameMatched {
		subject, ok := gs.Card(subjectID)
		if !ok || !matchName(subject.Template.Canonical(), def.Name, ir.NameExact) {
			return false
		}
	}
	ctx := evalCtx{controller: host.Owner, selfID: host.ID, targetID: subjectID}
	return e.evalOptPredicate(gs, ctx, def.Condition)
}

// fireNameMatched raises the name-match event for a card that was just
// drawn or entered the battlefield, but only when some battlefield trigger
// actually listens for that name. The event counter moves only on a match.
func (e *Engine) fireNameMatched(gs *GameState, subject *RuntimeCard) {
	listening := false
	for _, hostID := range gs.battlefieldIDs() {
		host := gs.Cards[hostID]
		for _, def := range host.Template.TextIR.Triggers {
			if def.When == ir.EventNameMatched && matchName(subject.Template.Canonical(), def.Name, ir.NameExact) {
				listening = true
			}
		}
	}
	if !listening {
		return
	}
	gs.CountEvent(ir.EventNameMatched, subject.Owner)
	e.fireTriggers(gs, ir.EventNameMatched, subject.Owner, subject.ID)
}

// runReplacement looks for the first active battlefield replacement of the
// given kind whose subject selector matches the card the event is about.
// When found it consumes one use, plans and applies the substitute effect,
// and reports that the original event must not happen. First match wins;
// the substitute is never itself subject to replacement of the same
// instance.
func (e *Engine) runReplacement(gs *GameState, kind ir.ReplacementKind, subjectID string) bool {
	subject, ok := gs.Card(subjectID)
	if !ok {
		return false
	}
	for _, hostID := range gs.battlefieldIDs() {
		host, ok := gs.Card(hostID)
		if !ok || host.Zone != ir.ZoneBattlefield {
			continue
		}
		for idx, def := range host.Template.TextIR.Replacements {
			if def.Replaces != kind {
				continue
			}
			if !e.usageRemaining(gs, host.ID, replacementUsageIndex(idx), def.Limit) {
				continue
			}
			if !e.selectorMatches(gs, host.Owner, host.ID, def.Subject, subject) {
				continue
			}
			e.consumeUsage(gs, host.ID, replacementUsageIndex(idx), def.Limit)
			gs.Logf("%s replaces %s for %s", host.Template.Name, kind, subject.Template.Name)

			ops := e.Plan(gs, host.Owner, host.ID, def.Instead, subjectChosen(def.Instead, subjectID))
			e.applyOps(gs, ops)
			return true
		}
	}
	return false
}

// runPlayerReplacement handles replacement kinds whose subject is a player
// rather than a card (WouldDraw). The replacement must be hosted on a card
// the drawing player controls.
func (e *Engine) runPlayerReplacement(gs *GameState, kind ir.ReplacementKind, player int) bool {
	for _, hostID := range gs.battlefieldIDs() {
		host, ok := gs.Card(hostID)
		if !ok || host.Zone != ir.ZoneBattlefield || host.Owner != player {
			continue
		}
		for idx, def := range host.Template.TextIR.Replacements {
			if def.Replaces != kind {
				continue
			}
			if !e.usageRemaining(gs, host.ID, replacementUsageIndex(idx), def.Limit) {
				continue
			}
			e.consumeUsage(gs, host.ID, replacementUsageIndex(idx), def.Limit)
			gs.Logf("%s replaces the draw for %s", host.Template.Name, gs.Players[player].Name)

			ops := e.Plan(gs, host.Owner, host.ID, def.Instead, nil)
			e.applyOps(gs, ops)
			return true
		}
	}
	return false
}

// usageRemaining reports whether a definition's usage limit still allows a
// firing in its window.
func (e *Engine) usageRemaining(gs *GameState, cardID string, defIndex int, limit ir.UsageLimit) bool {
	if limit.Unlimited() {
		return true
	}
	key := usageKey(cardID, defIndex)
	if limit.Window == ir.LimitPerGame {
		return gs.UsageGame[key] < limit.Count
	}
	return gs.UsageTurn[key] < limit.Count
}

// consumeUsage bumps both usage windows for a definition.
func (e *Engine) consumeUsage(gs *GameState, cardID string, defIndex int, limit ir.UsageLimit) {
	if limit.Unlimited() {
		return
	}
	key := usageKey(cardID, defIndex)
	gs.UsageTurn[key]++
	gs.UsageGame[key]++
}

// replacementUsageIndex keeps replacement usage keys disjoint from trigger
// usage keys on the same card.
func replacementUsageIndex(idx int) int { return 1000 + idx }

// subjectChosen pre-binds the event subject as the effect's explicit
// target when the effect is target-shaped and declares no selector of its
// own ("destroy it", "return it to hand"). Effects with a selector keep
// their selection.
func subjectChosen(eff ir.Effect, subjectID string) []string {
	if subjectID == "" || !eff.Targeted() || eff.Select != nil {
		return nil
	}
	return []string{subjectID}
}
