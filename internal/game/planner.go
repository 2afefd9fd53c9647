package game

import "github.com/duelforge/duelforge/internal/game/ir"

// OpKind discriminates primitive operations. Closed set; the applier
// switches over it exhaustively.
type OpKind string

const (
	OpLog              OpKind = "LOG"
	OpFizzle           OpKind = "FIZZLE"
	OpDamage           OpKind = "DAMAGE"
	OpDamagePlayer     OpKind = "DAMAGE_PLAYER"
	OpHealPlayer       OpKind = "HEAL_PLAYER"
	OpHealUnit         OpKind = "HEAL_UNIT"
	OpDraw             OpKind = "DRAW"
	OpLookAtTop        OpKind = "LOOK_AT_TOP"
	OpMove             OpKind = "MOVE"
	OpDestroy          OpKind = "DESTROY"
	OpCreateToken      OpKind = "CREATE_TOKEN"
	OpBuff             OpKind = "BUFF"
	OpTransform        OpKind = "TRANSFORM"
	OpAddCounter       OpKind = "ADD_COUNTER"
	OpRemoveCounter    OpKind = "REMOVE_COUNTER"
	OpTap              OpKind = "TAP"
	OpUntap            OpKind = "UNTAP"
	OpChangeController OpKind = "CHANGE_CONTROLLER"
	OpPrevent          OpKind = "PREVENT"
	OpGainResource     OpKind = "GAIN_RESOURCE"
)

// Operation is one primitive mutation the applier executes. The planner
// resolves targets and evaluates all values, so operations carry concrete
// ids and amounts only.
type Operation struct {
	Kind OpKind

	Controller int
	SourceID   string

	TargetID string
	Player   int
	Amount   int
	Count    int
	Keep     int

	To       ir.Zone
	Token    *ir.TokenSpec
	Atk      int
	HP       int
	Stats    ir.Stats
	Counter  string
	Duration ir.Duration

	Note string
}

// Plan maps an effect tree to the ordered operations that implement it.
// It resolves targets, re-checks legality, applies the fizzle policy and
// recurses through control flow. It performs no mutation.
// chosen carries explicitly declared target ids, or nil for selection.
func (e *Engine) Plan(gs *GameState, controller int, sourceID string, eff ir.Effect, chosen []string) []Operation {
	ctx := evalCtx{controller: controller, selfID: sourceID}
	return e.planEffect(gs, ctx, eff, chosen)
}

func (e *Engine) planEffect(gs *GameState, ctx evalCtx, eff ir.Effect, chosen []string) []Operation {
	switch eff.Kind {
	case ir.EffectNoOp:
		return nil

	case ir.EffectDealDamage:
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:       OpDamage,
				Controller: tctx.controller,
				SourceID:   tctx.selfID,
				TargetID:   target,
				Amount:     e.evalOptValue(gs, tctx, eff.Amount, 0),
			}
		})

	case ir.EffectHealUnit:
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     OpHealUnit,
				TargetID: target,
				Amount:   e.evalOptValue(gs, tctx, eff.Amount, 0),
			}
		})

	case ir.EffectDestroy:
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{Kind: OpDestroy, SourceID: tctx.selfID, TargetID: target}
		})

	case ir.EffectMove:
		if !eff.To.Supported() {
			gs.Logf("move into unsupported zone %s yields nothing", eff.To)
			return nil
		}
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{Kind: OpMove, TargetID: target, To: eff.To}
		})

	case ir.EffectBuffStats:
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     OpBuff,
				TargetID: target,
				Atk:      e.evalOptValue(gs, tctx, eff.Atk, 0),
				HP:       e.evalOptValue(gs, tctx, eff.HP, 0),
				Duration: durationOrPermanent(eff.Duration),
			}
		})

	case ir.EffectTransform:
		override := ir.Stats{}
		if eff.Override != nil {
			override = *eff.Override
		}
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     OpTransform,
				TargetID: target,
				Stats:    override,
				Duration: durationOrPermanent(eff.Duration),
			}
		})

	case ir.EffectCopyStats:
		source, ok := gs.Card(ctx.selfID)
		if !ok {
			gs.Logf("copy stats without a source card fizzles")
			return []Operation{{Kind: OpFizzle, Note: "no source for stat copy"}}
		}
		atk, _, hpMax := e.EffectiveStats(gs, source)
		copied := ir.Stats{Atk: atk, HP: hpMax}
		if eff.Clamp != nil {
			copied.Atk = clampInt(copied.Atk, eff.Clamp.MinAtk, eff.Clamp.MaxAtk)
			copied.HP = clampInt(copied.HP, eff.Clamp.MinHP, eff.Clamp.MaxHP)
		}
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     OpTransform,
				TargetID: target,
				Stats:    copied,
				Duration: durationOrPermanent(eff.Duration),
			}
		})

	case ir.EffectAddCounter, ir.EffectRemoveCounter:
		kind := OpAddCounter
		if eff.Kind == ir.EffectRemoveCounter {
			kind = OpRemoveCounter
		}
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     kind,
				TargetID: target,
				Counter:  eff.Counter,
				Amount:   e.evalOptValue(gs, tctx, eff.Amount, 1),
			}
		})

	case ir.EffectTap, ir.EffectUntap:
		kind := OpTap
		if eff.Kind == ir.EffectUntap {
			kind = OpUntap
		}
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{Kind: kind, TargetID: target}
		})

	case ir.EffectChangeController:
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     OpChangeController,
				TargetID: target,
				Player:   tctx.controller,
				Duration: durationOrPermanent(eff.Duration),
			}
		})

	case ir.EffectPreventDamage:
		return e.planPerTarget(gs, ctx, eff, chosen, func(target string, tctx evalCtx) Operation {
			return Operation{
				Kind:     OpPrevent,
				TargetID: target,
				Amount:   e.evalOptValue(gs, tctx, eff.Amount, 0),
				Duration: durationOrPermanent(eff.Duration),
			}
		})

	case ir.EffectDamagePlayer:
		return []Operation{{
			Kind:       OpDamagePlayer,
			Controller: ctx.controller,
			SourceID:   ctx.selfID,
			Player:     ctx.resolveWho(eff.Who),
			Amount:     e.evalOptValue(gs, ctx, eff.Amount, 0),
		}}

	case ir.EffectHealPlayer:
		return []Operation{{
			Kind:   OpHealPlayer,
			Player: ctx.resolveWho(eff.Who),
			Amount: e.evalOptValue(gs, ctx, eff.Amount, 0),
		}}

	case ir.EffectGainResource:
		return []Operation{{
			Kind:   OpGainResource,
			Player: ctx.resolveWho(eff.Who),
			Amount: e.evalOptValue(gs, ctx, eff.Amount, 0),
		}}

	case ir.EffectDraw:
		return []Operation{{
			Kind:   OpDraw,
			Player: ctx.resolveWho(eff.Who),
			Count:  e.evalOptValue(gs, ctx, eff.Amount, 1),
		}}

	case ir.EffectLookAtTop:
		return []Operation{{
			Kind:   OpLookAtTop,
			Player: ctx.resolveWho(eff.Who),
			Count:  eff.Count,
			Keep:   eff.Keep,
		}}

	case ir.EffectCreateToken:
		if eff.Token == nil {
			gs.Logf("create token without a token spec plans nothing")
			return nil
		}
		count := eff.Count
		if count <= 0 {
			count = 1
		}
		return []Operation{{
			Kind:       OpCreateToken,
			Controller: ctx.controller,
			Player:     ctx.controller,
			Token:      eff.Token,
			Count:      count,
		}}

	case ir.EffectSequence:
		var ops []Operation
		for _, step := range eff.Steps {
			ops = append(ops, e.planEffect(gs, ctx, step, chosen)...)
		}
		return ops

	case ir.EffectConditional:
		if eff.If != nil && e.EvalPredicate(gs, ctx, *eff.If) {
			if eff.Then != nil {
				return e.planEffect(gs, ctx, *eff.Then, chosen)
			}
			return nil
		}
		if eff.Else != nil {
			return e.planEffect(gs, ctx, *eff.Else, chosen)
		}
		return nil

	case ir.EffectCase:
		branches := eff.Cases
		if max := e.rules.Caps.MaxCaseBranches; len(branches) > max {
			gs.Logf("case effect truncated to %d branches", max)
			branches = branches[:max]
		}
		for _, branch := range branches {
			if e.EvalPredicate(gs, ctx, branch.When) {
				return e.planEffect(gs, ctx, branch.Do, chosen)
			}
		}
		if eff.Else != nil {
			return e.planEffect(gs, ctx, *eff.Else, chosen)
		}
		return nil

	case ir.EffectForEach:
		if eff.Do == nil {
			return nil
		}
		targets, fizzle := e.resolveTargets(gs, ctx, eff.Select, chosen)
		if fizzle != nil {
			return fizzle
		}
		var ops []Operation
		for _, target := range targets {
			bound := ctx
			bound.targetID = target
			ops = append(ops, e.planEffect(gs, bound, *eff.Do, []string{target})...)
		}
		return ops

	case ir.EffectRepeat:
		if eff.Do == nil {
			return nil
		}
		times := eff.Times
		if max := e.rules.Caps.MaxRepeat; times > max {
			gs.Logf("repeat effect capped at %d iterations", max)
			times = max
		}
		var ops []Operation
		for i := 0; i < times; i++ {
			ops = append(ops, e.planEffect(gs, ctx, *eff.Do, chosen)...)
		}
		return ops

	default:
		e.unhandledVariant(gs, "effect", string(eff.Kind))
		return nil
	}
}

// planPerTarget resolves the effect's targets and builds one operation per
// legal target, with that target bound into the evaluation context.
func (e *Engine) planPerTarget(gs *GameState, ctx evalCtx, eff ir.Effect, chosen []string, build func(target string, tctx evalCtx) Operation) []Operation {
	targets, fizzle := e.resolveTargets(gs, ctx, eff.Select, chosen)
	if fizzle != nil {
		return fizzle
	}
	ops := make([]Operation, 0, len(targets))
	for _, target := range targets {
		tctx := ctx
		tctx.targetID = target
		ops = append(ops, build(target, tctx))
	}
	return ops
}

// resolveTargets produces the legal target list for a selector. Explicitly
// chosen targets are used when supplied, but re-validated for legality
// either way: legality may have changed between declaration and
// resolution. When zero targets remain legal and the fizzle policy is
// active, a single log-only fizzle operation is returned instead.
func (e *Engine) resolveTargets(gs *GameState, ctx evalCtx, sel *ir.Selector, chosen []string) (targets []string, fizzle []Operation) {
	effective := ir.Selector{}
	if sel != nil {
		effective = *sel
	}
	if !effective.EffectiveZone().Supported() {
		gs.Logf("targeting the %s zone is unsupported, no targets", effective.EffectiveZone())
		return nil, e.fizzleOps(ctx)
	}

	if len(chosen) > 0 {
		for _, id := range chosen {
			rc, ok := gs.Card(id)
			if !ok {
				continue
			}
			if e.targetLegal(gs, ctx, effective, rc) {
				targets = append(targets, id)
			}
		}
	} else {
		targets = e.selectTargets(gs, ctx, effective)
	}

	if len(targets) == 0 {
		return nil, e.fizzleOps(ctx)
	}
	return targets, nil
}

// selectTargets runs selection: owner filter, zone filter, predicate
// filter, capped by the selector max, and the same legality check explicit
// targets get.
func (e *Engine) selectTargets(gs *GameState, ctx evalCtx, sel ir.Selector) []string {
	max := sel.MaxTargets(e.rules.Caps)
	var out []string
	for _, owner := range e.ownerIndexes(ctx.controller, sel.EffectiveOwner()) {
		for _, id := range gs.Players[owner].ZoneIDs(sel.EffectiveZone()) {
			if len(out) >= max {
				return out
			}
			if e.targetLegal(gs, ctx, sel, gs.Cards[id]) {
				out = append(out, id)
			}
		}
	}
	return out
}

// targetLegal is the mandatory legality re-check: owner, zone and
// predicate must match, and Hexproof blocks targeting by an opponent.
func (e *Engine) targetLegal(gs *GameState, ctx evalCtx, sel ir.Selector, rc *RuntimeCard) bool {
	if rc.Zone != sel.EffectiveZone() {
		return false
	}
	switch sel.EffectiveOwner() {
	case ir.OwnerController:
		if rc.Owner != ctx.controller {
			return false
		}
	case ir.OwnerOpponent:
		if rc.Owner != OpponentOf(ctx.controller) {
			return false
		}
	}
	if rc.HasKeyword(ir.KeywordHexproof) && rc.Owner != ctx.controller {
		return false
	}
	tctx := ctx
	tctx.targetID = rc.ID
	return e.evalOptPredicate(gs, tctx, sel.Where)
}

// fizzleOps yields the log-only fizzle plan, or an empty plan when the
// ruleset disables the fizzle policy.
func (e *Engine) fizzleOps(ctx evalCtx) []Operation {
	if !e.rules.FizzleOnNoTarget {
		return nil
	}
	return []Operation{{Kind: OpFizzle, SourceID: ctx.selfID, Note: "no legal targets"}}
}

// ownerIndexes expands an owner filter into player indexes, controller
// side first.
func (e *Engine) ownerIndexes(controller int, owner ir.OwnerFilter) []int {
	switch owner {
	case ir.OwnerController:
		return []int{controller}
	case ir.OwnerOpponent:
		return []int{OpponentOf(controller)}
	default:
		return []int{controller, OpponentOf(controller)}
	}
}

func durationOrPermanent(d ir.Duration) ir.Duration {
	if d == ir.DurationEndOfTurn {
		return ir.DurationEndOfTurn
	}
	return ir.DurationPermanent
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if max > min && n > max {
		return max
	}
	return n
}
