package game

import (
	"strings"

	"github.com/duelforge/duelforge/internal/game/ir"
)

// evalCtx carries the perspective a metric or predicate is computed from:
// the controlling player, the ability's host card (self) and the card
// currently under evaluation (target). Either id may be empty.
type evalCtx struct {
	controller int
	selfID     string
	targetID   string
}

func (c evalCtx) subjectID(s ir.Subject) string {
	if s == ir.SubjectSelf {
		return c.selfID
	}
	return c.targetID
}

// resolveWho maps a relative player reference to a player index.
func (c evalCtx) resolveWho(w ir.Who) int {
	if w == ir.WhoOpponent {
		return OpponentOf(c.controller)
	}
	return c.controller
}

// EvalMetric computes a numeric metric against current state. Read-only.
func (e *Engine) EvalMetric(gs *GameState, ctx evalCtx, m ir.Metric) int {
	switch m.Kind {
	case ir.MetricConst:
		return m.N

	case ir.MetricLife:
		return gs.Players[ctx.resolveWho(m.Who)].Life

	case ir.MetricBoardCount:
		zone := m.Zone
		if zone == "" {
			zone = ir.ZoneBattlefield
		}
		if !zone.Supported() {
			gs.Logf("board count against unsupported zone %s", zone)
			return 0
		}
		count := 0
		for _, id := range gs.Players[ctx.resolveWho(m.Who)].ZoneIDs(zone) {
			rc := gs.Cards[id]
			if m.Tag != "" && !rc.Template.HasTag(m.Tag) {
				continue
			}
			count++
		}
		return count

	case ir.MetricCardStat:
		rc, ok := gs.Card(ctx.subjectID(m.Of))
		if !ok {
			return 0
		}
		atk, _, hpMax := e.EffectiveStats(gs, rc)
		if m.Stat == ir.StatATK {
			return atk
		}
		return hpMax

	default:
		e.unhandledVariant(gs, "metric", string(m.Kind))
		return 0
	}
}

// EvalValue computes an effect-side value. Clamp bounds its metric into
// [Min, Max].
func (e *Engine) EvalValue(gs *GameState, ctx evalCtx, v ir.Value) int {
	switch v.Kind {
	case ir.ValueConst:
		return v.N
	case ir.ValueClamp:
		if v.Of == nil {
			return v.Min
		}
		n := e.EvalMetric(gs, ctx, *v.Of)
		if n < v.Min {
			n = v.Min
		}
		if n > v.Max {
			n = v.Max
		}
		return n
	default:
		e.unhandledVariant(gs, "value", string(v.Kind))
		return 0
	}
}

// evalOptValue evaluates a possibly-absent value, defaulting to fallback.
func (e *Engine) evalOptValue(gs *GameState, ctx evalCtx, v *ir.Value, fallback int) int {
	if v == nil {
		return fallback
	}
	return e.EvalValue(gs, ctx, *v)
}

// EvalPredicate folds a predicate tree to a boolean. Read-only.
func (e *Engine) EvalPredicate(gs *GameState, ctx evalCtx, p ir.Predicate) bool {
	switch p.Kind {
	case ir.PredTrue:
		return true

	case ir.PredHasTag:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		return ok && rc.Template.HasTag(p.Name)

	case ir.PredHasAttribute:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		if !ok {
			return false
		}
		have, present := rc.Template.Attributes[p.Name]
		if !present {
			return false
		}
		return p.Value == "" || have == p.Value

	case ir.PredHasName:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		if !ok {
			return false
		}
		return matchName(rc.Template.Canonical(), p.Name, p.Match)

	case ir.PredIsToken:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		return ok && rc.IsToken

	case ir.PredWasSummonedThisTurn:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		return ok && rc.SummonedThisTurn(gs.Turn.Number)

	case ir.PredHasCounter:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		return ok && rc.Counters.Has(p.Name)

	case ir.PredControllerIs:
		rc, ok := gs.Card(ctx.subjectID(p.SubjectOrTarget()))
		return ok && rc.Owner == ctx.resolveWho(p.Who)

	case ir.PredEventOccurred:
		window := p.Since
		if window == "" {
			window = ir.LimitPerTurn
		}
		return gs.EventCount(p.Event, ctx.controller, window) > 0

	case ir.PredCmp:
		if p.Left == nil || p.Right == nil {
			return false
		}
		left := e.EvalMetric(gs, ctx, *p.Left)
		right := e.EvalMetric(gs, ctx, *p.Right)
		switch p.Op {
		case ir.CmpEQ:
			return left == right
		case ir.CmpNE:
			return left != right
		case ir.CmpLT:
			return left < right
		case ir.CmpLE:
			return left <= right
		case ir.CmpGT:
			return left > right
		case ir.CmpGE:
			return left >= right
		default:
			e.unhandledVariant(gs, "cmp op", string(p.Op))
			return false
		}

	case ir.PredAnd:
		for _, sub := range p.All {
			if !e.EvalPredicate(gs, ctx, sub) {
				return false
			}
		}
		return true

	case ir.PredOr:
		for _, sub := range p.Any {
			if e.EvalPredicate(gs, ctx, sub) {
				return true
			}
		}
		return false

	case ir.PredNot:
		return p.Not != nil && !e.EvalPredicate(gs, ctx, *p.Not)

	default:
		e.unhandledVariant(gs, "predicate", string(p.Kind))
		return false
	}
}

// evalOptPredicate evaluates a possibly-absent predicate as true.
func (e *Engine) evalOptPredicate(gs *GameState, ctx evalCtx, p *ir.Predicate) bool {
	if p == nil {
		return true
	}
	return e.EvalPredicate(gs, ctx, *p)
}

func matchName(have, want string, match ir.NameMatch) bool {
	have = strings.ToLower(have)
	want = strings.ToLower(want)
	switch match {
	case ir.NamePrefix:
		return strings.HasPrefix(have, want)
	case ir.NameContains:
		return strings.Contains(have, want)
	default:
		return have == want
	}
}
