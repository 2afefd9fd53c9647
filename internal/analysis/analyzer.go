package analysis

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/duelforge/duelforge/internal/game/ir"
)

// Analyzer runs the pool-level static checks under a cap table. The caps
// must match the ones the runtime interprets under, or the analyzer's
// loop verdicts are meaningless.
type Analyzer struct {
	caps   ir.Caps
	logger *zap.Logger
}

// New creates an analyzer for the given cap table.
func New(caps ir.Caps, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{caps: caps, logger: logger}
}

// Analyze scans a whole pool: per-card structural checks first, then the
// cross-card event graph for trigger loops.
func (a *Analyzer) Analyze(pool []*ir.Card) *Report {
	report := &Report{}
	for _, card := range pool {
		a.checkCard(report, card)
	}
	a.checkEventGraph(report, pool)
	a.logger.Info("pool analyzed",
		zap.Int("cards", len(pool)),
		zap.Int("errors", len(report.Errors())),
		zap.Int("warnings", len(report.Warnings())),
	)
	return report
}

// checkCard runs every structural check on one card template.
func (a *Analyzer) checkCard(r *Report, card *ir.Card) {
	name := card.Canonical()

	if card.Type == ir.TypeUnit && card.Stats == nil {
		r.errorf(name, "unit-without-stats", "unit templates must declare stats")
	}
	if card.Type != ir.TypeUnit && card.Stats != nil {
		r.errorf(name, "stats-on-non-unit", "%s templates must not declare stats", card.Type)
	}
	if !card.Type.Permanent() && card.TextIR.Cast == nil &&
		len(card.TextIR.Triggers) == 0 && len(card.TextIR.Continuous) == 0 &&
		len(card.TextIR.Replacements) == 0 {
		r.warnf(name, "blank-spell", "spell has no cast effect and no abilities")
	}

	if card.TextIR.Cast != nil {
		a.checkEffectTree(r, name, card.TextIR.Cast)
	}
	for i := range card.TextIR.Triggers {
		trig := &card.TextIR.Triggers[i]
		if !trig.When.Known() {
			r.errorf(name, "unknown-event", "trigger listens for unknown event %q", trig.When)
		}
		if trig.When == ir.EventNameMatched && trig.Name == "" {
			r.errorf(name, "name-trigger-without-name", "a name-match trigger must declare the name it listens for")
		}
		a.checkEffectTree(r, name, &trig.Effect)
	}
	for i := range card.TextIR.Replacements {
		a.checkReplacement(r, name, &card.TextIR.Replacements[i])
	}
	for i := range card.TextIR.Continuous {
		cont := &card.TextIR.Continuous[i]
		switch cont.Kind {
		case ir.ContinuousStaticBuff, ir.ContinuousCostModifier:
		default:
			r.errorf(name, "unknown-continuous-kind", "unknown continuous kind %q", cont.Kind)
		}
	}
}

// checkEffectTree walks one effect tree and flags every structural
// defect the interpreter would otherwise discover mid-game.
func (a *Analyzer) checkEffectTree(r *Report, card string, root *ir.Effect) {
	root.Walk(func(eff *ir.Effect) {
		switch eff.Kind {
		case ir.EffectRepeat:
			if eff.Times > a.caps.MaxRepeat {
				r.errorf(card, "repeat-over-cap", "repeat of %d exceeds the cap of %d", eff.Times, a.caps.MaxRepeat)
			}
			if eff.Times <= 0 {
				r.warnf(card, "repeat-zero", "repeat with times <= 0 never runs")
			}
		case ir.EffectCase:
			if len(eff.Cases) > a.caps.MaxCaseBranches {
				r.errorf(card, "case-over-cap", "%d case branches exceed the cap of %d", len(eff.Cases), a.caps.MaxCaseBranches)
			}
			if len(eff.Cases) == 0 {
				r.warnf(card, "case-empty", "case effect with no branches")
			}
		case ir.EffectChangeController:
			if eff.Duration == "" {
				r.warnf(card, "control-change-without-duration", "control change defaults to permanent; declare the duration")
			}
		case ir.EffectCopyStats:
			if eff.Clamp == nil {
				r.warnf(card, "copy-without-clamp", "stat copy without a clamp can exceed the destination's declared range")
			}
		case ir.EffectTransform:
			if eff.Override == nil {
				r.errorf(card, "transform-without-override", "transform must declare a fixed stat block")
			}
		case ir.EffectLookAtTop:
			if eff.Keep > eff.Count {
				r.errorf(card, "keep-over-count", "cannot keep %d of %d looked-at cards", eff.Keep, eff.Count)
			}
		case ir.EffectMove:
			if !eff.To.Supported() {
				r.errorf(card, "move-to-unsupported-zone", "move destination %q is not a supported zone", eff.To)
			}
		case ir.EffectCreateToken:
			if eff.Token == nil {
				r.errorf(card, "token-without-spec", "create token must declare a token spec")
			}
		case ir.EffectForEach:
			if eff.Select != nil && eff.Select.Max > a.caps.MaxForEachTargets {
				r.errorf(card, "foreach-over-cap", "for-each over %d targets exceeds the cap of %d", eff.Select.Max, a.caps.MaxForEachTargets)
			}
		case ir.EffectConditional, ir.EffectSequence,
			ir.EffectNoOp, ir.EffectDealDamage, ir.EffectDamagePlayer,
			ir.EffectHealPlayer, ir.EffectHealUnit, ir.EffectDraw,
			ir.EffectDestroy, ir.EffectBuffStats, ir.EffectAddCounter,
			ir.EffectRemoveCounter, ir.EffectTap, ir.EffectUntap,
			ir.EffectPreventDamage, ir.EffectGainResource:
		default:
			r.errorf(card, "unknown-effect-kind", "unknown effect kind %q", eff.Kind)
		}
		if eff.Select != nil && !eff.Select.EffectiveZone().Supported() {
			r.warnf(card, "select-unsupported-zone", "selector against zone %q never matches", eff.Select.EffectiveZone())
		}
	})

	if spawns := a.emissions(root, 1)[ir.EventTokenCreated]; spawns > a.caps.MaxSpawnCredits {
		r.errorf(card, "spawn-over-cap", "one resolution can create %d tokens, cap is %d", spawns, a.caps.MaxSpawnCredits)
	}
}

// checkReplacement flags substitutions that re-raise the event they
// replace, which would recurse at runtime.
func (a *Analyzer) checkReplacement(r *Report, card string, def *ir.ReplacementDef) {
	switch def.Replaces {
	case ir.ReplaceWouldDie:
		def.Instead.Walk(func(eff *ir.Effect) {
			if eff.Kind == ir.EffectDestroy {
				r.errorf(card, "would-die-destroys", "a death replacement must not itself destroy")
			}
			if eff.Kind == ir.EffectMove && eff.To == ir.ZoneGraveyard {
				r.errorf(card, "would-die-moves-to-graveyard", "a death replacement must not move its subject to the graveyard; exile and return instead")
			}
		})
	case ir.ReplaceWouldDraw:
		def.Instead.Walk(func(eff *ir.Effect) {
			if eff.Kind == ir.EffectDraw {
				r.errorf(card, "would-draw-draws", "a draw replacement must not itself draw")
			}
		})
	case ir.ReplaceWouldBeDamaged:
	default:
		r.errorf(card, "unknown-replacement-kind", "unknown replacement kind %q", def.Replaces)
	}
	a.checkEffectTree(r, card, &def.Instead)
}

// emissions computes a conservative upper bound on how many times each
// event kind one resolution of the tree can raise. Branches are summed,
// not maxed: the bound must hold whichever branch runs, and summing is
// the cheap sound choice.
func (a *Analyzer) emissions(eff *ir.Effect, mult int) map[ir.EventKind]int {
	out := make(map[ir.EventKind]int)
	a.addEmissions(out, eff, mult)
	return out
}

func (a *Analyzer) addEmissions(out map[ir.EventKind]int, eff *ir.Effect, mult int) {
	if eff == nil || mult <= 0 {
		return
	}
	switch eff.Kind {
	case ir.EffectDealDamage, ir.EffectDamagePlayer:
		out[ir.EventDamageDealt] += mult
		// Lethal damage can also kill.
		out[ir.EventUnitDied] += mult
	case ir.EffectDestroy:
		out[ir.EventUnitDied] += mult
	case ir.EffectDraw:
		out[ir.EventCardDrawn] += mult * a.boundedAmount(eff.Amount, 1)
	case ir.EffectCreateToken:
		count := eff.Count
		if count <= 0 {
			count = 1
		}
		out[ir.EventTokenCreated] += mult * count
		out[ir.EventEnteredBattlefield] += mult * count
	case ir.EffectMove:
		if eff.To == ir.ZoneBattlefield {
			out[ir.EventEnteredBattlefield] += mult
		}
	case ir.EffectBuffStats, ir.EffectTransform, ir.EffectCopyStats:
		// Negative stat layers can drop a unit to lethal.
		out[ir.EventUnitDied] += mult
	case ir.EffectSequence:
		for i := range eff.Steps {
			a.addEmissions(out, &eff.Steps[i], mult)
		}
	case ir.EffectConditional:
		a.addEmissions(out, eff.Then, mult)
		a.addEmissions(out, eff.Else, mult)
	case ir.EffectCase:
		for i := range eff.Cases {
			a.addEmissions(out, &eff.Cases[i].Do, mult)
		}
		a.addEmissions(out, eff.Else, mult)
	case ir.EffectForEach:
		fan := a.caps.MaxForEachTargets
		if eff.Select != nil {
			fan = eff.Select.MaxTargets(a.caps)
		}
		a.addEmissions(out, eff.Do, mult*fan)
	case ir.EffectRepeat:
		times := eff.Times
		if times > a.caps.MaxRepeat {
			times = a.caps.MaxRepeat
		}
		a.addEmissions(out, eff.Do, mult*times)
	}
}

// boundedAmount extracts a static bound from a value: constants and clamp
// maxima bound directly, anything metric-dependent falls back to the
// fan-out cap.
func (a *Analyzer) boundedAmount(v *ir.Value, fallback int) int {
	if v == nil {
		return fallback
	}
	switch v.Kind {
	case ir.ValueConst:
		return v.N
	case ir.ValueClamp:
		return v.Max
	default:
		return a.caps.MaxForEachTargets
	}
}

// edge is one arc of the event graph: firing triggers of `from` can raise
// `to` weight times per firing. limit is the trigger's usage count, zero
// when the trigger is unlimited.
type edge struct {
	from, to ir.EventKind
	card     string
	weight   int
	limit    int
}

func (e edge) unbounded() bool { return e.limit <= 0 }

// checkEventGraph builds the pool-wide event graph and reports every
// trigger cycle. A cycle whose edges are all unlimited can only be
// stopped by the runtime credit budget, which is an error. A cycle
// through usage-limited triggers terminates on its own, but its worst
// case must still fit the credit ceilings: the limit sum and the
// multiplicity product along the cycle are compared against the caps,
// and either over the ceiling is an error too.
func (a *Analyzer) checkEventGraph(r *Report, pool []*ir.Card) {
	adj := make(map[ir.EventKind][]edge)
	for _, card := range pool {
		for i := range card.TextIR.Triggers {
			trig := &card.TextIR.Triggers[i]
			emits := a.emissions(&trig.Effect, 1)
			for kind, count := range emits {
				if count <= 0 {
					continue
				}
				adj[trig.When] = append(adj[trig.When], edge{
					from:   trig.When,
					to:     kind,
					card:   card.Canonical(),
					weight: count,
					limit:  trig.Limit.Count,
				})
			}
		}
	}

	reported := make(map[string]bool)
	for _, start := range ir.EventKinds {
		for _, cycle := range findCycles(adj, start) {
			key := cycleKey(cycle)
			if reported[key] {
				continue
			}
			reported[key] = true
			a.reportCycle(r, cycle)
		}
	}
}

// reportCycle classifies one cycle against the credit ceilings.
func (a *Analyzer) reportCycle(r *Report, cycle []edge) {
	cards := cycleCards(cycle)

	allUnlimited := true
	limitSum := 0
	product := 1
	spawns := false
	for _, e := range cycle {
		product *= e.weight
		if e.to == ir.EventTokenCreated || e.from == ir.EventTokenCreated {
			spawns = true
		}
		if !e.unbounded() {
			allUnlimited = false
			limitSum += e.limit
		}
	}

	if allUnlimited {
		r.errorf(cards, "unbounded-trigger-cycle",
			"events %s loop through unlimited triggers", cyclePath(cycle))
		return
	}

	ceiling := a.caps.MaxTriggerCredits
	if spawns && a.caps.MaxSpawnCredits < ceiling {
		ceiling = a.caps.MaxSpawnCredits
	}
	if limitSum > ceiling || product > ceiling {
		r.errorf(cards, "unbounded-combo",
			"events %s loop with limit sum %d and multiplicity %d over the ceiling of %d",
			cyclePath(cycle), limitSum, product, ceiling)
		return
	}
	r.warnf(cards, "bounded-trigger-cycle",
		"events %s loop; usage limits terminate it under the ceiling", cyclePath(cycle))
}

// findCycles runs a DFS from start and collects every back-edge cycle it
// meets. Cycles reachable from more than one start node are deduplicated
// by the caller.
func findCycles(adj map[ir.EventKind][]edge, start ir.EventKind) [][]edge {
	var found [][]edge
	var path []edge
	onPath := map[ir.EventKind]bool{start: true}
	done := make(map[ir.EventKind]bool)

	var dfs func(node ir.EventKind)
	dfs = func(node ir.EventKind) {
		for _, e := range adj[node] {
			if onPath[e.to] {
				cycle := append(append([]edge(nil), path...), e)
				// Trim the prefix before the cycle entry point.
				for i, step := range cycle {
					if step.from == e.to {
						cycle = cycle[i:]
						break
					}
				}
				found = append(found, cycle)
				continue
			}
			if done[e.to] {
				continue
			}
			path = append(path, e)
			onPath[e.to] = true
			dfs(e.to)
			onPath[e.to] = false
			path = path[:len(path)-1]
		}
		done[node] = true
	}
	dfs(start)
	return found
}

// cycleKey builds an order-independent signature so the same cycle found
// from different start nodes is reported once.
func cycleKey(cycle []edge) string {
	parts := make([]string, len(cycle))
	for i, e := range cycle {
		parts[i] = string(e.from) + ">" + string(e.to) + "@" + e.card
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func cyclePath(cycle []edge) string {
	parts := make([]string, 0, len(cycle)+1)
	for _, e := range cycle {
		parts = append(parts, string(e.from))
	}
	parts = append(parts, string(cycle[len(cycle)-1].to))
	return strings.Join(parts, " -> ")
}

func cycleCards(cycle []edge) string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range cycle {
		if !seen[e.card] {
			seen[e.card] = true
			names = append(names, e.card)
		}
	}
	return strings.Join(names, ", ")
}
