package ruleset

import "fmt"

// Issue is one coded finding of the consistency checker.
type Issue struct {
	Code    string
	Message string
}

func issuef(code, format string, args ...interface{}) Issue {
	return Issue{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Check validates the rule table itself. It is invoked once at match
// initialization; callers log the findings but never abort on them.
func Check(r *Rules) []Issue {
	var issues []Issue

	if len(r.PhaseOrder) == 0 {
		issues = append(issues, issuef("empty-phase-order", "phase order must name at least one phase"))
	} else {
		seen := make(map[Phase]bool, len(r.PhaseOrder))
		for _, p := range r.PhaseOrder {
			switch p {
			case PhaseUpkeep, PhaseMain, PhaseCombat, PhaseEnd:
			default:
				issues = append(issues, issuef("unknown-phase", "unknown phase %q in phase order", p))
			}
			if seen[p] {
				issues = append(issues, issuef("duplicate-phase", "phase %q appears twice in phase order", p))
			}
			seen[p] = true
		}
		if r.PhaseOrder[len(r.PhaseOrder)-1] != PhaseEnd {
			issues = append(issues, issuef("end-not-last", "phase order must end with %s so EndTurn is the only exit", PhaseEnd))
		}
	}

	if r.StartingLife <= 0 {
		issues = append(issues, issuef("nonpositive-life", "starting life %d must be positive", r.StartingLife))
	}
	if r.StartingHandSize < 0 {
		issues = append(issues, issuef("negative-hand", "starting hand size %d must not be negative", r.StartingHandSize))
	}
	if r.MaxHandSize > 0 && r.StartingHandSize > r.MaxHandSize {
		issues = append(issues, issuef("hand-over-max", "starting hand %d exceeds max hand size %d", r.StartingHandSize, r.MaxHandSize))
	}

	if r.ResourceMax <= 0 {
		issues = append(issues, issuef("nonpositive-resource-max", "resource max %d must be positive", r.ResourceMax))
	}
	if r.ResourcePerTurn < 0 || r.ResourcePerTurn > r.ResourceMax {
		issues = append(issues, issuef("incoherent-resource-gain", "per-turn resource %d must lie in [0, %d]", r.ResourcePerTurn, r.ResourceMax))
	}

	switch r.EmptyDraw {
	case EmptyDrawLose, EmptyDrawNoOp:
	default:
		issues = append(issues, issuef("unknown-empty-draw", "unknown empty-draw outcome %q", r.EmptyDraw))
	}

	switch r.AttackPolicy {
	case AttackAny, AttackUnitsFirst:
	default:
		issues = append(issues, issuef("unknown-attack-policy", "unknown attack target policy %q", r.AttackPolicy))
	}

	if !r.TokenLeaveZone.Supported() {
		issues = append(issues, issuef("bad-token-leave-zone", "token leave zone %q is not a supported zone", r.TokenLeaveZone))
	}

	caps := r.Caps
	if caps.MaxRepeat <= 0 || caps.MaxForEachTargets <= 0 || caps.MaxCaseBranches <= 0 {
		issues = append(issues, issuef("nonpositive-caps", "interpretation caps must all be positive"))
	}
	if caps.MaxTriggerCredits <= 0 || caps.MaxSpawnCredits <= 0 {
		issues = append(issues, issuef("nonpositive-credits", "analyzer credit ceilings must be positive"))
	}

	if r.MinDeckSize < 0 {
		issues = append(issues, issuef("negative-deck-size", "minimum deck size %d must not be negative", r.MinDeckSize))
	}

	return issues
}
