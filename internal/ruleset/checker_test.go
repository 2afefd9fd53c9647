package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codes(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

func TestDefaultTableIsClean(t *testing.T) {
	assert.Empty(t, Check(Default()))
}

func TestCheckFlagsBrokenPhaseOrder(t *testing.T) {
	r := Default()
	r.PhaseOrder = []Phase{PhaseMain, "TWILIGHT", PhaseMain}
	got := codes(Check(r))

	assert.Contains(t, got, "unknown-phase")
	assert.Contains(t, got, "duplicate-phase")
	assert.Contains(t, got, "end-not-last")
}

func TestCheckFlagsEmptyPhaseOrder(t *testing.T) {
	r := Default()
	r.PhaseOrder = nil
	assert.Contains(t, codes(Check(r)), "empty-phase-order")
}

func TestCheckFlagsIncoherentNumbers(t *testing.T) {
	r := Default()
	r.StartingLife = 0
	r.StartingHandSize = 12
	r.ResourcePerTurn = 99
	got := codes(Check(r))

	assert.Contains(t, got, "nonpositive-life")
	assert.Contains(t, got, "hand-over-max")
	assert.Contains(t, got, "incoherent-resource-gain")
}

func TestCheckFlagsBadEnumsAndCaps(t *testing.T) {
	r := Default()
	r.EmptyDraw = "SHRUG"
	r.AttackPolicy = "WHATEVER"
	r.TokenLeaveZone = "STACK"
	r.Caps.MaxRepeat = 0
	r.Caps.MaxTriggerCredits = -1
	got := codes(Check(r))

	assert.Contains(t, got, "unknown-empty-draw")
	assert.Contains(t, got, "unknown-attack-policy")
	assert.Contains(t, got, "bad-token-leave-zone")
	assert.Contains(t, got, "nonpositive-caps")
	assert.Contains(t, got, "nonpositive-credits")
}

func TestNextPhaseWalksTheOrder(t *testing.T) {
	r := Default()

	next, ok := r.NextPhase(PhaseUpkeep)
	assert.True(t, ok)
	assert.Equal(t, PhaseMain, next)

	_, ok = r.NextPhase(PhaseEnd)
	assert.False(t, ok, "the last phase has no successor")

	assert.Equal(t, PhaseUpkeep, r.FirstPhase())
	assert.Equal(t, PhaseEnd, r.LastPhase())
}
