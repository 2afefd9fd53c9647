// Package ruleset holds the declarative rule table the engine interprets
// and the consistency checker that validates it at match initialization.
package ruleset

import "github.com/duelforge/duelforge/internal/game/ir"

// Phase is one step of the turn cycle.
type Phase string

const (
	PhaseUpkeep Phase = "UPKEEP"
	PhaseMain   Phase = "MAIN"
	PhaseCombat Phase = "COMBAT"
	PhaseEnd    Phase = "END"
)

// AttackTargetPolicy constrains what an attacker may be pointed at.
type AttackTargetPolicy string

const (
	// AttackAny allows attacking the defending player or any of their units.
	AttackAny AttackTargetPolicy = "ANY"
	// AttackUnitsFirst forbids attacking the player while they control units.
	AttackUnitsFirst AttackTargetPolicy = "UNITS_FIRST"
)

// EmptyDrawOutcome selects what happens when a player must draw from an
// empty library.
type EmptyDrawOutcome string

const (
	EmptyDrawLose EmptyDrawOutcome = "LOSE"
	EmptyDrawNoOp EmptyDrawOutcome = "NOOP"
)

// Rules is the constant rule table for a match. It is data, not behavior:
// the engine interprets it and the rulebook generator renders it.
type Rules struct {
	PhaseOrder []Phase `yaml:"phaseOrder"`

	StartingLife     int `yaml:"startingLife"`
	StartingHandSize int `yaml:"startingHandSize"`
	MaxHandSize      int `yaml:"maxHandSize"`

	// Resource ("AP") policy.
	ResourceMax       int  `yaml:"resourceMax"`
	ResourcePerTurn   int  `yaml:"resourcePerTurn"`
	ResourceCarryOver bool `yaml:"resourceCarryOver"`

	DrawOnTurnStart  bool             `yaml:"drawOnTurnStart"`
	EmptyDraw        EmptyDrawOutcome `yaml:"emptyDraw"`
	DamagePersists   bool             `yaml:"damagePersists"` // false: damage clears at end of turn
	LethalThreshold  int              `yaml:"lethalThreshold"`
	TokenLeaveZone   ir.Zone          `yaml:"tokenLeaveZone"`
	FizzleOnNoTarget bool             `yaml:"fizzleOnNoTarget"`

	AttackPolicy AttackTargetPolicy `yaml:"attackPolicy"`

	// DeckNameLimit caps copies of one canonical name per deck (0 = none).
	DeckNameLimit int `yaml:"deckNameLimit"`
	MinDeckSize   int `yaml:"minDeckSize"`

	// UsesStack is reserved for a future priority/stack resolution mode.
	// Nothing consults it today.
	UsesStack bool `yaml:"usesStack"`

	Caps ir.Caps `yaml:"caps"`
}

// Default returns the stock rule table.
func Default() *Rules {
	return &Rules{
		PhaseOrder:        []Phase{PhaseUpkeep, PhaseMain, PhaseCombat, PhaseEnd},
		StartingLife:      20,
		StartingHandSize:  5,
		MaxHandSize:       8,
		ResourceMax:       10,
		ResourcePerTurn:   10,
		ResourceCarryOver: false,
		DrawOnTurnStart:   true,
		EmptyDraw:         EmptyDrawLose,
		DamagePersists:    false,
		LethalThreshold:   0,
		TokenLeaveZone:    ir.ZoneExile,
		FizzleOnNoTarget:  true,
		AttackPolicy:      AttackAny,
		DeckNameLimit:     3,
		MinDeckSize:       20,
		UsesStack:         false,
		Caps:              ir.DefaultCaps(),
	}
}

// FirstPhase returns the opening phase of each turn.
func (r *Rules) FirstPhase() Phase {
	if len(r.PhaseOrder) == 0 {
		return PhaseUpkeep
	}
	return r.PhaseOrder[0]
}

// LastPhase returns the phase only EndTurn exits.
func (r *Rules) LastPhase() Phase {
	if len(r.PhaseOrder) == 0 {
		return PhaseEnd
	}
	return r.PhaseOrder[len(r.PhaseOrder)-1]
}

// NextPhase returns the phase one step after p, and false when p is the
// last phase (forward advance is a no-op there).
func (r *Rules) NextPhase(p Phase) (Phase, bool) {
	for i, have := range r.PhaseOrder {
		if have == p && i+1 < len(r.PhaseOrder) {
			return r.PhaseOrder[i+1], true
		}
	}
	return p, false
}
