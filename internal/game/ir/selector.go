package ir

// OwnerFilter restricts selection to one side of the board.
type OwnerFilter string

const (
	OwnerAny        OwnerFilter = "ANY"
	OwnerController OwnerFilter = "CONTROLLER"
	OwnerOpponent   OwnerFilter = "OPPONENT"
)

// Selector is a declarative target query: owner filter, zone filter
// (Battlefield when empty), predicate filter, capped by Max.
type Selector struct {
	Owner OwnerFilter `yaml:"owner,omitempty"`
	Zone  Zone        `yaml:"zone,omitempty"`
	Where *Predicate  `yaml:"where,omitempty"`
	Max   int         `yaml:"max,omitempty"`
}

// EffectiveZone returns the zone the selector reads, defaulting to
// Battlefield.
func (s Selector) EffectiveZone() Zone {
	if s.Zone == "" {
		return ZoneBattlefield
	}
	return s.Zone
}

// EffectiveOwner returns the owner filter, defaulting to Any.
func (s Selector) EffectiveOwner() OwnerFilter {
	if s.Owner == "" {
		return OwnerAny
	}
	return s.Owner
}

// MaxTargets returns the selection cap, bounded by the shared ForEach cap
// when unset or out of range.
func (s Selector) MaxTargets(caps Caps) int {
	if s.Max <= 0 || s.Max > caps.MaxForEachTargets {
		return caps.MaxForEachTargets
	}
	return s.Max
}
