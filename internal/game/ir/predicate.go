package ir

// PredicateKind discriminates Predicate variants. Closed set.
type PredicateKind string

const (
	PredTrue                 PredicateKind = "TRUE"
	PredHasTag               PredicateKind = "HAS_TAG"
	PredHasAttribute         PredicateKind = "HAS_ATTRIBUTE"
	PredHasName              PredicateKind = "HAS_NAME"
	PredIsToken              PredicateKind = "IS_TOKEN"
	PredWasSummonedThisTurn  PredicateKind = "WAS_SUMMONED_THIS_TURN"
	PredHasCounter           PredicateKind = "HAS_COUNTER"
	PredControllerIs         PredicateKind = "CONTROLLER_IS"
	PredEventOccurred        PredicateKind = "EVENT_OCCURRED"
	PredCmp                  PredicateKind = "CMP"
	PredAnd                  PredicateKind = "AND"
	PredOr                   PredicateKind = "OR"
	PredNot                  PredicateKind = "NOT"
)

// NameMatch selects how HasName compares card names. The comparison uses
// the canonical name when the template declares one.
type NameMatch string

const (
	NameExact    NameMatch = "EXACT"
	NamePrefix   NameMatch = "PREFIX"
	NameContains NameMatch = "CONTAINS"
)

// CmpOp is a comparison operator for the Cmp predicate.
type CmpOp string

const (
	CmpEQ CmpOp = "EQ"
	CmpNE CmpOp = "NE"
	CmpLT CmpOp = "LT"
	CmpLE CmpOp = "LE"
	CmpGT CmpOp = "GT"
	CmpGE CmpOp = "GE"
)

// Predicate is a boolean expression tree over card and player state.
// Leaf predicates carry In to select which bound id they inspect.
type Predicate struct {
	Kind PredicateKind `yaml:"kind"`

	// In selects Target (default) or Self for leaf predicates.
	In Subject `yaml:"in,omitempty"`

	// PredHasTag, PredHasAttribute, PredHasCounter, PredHasName
	Name  string `yaml:"name,omitempty"`
	Value string `yaml:"value,omitempty"` // HasAttribute: required value, empty = any

	// PredHasName
	Match NameMatch `yaml:"match,omitempty"`

	// PredControllerIs
	Who Who `yaml:"who,omitempty"`

	// PredEventOccurred
	Event EventKind   `yaml:"event,omitempty"`
	Since LimitWindow `yaml:"since,omitempty"`

	// PredCmp
	Left  *Metric `yaml:"left,omitempty"`
	Op    CmpOp   `yaml:"op,omitempty"`
	Right *Metric `yaml:"right,omitempty"`

	// PredAnd, PredOr
	All []Predicate `yaml:"all,omitempty"`
	Any []Predicate `yaml:"any,omitempty"`

	// PredNot
	Not *Predicate `yaml:"not,omitempty"`
}

// True is the always-true predicate.
func True() Predicate { return Predicate{Kind: PredTrue} }

// subject returns the leaf subject, defaulting to Target.
func (p Predicate) SubjectOrTarget() Subject {
	if p.In == SubjectSelf {
		return SubjectSelf
	}
	return SubjectTarget
}
