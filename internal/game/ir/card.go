package ir

import "strings"

// Cost is a card's cast cost: a generic amount plus optional color tags
// that must be present in the controller's color identity.
type Cost struct {
	Generic int      `yaml:"generic"`
	Colors  []string `yaml:"colors,omitempty"`
}

// TriggerDef fires an effect when a named event occurs, subject to an
// optional condition and a usage limit.
type TriggerDef struct {
	When      EventKind  `yaml:"when"`
	Condition *Predicate `yaml:"condition,omitempty"`
	Effect    Effect     `yaml:"effect"`
	Limit     UsageLimit `yaml:"limit,omitempty"`
	// Name filters OnNameMatched triggers; the trigger fires only when the
	// event subject's canonical name matches.
	Name string `yaml:"name,omitempty"`
}

// ReplacementDef substitutes Instead for a would-be event affecting a card
// matched by Subject. First matching active definition wins.
type ReplacementDef struct {
	Replaces ReplacementKind `yaml:"replaces"`
	Subject  *Selector       `yaml:"subject,omitempty"`
	Instead  Effect          `yaml:"instead"`
	Limit    UsageLimit      `yaml:"limit,omitempty"`
}

// ContinuousKind discriminates continuous-effect definitions.
type ContinuousKind string

const (
	ContinuousStaticBuff   ContinuousKind = "STATIC_BUFF"
	ContinuousCostModifier ContinuousKind = "COST_MODIFIER"
)

// ContinuousDef is an always-active modifier contributed by a battlefield
// card while it stays there.
type ContinuousDef struct {
	Kind ContinuousKind `yaml:"kind"`

	// StaticBuff: additive ATK/HP for every card matching Target.
	Target *Selector `yaml:"target,omitempty"`
	Atk    int       `yaml:"atk,omitempty"`
	HP     int       `yaml:"hp,omitempty"`

	// CostModifier: additive generic-cost delta for cards matching Where,
	// never reducing the cost below Floor when set.
	Where *Predicate `yaml:"where,omitempty"`
	Delta int        `yaml:"delta,omitempty"`
	Floor *int       `yaml:"floor,omitempty"`
}

// TextIR bundles a card's interpretable ability definitions.
type TextIR struct {
	Cast         *Effect          `yaml:"cast,omitempty"`
	Triggers     []TriggerDef     `yaml:"triggers,omitempty"`
	Continuous   []ContinuousDef  `yaml:"continuous,omitempty"`
	Replacements []ReplacementDef `yaml:"replacements,omitempty"`
}

// Budgets is declarative authoring metadata. Not enforced at runtime.
type Budgets struct {
	Power       int `yaml:"power,omitempty"`
	Complexity  int `yaml:"complexity,omitempty"`
	Interaction int `yaml:"interaction,omitempty"`
}

// Card is an immutable template shared by all of its runtime instances.
type Card struct {
	Name          string            `yaml:"name"`
	CanonicalName string            `yaml:"canonicalName,omitempty"`
	Cost          Cost              `yaml:"cost"`
	Type          CardType          `yaml:"type"`
	Stats         *Stats            `yaml:"stats,omitempty"` // required iff Type == UNIT
	Keywords      KeywordSet        `yaml:"keywords,omitempty"`
	Tags          []string          `yaml:"tags,omitempty"`
	Attributes    map[string]string `yaml:"attributes,omitempty"`
	TextIR        TextIR            `yaml:"textIR,omitempty"`
	Budgets       Budgets           `yaml:"budgets,omitempty"`
}

// Canonical returns the name used for name matching and deck-limit
// bucketing: the canonical name when declared, otherwise the display name.
func (c *Card) Canonical() string {
	if c.CanonicalName != "" {
		return c.CanonicalName
	}
	return c.Name
}

// HasTag reports whether the template carries the tag (case-insensitive).
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
