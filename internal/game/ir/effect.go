package ir

// EffectKind discriminates Effect variants. Closed set: the planner and
// analyzer switch over it exhaustively and route unknown kinds to the
// unhandled-variant guard.
type EffectKind string

const (
	EffectNoOp             EffectKind = "NOOP"
	EffectDealDamage       EffectKind = "DEAL_DAMAGE"
	EffectDamagePlayer     EffectKind = "DAMAGE_PLAYER"
	EffectHealPlayer       EffectKind = "HEAL_PLAYER"
	EffectHealUnit         EffectKind = "HEAL_UNIT"
	EffectDraw             EffectKind = "DRAW"
	EffectLookAtTop        EffectKind = "LOOK_AT_TOP"
	EffectMove             EffectKind = "MOVE"
	EffectDestroy          EffectKind = "DESTROY"
	EffectCreateToken      EffectKind = "CREATE_TOKEN"
	EffectBuffStats        EffectKind = "BUFF_STATS"
	EffectTransform        EffectKind = "TRANSFORM"
	EffectCopyStats        EffectKind = "COPY_STATS"
	EffectAddCounter       EffectKind = "ADD_COUNTER"
	EffectRemoveCounter    EffectKind = "REMOVE_COUNTER"
	EffectTap              EffectKind = "TAP"
	EffectUntap            EffectKind = "UNTAP"
	EffectChangeController EffectKind = "CHANGE_CONTROLLER"
	EffectPreventDamage    EffectKind = "PREVENT_DAMAGE"
	EffectGainResource     EffectKind = "GAIN_RESOURCE"
	EffectSequence         EffectKind = "SEQUENCE"
	EffectConditional      EffectKind = "CONDITIONAL"
	EffectCase             EffectKind = "CASE"
	EffectForEach          EffectKind = "FOR_EACH"
	EffectRepeat           EffectKind = "REPEAT"
)

// Duration scopes a stat layer, control change or prevention pool.
type Duration string

const (
	DurationPermanent Duration = "PERMANENT"
	DurationEndOfTurn Duration = "END_OF_TURN"
)

// Stats is a fixed ATK/HP block.
type Stats struct {
	Atk int `yaml:"atk"`
	HP  int `yaml:"hp"`
}

// StatClamp bounds CopyStats results to the destination's declared ranges.
type StatClamp struct {
	MinAtk int `yaml:"minAtk"`
	MaxAtk int `yaml:"maxAtk"`
	MinHP  int `yaml:"minHp"`
	MaxHP  int `yaml:"maxHp"`
}

// CaseBranch pairs a guard with the effect taken when it holds.
type CaseBranch struct {
	When Predicate `yaml:"when"`
	Do   Effect    `yaml:"do"`
}

// TokenSpec describes the unit a CreateToken effect spawns.
type TokenSpec struct {
	Name     string     `yaml:"name"`
	Stats    Stats      `yaml:"stats"`
	Keywords KeywordSet `yaml:"keywords,omitempty"`
	Tags     []string   `yaml:"tags,omitempty"`
}

// Effect is the recursive tagged-variant tree describing a game action.
// Exactly the fields for the effect's Kind are meaningful; card files
// leave the rest unset.
type Effect struct {
	Kind EffectKind `yaml:"kind"`

	// Target selection for effects that act on cards.
	Select *Selector `yaml:"select,omitempty"`

	// Numeric payload: damage/heal/draw/buff amounts, resource gain.
	Amount *Value `yaml:"amount,omitempty"`

	// DamagePlayer, HealPlayer, Draw, GainResource, LookAtTop.
	Who Who `yaml:"who,omitempty"`

	// Move.
	To Zone `yaml:"to,omitempty"`

	// CreateToken.
	Token *TokenSpec `yaml:"token,omitempty"`
	Count int        `yaml:"count,omitempty"`

	// BuffStats, Transform, ChangeController, PreventDamage.
	Atk      *Value   `yaml:"atkDelta,omitempty"`
	HP       *Value   `yaml:"hpDelta,omitempty"`
	Override *Stats   `yaml:"override,omitempty"` // Transform: fixed stat block
	Duration Duration `yaml:"duration,omitempty"`

	// CopyStats.
	Clamp *StatClamp `yaml:"clamp,omitempty"`

	// AddCounter, RemoveCounter.
	Counter string `yaml:"counter,omitempty"`

	// LookAtTop: look at Count cards, retain Keep of them.
	Keep int `yaml:"keep,omitempty"`

	// Control flow.
	If    *Predicate   `yaml:"if,omitempty"`
	Then  *Effect      `yaml:"then,omitempty"`
	Else  *Effect      `yaml:"else,omitempty"`
	Cases []CaseBranch `yaml:"cases,omitempty"`
	Steps []Effect     `yaml:"steps,omitempty"`
	Do    *Effect      `yaml:"do,omitempty"`
	Times int          `yaml:"times,omitempty"`
}

// Targeted reports whether the effect kind resolves targets through a
// selector (and therefore participates in legality re-checks and fizzle).
func (e *Effect) Targeted() bool {
	switch e.Kind {
	case EffectDealDamage, EffectHealUnit, EffectMove, EffectDestroy,
		EffectBuffStats, EffectTransform, EffectCopyStats,
		EffectAddCounter, EffectRemoveCounter, EffectTap, EffectUntap,
		EffectChangeController, EffectPreventDamage, EffectForEach:
		return true
	}
	return false
}

// Walk visits e and every sub-effect in document order. The analyzer and
// the structural validators use this to fold over the tree.
func (e *Effect) Walk(visit func(*Effect)) {
	if e == nil {
		return
	}
	visit(e)
	if e.Then != nil {
		e.Then.Walk(visit)
	}
	if e.Else != nil {
		e.Else.Walk(visit)
	}
	for i := range e.Cases {
		e.Cases[i].Do.Walk(visit)
	}
	for i := range e.Steps {
		e.Steps[i].Walk(visit)
	}
	if e.Do != nil {
		e.Do.Walk(visit)
	}
}
