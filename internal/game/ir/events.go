package ir

// EventKind names a discrete thing that can happen during a match.
// The same kinds serve three purposes: trigger conditions (`when`),
// per-turn/per-game event counters on the game state, and nodes in the
// analyzer's event-dependency graph.
type EventKind string

const (
	EventUnitDied           EventKind = "UNIT_DIED"
	EventCardDrawn          EventKind = "CARD_DRAWN"
	EventDamageDealt        EventKind = "DAMAGE_DEALT"
	EventTokenCreated       EventKind = "TOKEN_CREATED"
	EventEnteredBattlefield EventKind = "ENTERED_BATTLEFIELD"
	EventSpellCast          EventKind = "SPELL_CAST"
	EventUpkeepStarted      EventKind = "UPKEEP_STARTED"
	EventNameMatched        EventKind = "NAME_MATCHED"
)

// EventKinds lists every kind, for the analyzer's graph walk and the
// rulebook generator.
var EventKinds = []EventKind{
	EventUnitDied,
	EventCardDrawn,
	EventDamageDealt,
	EventTokenCreated,
	EventEnteredBattlefield,
	EventSpellCast,
	EventUpkeepStarted,
	EventNameMatched,
}

// Known reports whether the kind is one the engine recognizes.
func (k EventKind) Known() bool {
	for _, kind := range EventKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// ReplacementKind names an imminent event a replacement effect may
// substitute for.
type ReplacementKind string

const (
	ReplaceWouldDie       ReplacementKind = "WOULD_DIE"
	ReplaceWouldBeDamaged ReplacementKind = "WOULD_BE_DAMAGED"
	ReplaceWouldDraw      ReplacementKind = "WOULD_DRAW"
)

// LimitWindow scopes a trigger/replacement usage limit.
type LimitWindow string

const (
	LimitPerTurn LimitWindow = "TURN"
	LimitPerGame LimitWindow = "GAME"
)

// UsageLimit caps how often a trigger or replacement definition may apply
// within its window. Count <= 0 means unlimited.
type UsageLimit struct {
	Window LimitWindow `yaml:"window"`
	Count  int         `yaml:"count"`
}

// Unlimited reports whether the limit never exhausts.
func (l UsageLimit) Unlimited() bool { return l.Count <= 0 }
