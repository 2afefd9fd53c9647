// Package game implements the duelforge rules engine: match state, the
// pure evaluator/planner pair, the mutating applier, the turn/combat state
// machine and the trigger/replacement/continuous subsystem.
package game

import (
	"fmt"
	"math/rand"

	"github.com/duelforge/duelforge/internal/game/counters"
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// RuntimeCard is one card instance. Instances are owned exclusively by the
// GameState arena; zone lists reference them by id only.
type RuntimeCard struct {
	ID       string
	Owner    int
	Template *ir.Card
	Zone     ir.Zone

	Damage      int
	EnteredTurn int // turn the card entered the battlefield, 0 = never
	IsToken     bool
	Tapped      bool

	Counters *counters.Counters

	// Four independent stat-modifier layers. Effective stats are computed
	// on every read, never stored.
	PermBuff     ir.Stats
	EOTBuff      ir.Stats
	PermOverride *ir.Stats
	EOTOverride  *ir.Stats
}

// SummonedThisTurn reports whether the card entered the battlefield during
// the given turn.
func (rc *RuntimeCard) SummonedThisTurn(turn int) bool {
	return rc.EnteredTurn == turn && rc.EnteredTurn != 0
}

// HasKeyword reads the template keyword set.
func (rc *RuntimeCard) HasKeyword(k ir.Keyword) bool {
	return rc.Template.Keywords.Has(k)
}

// PlayerState is one side of the match. Zone lists are ordered; library
// top is the end of the list. A card id appears in exactly one zone list
// of exactly one player at all times.
type PlayerState struct {
	Index     int
	Name      string
	Life      int
	Resources int
	Mulligans int

	// Colors is the deck's color identity, fixed at setup. Cast color
	// requirements check against it.
	Colors []string

	Library     []string
	Hand        []string
	Battlefield []string
	Graveyard   []string
	Exile       []string
}

// zoneList returns a pointer to the list backing the zone. The reserved
// Stack zone has no list.
func (p *PlayerState) zoneList(z ir.Zone) *[]string {
	switch z {
	case ir.ZoneLibrary:
		return &p.Library
	case ir.ZoneHand:
		return &p.Hand
	case ir.ZoneBattlefield:
		return &p.Battlefield
	case ir.ZoneGraveyard:
		return &p.Graveyard
	case ir.ZoneExile:
		return &p.Exile
	}
	return nil
}

// ZoneIDs returns a copy of the ids in the zone.
func (p *PlayerState) ZoneIDs(z ir.Zone) []string {
	list := p.zoneList(z)
	if list == nil {
		return nil
	}
	return append([]string(nil), *list...)
}

// TurnState tracks whose turn it is and which phase is in progress.
type TurnState struct {
	Number int
	Active int
	Phase  ruleset.Phase
}

// GameState is the single mutable aggregate for one match. It is created
// once by NewMatch and mutated in place, only ever by the applier, on the
// caller's goroutine.
type GameState struct {
	Players [2]*PlayerState
	Cards   map[string]*RuntimeCard
	Turn    TurnState

	// EffectStack is reserved for a future stack-based resolution mode.
	// The interpreter never pushes to or pops from it.
	EffectStack []ir.Effect

	// Damage-prevention pools keyed by card id.
	PreventPerm map[string]int
	PreventEOT  map[string]int

	// ControlRevert maps card id to original owner for end-of-turn control
	// changes; consumed at end of turn.
	ControlRevert map[string]int

	// Event counters keyed by "eventKind:playerIndex".
	EventsTurn map[string]int
	EventsGame map[string]int

	// Trigger/replacement usage counters keyed by "cardID#definitionIndex".
	UsageTurn map[string]int
	UsageGame map[string]int

	Log    []string
	Winner *int

	rng *rand.Rand

	// Cascade budgets, refilled on each top-level Apply. Trigger chains and
	// token spawns drain them; at zero the cascade stops with a log line.
	triggerCredits int
	spawnCredits   int
}

func newGameState(seed int64) *GameState {
	return &GameState{
		Cards:         make(map[string]*RuntimeCard),
		PreventPerm:   make(map[string]int),
		PreventEOT:    make(map[string]int),
		ControlRevert: make(map[string]int),
		EventsTurn:    make(map[string]int),
		EventsGame:    make(map[string]int),
		UsageTurn:     make(map[string]int),
		UsageGame:     make(map[string]int),
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// Player returns the player at index i.
func (gs *GameState) Player(i int) *PlayerState { return gs.Players[i] }

// OpponentOf returns the index of i's opponent.
func OpponentOf(i int) int { return 1 - i }

// Card returns the runtime card for id, if any.
func (gs *GameState) Card(id string) (*RuntimeCard, bool) {
	rc, ok := gs.Cards[id]
	return rc, ok
}

// Logf appends a formatted line to the append-only match log.
func (gs *GameState) Logf(format string, args ...interface{}) {
	gs.Log = append(gs.Log, fmt.Sprintf(format, args...))
}

// eventKey builds the counter key for an event kind and player index.
func eventKey(kind ir.EventKind, player int) string {
	return fmt.Sprintf("%s:%d", kind, player)
}

// usageKey builds the usage-counter key for a card's nth definition.
func usageKey(cardID string, defIndex int) string {
	return fmt.Sprintf("%s#%d", cardID, defIndex)
}

// CountEvent bumps both event counter windows for the kind and player.
func (gs *GameState) CountEvent(kind ir.EventKind, player int) {
	key := eventKey(kind, player)
	gs.EventsTurn[key]++
	gs.EventsGame[key]++
}

// EventCount reads one counter window.
func (gs *GameState) EventCount(kind ir.EventKind, player int, window ir.LimitWindow) int {
	key := eventKey(kind, player)
	if window == ir.LimitPerGame {
		return gs.EventsGame[key]
	}
	return gs.EventsTurn[key]
}

// detachFromZones removes the id from every zone list of its owner. Every
// zone transfer goes remove-everywhere-then-append, never a partial move,
// which is what keeps the zone-exclusivity invariant.
func (gs *GameState) detachFromZones(rc *RuntimeCard) {
	owner := gs.Players[rc.Owner]
	for _, z := range ir.Zones {
		list := owner.zoneList(z)
		for i := len(*list) - 1; i >= 0; i-- {
			if (*list)[i] == rc.ID {
				*list = append((*list)[:i], (*list)[i+1:]...)
			}
		}
	}
}

// placeInZone detaches the card from all zones of its owner and appends it
// to the destination zone of the same owner.
func (gs *GameState) placeInZone(rc *RuntimeCard, z ir.Zone) {
	gs.detachFromZones(rc)
	list := gs.Players[rc.Owner].zoneList(z)
	if list == nil {
		return
	}
	*list = append(*list, rc.ID)
	rc.Zone = z
}

// battlefieldIDs returns both players' battlefield ids, active side first.
func (gs *GameState) battlefieldIDs() []string {
	ids := append([]string(nil), gs.Players[gs.Turn.Active].Battlefield...)
	return append(ids, gs.Players[OpponentOf(gs.Turn.Active)].Battlefield...)
}
