package game

import (
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/duelforge/duelforge/internal/game/counters"
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// harness builds mid-game scenarios directly, skipping deck setup.
type harness struct {
	t  *testing.T
	e  *Engine
	gs *GameState
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithRules(t, ruleset.Default())
}

func newHarnessWithRules(t *testing.T, rules *ruleset.Rules) *harness {
	e := NewEngine(rules, zaptest.NewLogger(t))
	e.SetStrict(true)

	gs := newGameState(42)
	gs.Players[0] = &PlayerState{Index: 0, Name: "Alice", Life: rules.StartingLife, Resources: rules.ResourcePerTurn}
	gs.Players[1] = &PlayerState{Index: 1, Name: "Bob", Life: rules.StartingLife, Resources: rules.ResourcePerTurn}
	// Turn 2 so pre-placed units are not summoning sick.
	gs.Turn = TurnState{Number: 2, Active: 0, Phase: ruleset.PhaseMain}
	return &harness{t: t, e: e, gs: gs}
}

func (h *harness) newID(name string) string {
	return fmt.Sprintf("%s-%d", name, len(h.gs.Cards))
}

// addCard places a card built from the template into a zone and returns
// its id.
func (h *harness) addCard(owner int, template *ir.Card, zone ir.Zone) string {
	rc := &RuntimeCard{
		ID:       h.newID(template.Name),
		Owner:    owner,
		Template: template,
		Counters: counters.New(),
	}
	h.gs.Cards[rc.ID] = rc
	h.gs.placeInZone(rc, zone)
	if zone == ir.ZoneBattlefield {
		rc.EnteredTurn = 0
	}
	return rc.ID
}

// addUnit places a plain battlefield unit.
func (h *harness) addUnit(owner int, name string, atk, hp int, kws ...ir.Keyword) string {
	return h.addCard(owner, &ir.Card{
		Name:     name,
		Type:     ir.TypeUnit,
		Stats:    &ir.Stats{Atk: atk, HP: hp},
		Keywords: ir.KeywordSet(kws),
	}, ir.ZoneBattlefield)
}

// card fetches a runtime card, failing the test if it is gone.
func (h *harness) card(id string) *RuntimeCard {
	rc, ok := h.gs.Card(id)
	if !ok {
		h.t.Fatalf("card %s not in arena", id)
	}
	return rc
}

// resolve plans and applies an effect from a source card's controller.
func (h *harness) resolve(sourceID string, eff ir.Effect) {
	controller := 0
	if rc, ok := h.gs.Card(sourceID); ok {
		controller = rc.Owner
	}
	h.e.Apply(h.gs, h.e.Plan(h.gs, controller, sourceID, eff, nil))
}

// zoneOf reports which zone a card currently sits in.
func (h *harness) zoneOf(id string) ir.Zone {
	return h.card(id).Zone
}

func damageEffect(n int, sel *ir.Selector) ir.Effect {
	v := ir.Const(n)
	return ir.Effect{Kind: ir.EffectDealDamage, Amount: &v, Select: sel}
}

func selectOpponents() *ir.Selector {
	return &ir.Selector{Owner: ir.OwnerOpponent}
}
