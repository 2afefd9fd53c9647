package game

import (
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// CardView is the externally visible form of one card instance. Stats are
// the effective values at snapshot time, continuous effects included.
type CardView struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Type     ir.CardType    `json:"type" yaml:"type"`
	Zone     ir.Zone        `json:"zone" yaml:"zone"`
	Atk      int            `json:"atk" yaml:"atk"`
	HP       int            `json:"hp" yaml:"hp"`
	HPMax    int            `json:"hpMax" yaml:"hpMax"`
	Cost     int            `json:"cost" yaml:"cost"`
	Tapped   bool           `json:"tapped,omitempty" yaml:"tapped,omitempty"`
	Token    bool           `json:"token,omitempty" yaml:"token,omitempty"`
	Keywords ir.KeywordSet  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Counters map[string]int `json:"counters,omitempty" yaml:"counters,omitempty"`
}

// PlayerView is one side of the snapshot. Hidden zones surface as counts
// only when the snapshot is taken from the opponent's perspective.
type PlayerView struct {
	Name        string     `json:"name" yaml:"name"`
	Life        int        `json:"life" yaml:"life"`
	Resources   int        `json:"resources" yaml:"resources"`
	HandCount   int        `json:"handCount" yaml:"handCount"`
	Hand        []CardView `json:"hand,omitempty" yaml:"hand,omitempty"`
	LibrarySize int        `json:"librarySize" yaml:"librarySize"`
	Battlefield []CardView `json:"battlefield" yaml:"battlefield"`
	Graveyard   []CardView `json:"graveyard" yaml:"graveyard"`
}

// Snapshot is a self-contained, render-ready view of the match at one
// moment. It shares no memory with the live state.
type Snapshot struct {
	Turn    int           `json:"turn" yaml:"turn"`
	Active  int           `json:"active" yaml:"active"`
	Phase   ruleset.Phase `json:"phase" yaml:"phase"`
	Players [2]PlayerView `json:"players" yaml:"players"`
	Log     []string      `json:"log,omitempty" yaml:"log,omitempty"`
	Winner  *int          `json:"winner,omitempty" yaml:"winner,omitempty"`
}

// SnapshotFor builds a snapshot from the given player's perspective: their
// own hand is listed, the opponent's shows as a count. perspective -1
// reveals both hands (spectator/debug view).
func (e *Engine) SnapshotFor(gs *GameState, perspective int) Snapshot {
	snap := Snapshot{
		Turn:   gs.Turn.Number,
		Active: gs.Turn.Active,
		Phase:  gs.Turn.Phase,
		Log:    append([]string(nil), gs.Log...),
	}
	if gs.Winner != nil {
		w := *gs.Winner
		snap.Winner = &w
	}
	for i := 0; i < 2; i++ {
		p := gs.Players[i]
		view := PlayerView{
			Name:        p.Name,
			Life:        p.Life,
			Resources:   p.Resources,
			HandCount:   len(p.Hand),
			LibrarySize: len(p.Library),
			Battlefield: e.cardViews(gs, p.Battlefield),
			Graveyard:   e.cardViews(gs, p.Graveyard),
		}
		if perspective < 0 || perspective == i {
			view.Hand = e.cardViews(gs, p.Hand)
		}
		snap.Players[i] = view
	}
	return snap
}

func (e *Engine) cardViews(gs *GameState, ids []string) []CardView {
	views := make([]CardView, 0, len(ids))
	for _, id := range ids {
		rc := gs.Cards[id]
		atk, hp, hpMax := e.EffectiveStats(gs, rc)
		views = append(views, CardView{
			ID:       rc.ID,
			Name:     rc.Template.Name,
			Type:     rc.Template.Type,
			Zone:     rc.Zone,
			Atk:      atk,
			HP:       hp,
			HPMax:    hpMax,
			Cost:     e.CastCost(gs, rc.Owner, rc),
			Tapped:   rc.Tapped,
			Token:    rc.IsToken,
			Keywords: rc.Template.Keywords,
			Counters: rc.Counters.All(),
		})
	}
	return views
}
