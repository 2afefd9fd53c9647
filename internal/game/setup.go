package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duelforge/duelforge/internal/game/counters"
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/ruleset"
)

// Deck is an ordered list of card templates; order is irrelevant since
// libraries are shuffled at setup.
type Deck struct {
	Name  string
	Cards []*ir.Card
}

// ValidateDeck checks a deck against the construction rules: minimum
// size, the per-name copy limit, and unit templates carrying stats.
func (e *Engine) ValidateDeck(deck Deck) error {
	if len(deck.Cards) < e.rules.MinDeckSize {
		return fmt.Errorf("deck %q has %d cards, minimum is %d", deck.Name, len(deck.Cards), e.rules.MinDeckSize)
	}
	copies := make(map[string]int)
	for _, card := range deck.Cards {
		name := strings.ToLower(card.Canonical())
		copies[name]++
		if copies[name] > e.rules.DeckNameLimit {
			return fmt.Errorf("deck %q has more than %d copies of %q", deck.Name, e.rules.DeckNameLimit, card.Canonical())
		}
		if card.Type == ir.TypeUnit && card.Stats == nil {
			return fmt.Errorf("unit %q has no stats", card.Name)
		}
		if card.Type != ir.TypeUnit && card.Stats != nil {
			return fmt.Errorf("%s %q declares stats", card.Type, card.Name)
		}
	}
	return nil
}

// NewMatch builds the initial state for one match: rule-table sanity
// issues logged, decks validated, libraries shuffled with the seed, hands
// dealt and the first turn begun. The same seed and decks always produce
// the same match.
func (e *Engine) NewMatch(seed int64, names [2]string, decks [2]Deck) (*GameState, error) {
	for _, issue := range ruleset.Check(e.rules) {
		e.logger.Warn("rule table issue",
			zap.String("code", issue.Code),
			zap.String("detail", issue.Message),
		)
	}
	for i := range decks {
		if err := e.ValidateDeck(decks[i]); err != nil {
			return nil, err
		}
	}

	gs := newGameState(seed)
	for i := 0; i < 2; i++ {
		p := &PlayerState{
			Index:  i,
			Name:   names[i],
			Life:   e.rules.StartingLife,
			Colors: colorIdentity(decks[i]),
		}
		gs.Players[i] = p
		for _, template := range decks[i].Cards {
			rc := &RuntimeCard{
				ID:       uuid.NewString(),
				Owner:    i,
				Template: template,
				Zone:     ir.ZoneLibrary,
				Counters: counters.New(),
			}
			gs.Cards[rc.ID] = rc
			p.Library = append(p.Library, rc.ID)
		}
		gs.shuffleLibrary(i)
	}

	for i := 0; i < 2; i++ {
		p := gs.Players[i]
		for j := 0; j < e.rules.StartingHandSize && len(p.Library) > 0; j++ {
			top := p.Library[len(p.Library)-1]
			gs.placeInZone(gs.Cards[top], ir.ZoneHand)
		}
	}

	gs.Turn = TurnState{Number: 1, Active: 0}
	e.beginTurn(gs)
	e.logger.Info("match started",
		zap.String("player0", names[0]),
		zap.String("player1", names[1]),
		zap.Int64("seed", seed),
	)
	return gs, nil
}

// shuffleLibrary shuffles one library in place with the match rng.
func (gs *GameState) shuffleLibrary(player int) {
	lib := gs.Players[player].Library
	gs.rng.Shuffle(len(lib), func(i, j int) {
		lib[i], lib[j] = lib[j], lib[i]
	})
}

// colorIdentity is the union of every color tag appearing in the deck's
// costs, in first-seen order.
func colorIdentity(deck Deck) []string {
	seen := make(map[string]bool)
	var colors []string
	for _, card := range deck.Cards {
		for _, c := range card.Cost.Colors {
			if !seen[c] {
				seen[c] = true
				colors = append(colors, c)
			}
		}
	}
	return colors
}
