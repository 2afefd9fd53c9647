// Package deckio loads card pools and deck lists from YAML files. Pools
// declare full card templates; deck lists reference pool cards by name
// with a copy count.
package deckio

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duelforge/duelforge/internal/game"
	"github.com/duelforge/duelforge/internal/game/ir"
)

// Pool is a loaded card pool indexed by canonical name.
type Pool struct {
	Cards []*ir.Card
	byKey map[string]*ir.Card
}

type poolFile struct {
	Cards []*ir.Card `yaml:"cards"`
}

// LoadPool reads a pool file.
func LoadPool(path string) (*Pool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool: %w", err)
	}
	return ParsePool(raw)
}

// ParsePool parses pool YAML and indexes it. Duplicate canonical names
// are rejected: a pool must be unambiguous for deck resolution.
func ParsePool(raw []byte) (*Pool, error) {
	var file poolFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse pool: %w", err)
	}
	pool := &Pool{Cards: file.Cards, byKey: make(map[string]*ir.Card, len(file.Cards))}
	for _, card := range file.Cards {
		if card.Name == "" {
			return nil, fmt.Errorf("pool card without a name")
		}
		key := poolKey(card.Canonical())
		if _, dup := pool.byKey[key]; dup {
			return nil, fmt.Errorf("pool declares %q twice", card.Canonical())
		}
		pool.byKey[key] = card
	}
	return pool, nil
}

// Lookup finds a pool card by canonical name, case-insensitively.
func (p *Pool) Lookup(name string) (*ir.Card, bool) {
	card, ok := p.byKey[poolKey(name)]
	return card, ok
}

func poolKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

type deckFile struct {
	Name  string `yaml:"name"`
	Cards []struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	} `yaml:"cards"`
}

// LoadDeck reads a deck list and resolves every entry against the pool.
func LoadDeck(path string, pool *Pool) (game.Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return game.Deck{}, fmt.Errorf("read deck: %w", err)
	}
	return ParseDeck(raw, pool)
}

// ParseDeck parses deck YAML against a pool. Entries default to a single
// copy.
func ParseDeck(raw []byte, pool *Pool) (game.Deck, error) {
	var file deckFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return game.Deck{}, fmt.Errorf("parse deck: %w", err)
	}
	deck := game.Deck{Name: file.Name}
	for _, entry := range file.Cards {
		card, ok := pool.Lookup(entry.Name)
		if !ok {
			return game.Deck{}, fmt.Errorf("deck %q references unknown card %q", file.Name, entry.Name)
		}
		count := entry.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			deck.Cards = append(deck.Cards, card)
		}
	}
	return deck, nil
}
