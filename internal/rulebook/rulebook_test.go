package rulebook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duelforge/duelforge/internal/ruleset"
)

func TestMarkdownReflectsTheTable(t *testing.T) {
	doc := Markdown(ruleset.Default())

	assert.True(t, strings.HasPrefix(doc, "# Rules"))
	assert.Contains(t, doc, "upkeep, then main, then combat, then end")
	assert.Contains(t, doc, "Starting life: 20")
	assert.Contains(t, doc, "loses the game")
	assert.Contains(t, doc, "clears at the end of each turn")
	assert.Contains(t, doc, "exile zone")
}

func TestMarkdownFollowsVariants(t *testing.T) {
	r := ruleset.Default()
	r.DamagePersists = true
	r.AttackPolicy = ruleset.AttackUnitsFirst
	r.EmptyDraw = ruleset.EmptyDrawNoOp
	doc := Markdown(r)

	assert.Contains(t, doc, "stays on units between turns")
	assert.Contains(t, doc, "cannot attack the enemy player while")
	assert.Contains(t, doc, "does nothing")
}
