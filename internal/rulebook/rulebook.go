// Package rulebook generates a human-readable rules summary from a rule
// table, so the document players read always matches what the engine
// actually interprets.
package rulebook

import (
	"fmt"
	"strings"

	"github.com/duelforge/duelforge/internal/ruleset"
)

// Markdown renders the rule table as a markdown document.
func Markdown(r *ruleset.Rules) string {
	var b strings.Builder
	b.WriteString("# Rules\n\n")

	b.WriteString("## Turn structure\n\n")
	phases := make([]string, len(r.PhaseOrder))
	for i, p := range r.PhaseOrder {
		phases[i] = strings.ToLower(string(p))
	}
	fmt.Fprintf(&b, "Each turn runs %s. The %s phase only ends when the active player ends the turn.\n\n",
		strings.Join(phases, ", then "), strings.ToLower(string(r.LastPhase())))

	b.WriteString("## Players\n\n")
	fmt.Fprintf(&b, "- Starting life: %d\n", r.StartingLife)
	fmt.Fprintf(&b, "- Starting hand: %d cards (each mulligan redraws one fewer)\n", r.StartingHandSize)
	fmt.Fprintf(&b, "- Maximum hand size: %d; excess cards are discarded immediately\n", r.MaxHandSize)
	if r.DrawOnTurnStart {
		b.WriteString("- The active player draws a card at the start of each turn\n")
	}
	if r.EmptyDraw == ruleset.EmptyDrawLose {
		b.WriteString("- Drawing from an empty library loses the game\n")
	} else {
		b.WriteString("- Drawing from an empty library does nothing\n")
	}
	b.WriteString("\n")

	b.WriteString("## Resources\n\n")
	if r.ResourceCarryOver {
		fmt.Fprintf(&b, "Players gain %d action points each turn, keeping unspent points, up to %d.\n\n",
			r.ResourcePerTurn, r.ResourceMax)
	} else {
		fmt.Fprintf(&b, "Players start each turn with %d action points (maximum %d); unspent points are lost.\n\n",
			r.ResourcePerTurn, r.ResourceMax)
	}

	b.WriteString("## Combat and damage\n\n")
	if r.AttackPolicy == ruleset.AttackUnitsFirst {
		b.WriteString("- Units cannot attack the enemy player while the defender controls a unit\n")
	} else {
		b.WriteString("- Units may attack the enemy player or any enemy unit\n")
	}
	if r.DamagePersists {
		b.WriteString("- Damage stays on units between turns\n")
	} else {
		b.WriteString("- Damage on units clears at the end of each turn\n")
	}
	fmt.Fprintf(&b, "- A unit dies when its hit points reach %d\n", r.LethalThreshold)
	fmt.Fprintf(&b, "- Tokens that leave the battlefield go to the %s zone and never return\n",
		strings.ToLower(string(r.TokenLeaveZone)))
	if r.FizzleOnNoTarget {
		b.WriteString("- An effect with no remaining legal target fizzles and does nothing\n")
	}
	b.WriteString("\n")

	b.WriteString("## Deck construction\n\n")
	fmt.Fprintf(&b, "- Decks contain at least %d cards\n", r.MinDeckSize)
	if r.DeckNameLimit > 0 {
		fmt.Fprintf(&b, "- At most %d copies of any one card name\n", r.DeckNameLimit)
	}
	b.WriteString("\n")

	b.WriteString("## Limits\n\n")
	fmt.Fprintf(&b, "- Repeated effects run at most %d times\n", r.Caps.MaxRepeat)
	fmt.Fprintf(&b, "- Mass effects touch at most %d targets\n", r.Caps.MaxForEachTargets)
	fmt.Fprintf(&b, "- At most %d triggered abilities resolve from one action\n", r.Caps.MaxTriggerCredits)
	fmt.Fprintf(&b, "- At most %d tokens enter play from one action\n", r.Caps.MaxSpawnCredits)
	return b.String()
}
