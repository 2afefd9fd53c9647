// Package render turns match snapshots into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/duelforge/duelforge/internal/game"
)

// Snapshot renders a full two-sided board view.
func Snapshot(snap game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== turn %d, %s phase, %s to act ===\n",
		snap.Turn, strings.ToLower(string(snap.Phase)), snap.Players[snap.Active].Name)
	for i := 1; i >= 0; i-- {
		renderSide(&b, snap.Players[i], i == snap.Active)
	}
	if snap.Winner != nil {
		fmt.Fprintf(&b, "*** %s wins ***\n", snap.Players[*snap.Winner].Name)
	}
	return b.String()
}

func renderSide(b *strings.Builder, p game.PlayerView, active bool) {
	marker := " "
	if active {
		marker = ">"
	}
	fmt.Fprintf(b, "%s %s  life %d  ap %d  hand %d  library %d\n",
		marker, p.Name, p.Life, p.Resources, p.HandCount, p.LibrarySize)
	if len(p.Battlefield) == 0 {
		fmt.Fprintf(b, "    (empty battlefield)\n")
	}
	for _, c := range p.Battlefield {
		fmt.Fprintf(b, "    %s\n", Card(c))
	}
	for _, c := range p.Hand {
		fmt.Fprintf(b, "    in hand: %s\n", Card(c))
	}
}

// Card renders one card line.
func Card(c game.CardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", c.Cost, c.Name)
	if c.Type == "UNIT" {
		fmt.Fprintf(&b, " %d/%d", c.Atk, c.HP)
		if c.HP != c.HPMax {
			fmt.Fprintf(&b, " (of %d)", c.HPMax)
		}
	}
	if len(c.Keywords) > 0 {
		parts := make([]string, len(c.Keywords))
		for i, k := range c.Keywords {
			parts[i] = strings.ToLower(string(k))
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(parts, ", "))
	}
	if c.Tapped {
		b.WriteString(" *tapped*")
	}
	if c.Token {
		b.WriteString(" *token*")
	}
	for name, n := range c.Counters {
		fmt.Fprintf(&b, " +%d %s", n, name)
	}
	return b.String()
}

// LogTail renders the last n log lines.
func LogTail(snap game.Snapshot, n int) string {
	lines := snap.Log
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
