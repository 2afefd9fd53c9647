package render

import (
	"fmt"
	"strings"

	"github.com/duelforge/duelforge/internal/game/ir"
)

// Describe renders a card template as readable rules text: the header
// line, then one sentence per ability. Pure presentation; nothing here
// consults match state.
func Describe(card *ir.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%d", card.Name, card.Cost.Generic)
	for _, c := range card.Cost.Colors {
		fmt.Fprintf(&b, " %s", c)
	}
	fmt.Fprintf(&b, "] %s", strings.ToLower(string(card.Type)))
	if card.Stats != nil {
		fmt.Fprintf(&b, " %d/%d", card.Stats.Atk, card.Stats.HP)
	}
	if len(card.Keywords) > 0 {
		parts := make([]string, len(card.Keywords))
		for i, k := range card.Keywords {
			parts[i] = strings.ToLower(string(k))
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(parts, ", "))
	}
	b.WriteString("\n")

	if cast := card.TextIR.Cast; cast != nil {
		fmt.Fprintf(&b, "  On cast: %s.\n", EffectText(*cast))
	}
	for _, trig := range card.TextIR.Triggers {
		fmt.Fprintf(&b, "  %s: %s%s.\n", eventText(trig), EffectText(trig.Effect), limitText(trig.Limit))
	}
	for _, cont := range card.TextIR.Continuous {
		fmt.Fprintf(&b, "  %s.\n", continuousText(cont))
	}
	for _, rep := range card.TextIR.Replacements {
		fmt.Fprintf(&b, "  %s, instead %s%s.\n", replacementText(rep.Replaces), EffectText(rep.Instead), limitText(rep.Limit))
	}
	return b.String()
}

// EffectText renders one effect tree as an English clause.
func EffectText(eff ir.Effect) string {
	switch eff.Kind {
	case ir.EffectNoOp:
		return "do nothing"
	case ir.EffectDealDamage:
		return fmt.Sprintf("deal %s damage to %s", valueText(eff.Amount, 0), selectorText(eff.Select))
	case ir.EffectDamagePlayer:
		return fmt.Sprintf("deal %s damage to %s", valueText(eff.Amount, 0), whoText(eff.Who))
	case ir.EffectHealPlayer:
		return playerClause(eff.Who, fmt.Sprintf("gain %s life", valueText(eff.Amount, 0)))
	case ir.EffectHealUnit:
		return fmt.Sprintf("heal %s for %s", selectorText(eff.Select), valueText(eff.Amount, 0))
	case ir.EffectDraw:
		return playerClause(eff.Who, fmt.Sprintf("draw %s card(s)", valueText(eff.Amount, 1)))
	case ir.EffectLookAtTop:
		return playerClause(eff.Who, fmt.Sprintf("look at the top %d cards of the library and keep %d on top", eff.Count, eff.Keep))
	case ir.EffectMove:
		return fmt.Sprintf("move %s to the %s zone", selectorText(eff.Select), strings.ToLower(string(eff.To)))
	case ir.EffectDestroy:
		return fmt.Sprintf("destroy %s", selectorText(eff.Select))
	case ir.EffectCreateToken:
		count := eff.Count
		if count <= 0 {
			count = 1
		}
		if eff.Token == nil {
			return "create a token"
		}
		return fmt.Sprintf("create %d %d/%d %s token(s)", count, eff.Token.Stats.Atk, eff.Token.Stats.HP, eff.Token.Name)
	case ir.EffectBuffStats:
		return fmt.Sprintf("give %s %s/%s%s", selectorText(eff.Select), valueText(eff.Atk, 0), valueText(eff.HP, 0), durationText(eff.Duration))
	case ir.EffectTransform:
		if eff.Override == nil {
			return "transform"
		}
		return fmt.Sprintf("%s becomes a %d/%d%s", selectorText(eff.Select), eff.Override.Atk, eff.Override.HP, durationText(eff.Duration))
	case ir.EffectCopyStats:
		return fmt.Sprintf("%s copies this card's stats%s", selectorText(eff.Select), durationText(eff.Duration))
	case ir.EffectAddCounter:
		return fmt.Sprintf("put %s %s counter(s) on %s", valueText(eff.Amount, 1), eff.Counter, selectorText(eff.Select))
	case ir.EffectRemoveCounter:
		return fmt.Sprintf("remove %s %s counter(s) from %s", valueText(eff.Amount, 1), eff.Counter, selectorText(eff.Select))
	case ir.EffectTap:
		return fmt.Sprintf("tap %s", selectorText(eff.Select))
	case ir.EffectUntap:
		return fmt.Sprintf("untap %s", selectorText(eff.Select))
	case ir.EffectChangeController:
		return fmt.Sprintf("take control of %s%s", selectorText(eff.Select), durationText(eff.Duration))
	case ir.EffectPreventDamage:
		return fmt.Sprintf("prevent the next %s damage to %s%s", valueText(eff.Amount, 0), selectorText(eff.Select), durationText(eff.Duration))
	case ir.EffectGainResource:
		return playerClause(eff.Who, fmt.Sprintf("gain %s action point(s)", valueText(eff.Amount, 0)))
	case ir.EffectSequence:
		parts := make([]string, len(eff.Steps))
		for i, step := range eff.Steps {
			parts[i] = EffectText(step)
		}
		return strings.Join(parts, ", then ")
	case ir.EffectConditional:
		out := "if " + predicateText(eff.If)
		if eff.Then != nil {
			out += ", " + EffectText(*eff.Then)
		}
		if eff.Else != nil {
			out += ", otherwise " + EffectText(*eff.Else)
		}
		return out
	case ir.EffectCase:
		parts := make([]string, 0, len(eff.Cases)+1)
		for _, branch := range eff.Cases {
			parts = append(parts, fmt.Sprintf("if %s, %s", predicateText(&branch.When), EffectText(branch.Do)))
		}
		if eff.Else != nil {
			parts = append(parts, "otherwise "+EffectText(*eff.Else))
		}
		return strings.Join(parts, "; ")
	case ir.EffectForEach:
		if eff.Do == nil {
			return "do nothing"
		}
		return fmt.Sprintf("for each of %s: %s", selectorText(eff.Select), EffectText(*eff.Do))
	case ir.EffectRepeat:
		if eff.Do == nil {
			return "do nothing"
		}
		return fmt.Sprintf("%s, %d times", EffectText(*eff.Do), eff.Times)
	default:
		return strings.ToLower(string(eff.Kind))
	}
}

func selectorText(sel *ir.Selector) string {
	effective := ir.Selector{}
	if sel != nil {
		effective = *sel
	}
	var parts []string
	switch effective.EffectiveOwner() {
	case ir.OwnerController:
		parts = append(parts, "a friendly")
	case ir.OwnerOpponent:
		parts = append(parts, "an enemy")
	default:
		parts = append(parts, "a")
	}
	if effective.Where != nil {
		parts = append(parts, predicateText(effective.Where))
	}
	parts = append(parts, "card")
	if zone := effective.EffectiveZone(); zone != ir.ZoneBattlefield {
		parts = append(parts, "in the "+strings.ToLower(string(zone))+" zone")
	}
	out := strings.Join(parts, " ")
	if effective.Max > 1 {
		out = fmt.Sprintf("up to %d of: %s", effective.Max, out)
	}
	return out
}

func predicateText(p *ir.Predicate) string {
	if p == nil {
		return "always"
	}
	switch p.Kind {
	case ir.PredTrue:
		return "always"
	case ir.PredHasTag:
		return p.Name + "-tagged"
	case ir.PredHasAttribute:
		if p.Value == "" {
			return "with attribute " + p.Name
		}
		return fmt.Sprintf("with %s = %s", p.Name, p.Value)
	case ir.PredHasName:
		switch p.Match {
		case ir.NamePrefix:
			return fmt.Sprintf("named starting with %q", p.Name)
		case ir.NameContains:
			return fmt.Sprintf("named containing %q", p.Name)
		default:
			return fmt.Sprintf("named %q", p.Name)
		}
	case ir.PredIsToken:
		return "token"
	case ir.PredWasSummonedThisTurn:
		return "summoned this turn"
	case ir.PredHasCounter:
		return "carrying a " + p.Name + " counter"
	case ir.PredControllerIs:
		return "controlled by the " + strings.ToLower(string(p.Who))
	case ir.PredEventOccurred:
		return fmt.Sprintf("%s happened this %s", strings.ToLower(string(p.Event)), strings.ToLower(string(windowOrTurn(p.Since))))
	case ir.PredCmp:
		return "a comparison holds"
	case ir.PredAnd:
		parts := make([]string, len(p.All))
		for i := range p.All {
			parts[i] = predicateText(&p.All[i])
		}
		return strings.Join(parts, " and ")
	case ir.PredOr:
		parts := make([]string, len(p.Any))
		for i := range p.Any {
			parts[i] = predicateText(&p.Any[i])
		}
		return strings.Join(parts, " or ")
	case ir.PredNot:
		return "not " + predicateText(p.Not)
	default:
		return strings.ToLower(string(p.Kind))
	}
}

func valueText(v *ir.Value, fallback int) string {
	if v == nil {
		return fmt.Sprintf("%d", fallback)
	}
	switch v.Kind {
	case ir.ValueConst:
		return fmt.Sprintf("%d", v.N)
	case ir.ValueClamp:
		return fmt.Sprintf("X (between %d and %d)", v.Min, v.Max)
	default:
		return "X"
	}
}

func whoText(w ir.Who) string {
	if w == ir.WhoOpponent {
		return "the opponent"
	}
	return "you"
}

// playerClause inflects a controller-voiced verb phrase for the opponent:
// "draw 2 card(s)" becomes "the opponent draws 2 card(s)".
func playerClause(w ir.Who, clause string) string {
	if w != ir.WhoOpponent {
		return clause
	}
	verb, rest, found := strings.Cut(clause, " ")
	if !found {
		return "the opponent " + verb + "s"
	}
	return "the opponent " + verb + "s " + rest
}

func durationText(d ir.Duration) string {
	if d == ir.DurationEndOfTurn {
		return " until end of turn"
	}
	return ""
}

func eventText(trig ir.TriggerDef) string {
	var out string
	switch trig.When {
	case ir.EventUnitDied:
		out = "When a unit dies"
	case ir.EventCardDrawn:
		out = "When a card is drawn"
	case ir.EventDamageDealt:
		out = "When damage is dealt"
	case ir.EventTokenCreated:
		out = "When a token is created"
	case ir.EventEnteredBattlefield:
		out = "When a card enters the battlefield"
	case ir.EventSpellCast:
		out = "When a card is cast"
	case ir.EventUpkeepStarted:
		out = "At the start of your turn"
	case ir.EventNameMatched:
		out = fmt.Sprintf("When %q appears", trig.Name)
	default:
		out = "On " + strings.ToLower(string(trig.When))
	}
	if trig.Condition != nil {
		out += ", if the subject is " + predicateText(trig.Condition)
	}
	return out
}

func continuousText(cont ir.ContinuousDef) string {
	switch cont.Kind {
	case ir.ContinuousStaticBuff:
		return fmt.Sprintf("%s gets %+d/%+d while this is on the battlefield",
			selectorText(cont.Target), cont.Atk, cont.HP)
	case ir.ContinuousCostModifier:
		out := fmt.Sprintf("cards matching %s cost %+d", predicateText(cont.Where), cont.Delta)
		if cont.Floor != nil {
			out += fmt.Sprintf(" (never below %d)", *cont.Floor)
		}
		return out
	default:
		return strings.ToLower(string(cont.Kind))
	}
}

func replacementText(kind ir.ReplacementKind) string {
	switch kind {
	case ir.ReplaceWouldDie:
		return "When a matching card would die"
	case ir.ReplaceWouldBeDamaged:
		return "When a matching card would be damaged"
	case ir.ReplaceWouldDraw:
		return "When you would draw a card"
	default:
		return "On " + strings.ToLower(string(kind))
	}
}

func limitText(limit ir.UsageLimit) string {
	if limit.Unlimited() {
		return ""
	}
	window := "turn"
	if limit.Window == ir.LimitPerGame {
		window = "game"
	}
	if limit.Count == 1 {
		return fmt.Sprintf(" (once per %s)", window)
	}
	return fmt.Sprintf(" (%d times per %s)", limit.Count, window)
}

func windowOrTurn(w ir.LimitWindow) ir.LimitWindow {
	if w == "" {
		return ir.LimitPerTurn
	}
	return w
}
