package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/duelforge/duelforge/internal/ruleset"
)

// CheckResult reports whether an action is legal and, when it is not, why.
// Illegal actions never mutate state and never surface as errors.
type CheckResult struct {
	OK     bool
	Reason string
}

func allowed() CheckResult { return CheckResult{OK: true} }

func denied(format string, args ...interface{}) CheckResult {
	return CheckResult{OK: false, Reason: fmt.Sprintf(format, args...)}
}

// Engine interprets the rule table against a GameState. The engine itself
// is stateless between calls; the GameState passed in is owned exclusively
// by the caller and mutated only by applier code paths.
type Engine struct {
	rules  *ruleset.Rules
	logger *zap.Logger

	// strict aborts on unhandled closed-enum variants instead of treating
	// them as NoOp. On in development, off in production.
	strict bool
}

// NewEngine creates an engine for the given rule table.
func NewEngine(rules *ruleset.Rules, logger *zap.Logger) *Engine {
	if rules == nil {
		rules = ruleset.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: rules, logger: logger}
}

// SetStrict toggles strict variant handling.
func (e *Engine) SetStrict(strict bool) { e.strict = strict }

// Rules exposes the rule table for introspection (rulebook generation,
// tests).
func (e *Engine) Rules() *ruleset.Rules { return e.rules }

// unhandledVariant is the single funnel for values of a closed variant set
// that no switch arm claimed. A new schema variant without interpreter
// support is a programming-time defect: strict mode panics so development
// catches it, production logs and treats the variant as NoOp.
func (e *Engine) unhandledVariant(gs *GameState, set, kind string) {
	if e.strict {
		panic(fmt.Sprintf("unhandled %s variant %q", set, kind))
	}
	e.logger.Error("unhandled variant treated as noop",
		zap.String("set", set),
		zap.String("kind", kind),
	)
	if gs != nil {
		gs.Logf("unhandled %s variant %q ignored", set, kind)
	}
}

// CurrentPlayer returns the active player's index.
func (e *Engine) CurrentPlayer(gs *GameState) int { return gs.Turn.Active }

// Opponent returns the opponent of the active player.
func (e *Engine) Opponent(gs *GameState) int { return OpponentOf(gs.Turn.Active) }

// WinnerOf returns the winner's index, if the match has ended.
func (e *Engine) WinnerOf(gs *GameState) (int, bool) {
	if gs.Winner == nil {
		return 0, false
	}
	return *gs.Winner, true
}

// declareWinner records the match outcome once; later calls are no-ops.
func (e *Engine) declareWinner(gs *GameState, player int, why string) {
	if gs.Winner != nil {
		return
	}
	winner := player
	gs.Winner = &winner
	gs.Logf("%s wins: %s", gs.Players[player].Name, why)
	e.logger.Info("match decided",
		zap.Int("winner", player),
		zap.String("reason", why),
	)
}
