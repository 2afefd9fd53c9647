package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/duelforge/duelforge/internal/analysis"
	"github.com/duelforge/duelforge/internal/config"
	"github.com/duelforge/duelforge/internal/deckio"
	"github.com/duelforge/duelforge/internal/game"
	"github.com/duelforge/duelforge/internal/game/ir"
	"github.com/duelforge/duelforge/internal/render"
	"github.com/duelforge/duelforge/internal/rulebook"
)

var (
	configPath   = flag.String("config", "config/config.yaml", "path to configuration file")
	seedOverride = flag.Int64("seed", 0, "override the configured match seed")
	maxTurns     = flag.Int("max-turns", 50, "stop the demo match after this many turns")
	printRules   = flag.Bool("rulebook", false, "print the generated rulebook and exit")
	printCards   = flag.Bool("cards", false, "print the card pool as rules text and exit")
	version      = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// The rulebook needs no configuration beyond the stock rule table.
		if *printRules {
			cfg = &config.Config{}
		} else {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rules, err := cfg.Rules()
	if err != nil {
		logger.Fatal("failed to load rule table", zap.Error(err))
	}

	if *printRules {
		fmt.Print(rulebook.Markdown(rules))
		return
	}

	logger.Info("starting duelforge",
		zap.String("version", version),
		zap.String("pool", cfg.PoolPath),
	)

	pool, err := deckio.LoadPool(cfg.PoolPath)
	if err != nil {
		logger.Fatal("failed to load card pool", zap.Error(err))
	}

	analyzer := analysis.New(rules.Caps, logger)
	report := analyzer.Analyze(pool.Cards)
	for _, f := range report.Warnings() {
		logger.Warn("pool warning", zap.String("finding", f.String()))
	}
	if !report.OK() {
		for _, f := range report.Errors() {
			logger.Error("pool error", zap.String("finding", f.String()))
		}
		logger.Fatal("card pool failed analysis", zap.Int("errors", len(report.Errors())))
	}

	if *printCards {
		for _, card := range pool.Cards {
			fmt.Println(render.Describe(card))
		}
		return
	}

	var decks [2]game.Deck
	for i, path := range cfg.DeckPaths {
		decks[i], err = deckio.LoadDeck(path, pool)
		if err != nil {
			logger.Fatal("failed to load deck", zap.String("path", path), zap.Error(err))
		}
	}

	seed := cfg.Seed
	if *seedOverride != 0 {
		seed = *seedOverride
	}

	engine := game.NewEngine(rules, logger)
	engine.SetStrict(cfg.Strict)
	gs, err := engine.NewMatch(seed, [2]string{cfg.PlayerNames[0], cfg.PlayerNames[1]}, decks)
	if err != nil {
		logger.Fatal("failed to start match", zap.Error(err))
	}

	runDemoMatch(engine, gs, *maxTurns)

	snap := engine.SnapshotFor(gs, -1)
	fmt.Println(render.Snapshot(snap))
	fmt.Println(render.LogTail(snap, 30))
}

// runDemoMatch plays both seats with a greedy line: cast everything
// affordable, attack with everything, end the turn.
func runDemoMatch(engine *game.Engine, gs *game.GameState, maxTurns int) {
	for turn := 0; turn < maxTurns; turn++ {
		if _, over := engine.WinnerOf(gs); over {
			return
		}
		player := engine.CurrentPlayer(gs)

		engine.AdvancePhase(gs) // upkeep -> main
		for _, id := range gs.Players[player].ZoneIDs(ir.ZoneHand) {
			if check := engine.CanCast(gs, player, id); check.OK {
				engine.Cast(gs, player, id, nil)
			}
		}

		engine.AdvancePhase(gs) // main -> combat
		for _, id := range gs.Players[player].ZoneIDs(ir.ZoneBattlefield) {
			if check := engine.CanAttack(gs, player, id, ""); check.OK {
				engine.Attack(gs, player, id, "")
			}
		}

		engine.AdvancePhase(gs) // combat -> end
		if check := engine.EndTurn(gs); !check.OK {
			return
		}
	}
}

// initLogger builds the process logger at the configured level.
func initLogger(levelName string) (*zap.Logger, error) {
	var level zapcore.Level
	switch levelName {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
