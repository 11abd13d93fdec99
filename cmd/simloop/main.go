// Package main provides the headless simulation driver. It wires together
// configuration, logging, content catalogs, and the engine, then pumps the
// tick loop for a configured number of ticks and prints the run summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/riftward/riftward/internal/config"
	"github.com/riftward/riftward/internal/game/ability"
	"github.com/riftward/riftward/internal/game/enemy"
	"github.com/riftward/riftward/internal/game/event"
	"github.com/riftward/riftward/internal/game/item"
	"github.com/riftward/riftward/internal/game/rng"
	"github.com/riftward/riftward/internal/game/ruleset"
	"github.com/riftward/riftward/internal/game/sim"
	"github.com/riftward/riftward/internal/game/upgrade"
	"github.com/riftward/riftward/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty = defaults)")
	showLog := flag.Bool("log", false, "print the combat log while simulating")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting riftward simulation",
		zap.Int64("seed", cfg.Driver.Seed),
		zap.Int("ticks", cfg.Driver.Ticks),
		zap.String("class", cfg.Driver.Class),
	)

	content, err := loadContent(cfg.Content, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	var src rng.Source
	if cfg.Driver.Seed != 0 {
		src = rng.NewSeededSource(cfg.Driver.Seed)
	} else {
		src = rng.NewCryptoSource()
	}

	engine, err := sim.New(sim.Config{
		TickInterval:             cfg.Simulation.TickInterval,
		PlayerAttackIntervalBase: cfg.Simulation.PlayerAttackInterval,
		DoTSubTickEvery:          cfg.Simulation.DoTSubTickEvery,
		BossSubstage:             cfg.Simulation.BossSubstage,
		VictoryPauseTicks:        cfg.Simulation.VictoryPauseTicks,
		StartingCoins:            cfg.Simulation.StartingCoins,
		EventChance:              cfg.Simulation.EventChance,
		BossSpecialEvery:         cfg.Simulation.BossSpecialEvery,
		ScriptInstructionLimit:   cfg.Content.ScriptInstructionLimit,
	}, content, logger, src)
	if err != nil {
		logger.Fatal("building engine", zap.Error(err))
	}

	engine.StartRun(cfg.Driver.Class)
	drain(engine, *showLog)

	for tick := 0; tick < cfg.Driver.Ticks; tick++ {
		engine.Step()
		autoplay(engine)
		drain(engine, *showLog)
		if engine.Phase() == sim.GameOver {
			engine.Evolve()
		}
	}

	run := engine.Run()
	logger.Info("simulation finished",
		zap.String("phase", engine.Phase().String()),
		zap.Int("stage", run.Stage),
		zap.Int("substage", run.SubStage),
		zap.Float64("coins", run.Coins),
		zap.Int("lineage", run.LineageCount),
		zap.Int("ascensions", run.AscensionCount),
		zap.Float64("evolveBonus", engine.EvolveBonus()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// autoplay is a minimal strategy: greedily level the cheapest core upgrade,
// answer events with their first option, and ascend after a win.
func autoplay(e *sim.Engine) {
	switch e.Phase() {
	case sim.Event:
		if ev := e.PendingEvent(); ev != nil {
			e.ChooseEventOption(ev.Options[0].ID)
		}
	case sim.GameWon:
		e.Ascend()
	case sim.Playing:
		cheapest, bestCost := "", 0.0
		for _, u := range e.Upgrades().Catalog().All() {
			cost, ok := e.Upgrades().NextCost(u.ID)
			if !ok || cost > e.Run().Coins {
				continue
			}
			if cheapest == "" || cost < bestCost {
				cheapest, bestCost = u.ID, cost
			}
		}
		if cheapest != "" {
			e.BuyUpgrade(cheapest)
		}
	}
}

func drain(e *sim.Engine, show bool) {
	lines := e.DrainLog()
	e.DrainCues()
	if !show {
		return
	}
	for _, l := range lines {
		fmt.Printf("[%s] %s\n", l.Category, l.Message)
	}
}

// loadContent builds the engine catalogs, reading YAML directories where
// configured and falling back to built-ins elsewhere.
func loadContent(cc config.ContentConfig, logger *zap.Logger) (sim.Content, error) {
	var content sim.Content
	var err error

	classes := ruleset.DefaultClasses()
	if cc.ClassesDir != "" {
		if classes, err = ruleset.LoadClasses(cc.ClassesDir); err != nil {
			return content, err
		}
	}
	realms := ruleset.DefaultRealms()
	if cc.RealmsDir != "" {
		if realms, err = ruleset.LoadRealms(cc.RealmsDir); err != nil {
			return content, err
		}
	}
	content.Rules = ruleset.NewRegistry(classes, realms, logger)

	if cc.UpgradesDir != "" {
		if content.Upgrades, err = upgrade.LoadCatalog(cc.UpgradesDir); err != nil {
			return content, err
		}
	}
	if cc.ItemsDir != "" {
		if content.Items, err = item.LoadCatalog(cc.ItemsDir); err != nil {
			return content, err
		}
	}
	if cc.EnemiesDir != "" {
		if content.Enemies, err = enemy.LoadCatalog(cc.EnemiesDir); err != nil {
			return content, err
		}
	}
	if cc.EventsDir != "" {
		if content.Events, err = event.LoadCatalog(cc.EventsDir); err != nil {
			return content, err
		}
	}
	if cc.AbilitiesDir != "" {
		if content.Abilities, err = ability.LoadCatalog(cc.AbilitiesDir); err != nil {
			return content, err
		}
	} else if content.Abilities, err = ability.NewCatalog(ability.DefaultAbilities()); err != nil {
		return content, err
	}
	return content, nil
}
