package main

import (
	"context"
	"flag"
	"os"

	"github.com/Garsondee/bomb-arena/internal/config"
	"github.com/Garsondee/bomb-arena/internal/logging"
	"github.com/Garsondee/bomb-arena/internal/scoreboard"
	"github.com/Garsondee/bomb-arena/internal/telemetry"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "config file (json, toml or yaml)")
	seed := flag.Int64("seed", 0, "seed for the first round (0 = time based)")
	logLevel := flag.String("log-level", "info", "trace, debug, info, warn or error")
	dbPath := flag.String("db", "", "sqlite scoreboard file (empty = no scoreboard)")
	flag.Parse()

	log := logging.New(os.Stderr, *logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var store *scoreboard.Store
	if *dbPath != "" {
		store, err = scoreboard.Open(*dbPath, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open scoreboard")
		}
		defer store.Close()
	}

	metrics := telemetry.NewProvider()
	metrics.Install()
	defer metrics.Shutdown(context.Background())

	counter, err := telemetry.NewEventCounter()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create event counter")
	}

	a := newArena(cfg, log, store, counter)
	w, h := a.Layout(0, 0)
	ebiten.SetWindowTitle("Bomb Arena")
	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	if err := ebiten.RunGame(a); err != nil {
		log.Error().Err(err).Msg("game loop exited")
	}

	counts, err := metrics.Counts(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to collect session metrics")
		return
	}
	for _, c := range counts {
		log.Info().Str("metric", c.Metric).Str("attr", c.Attr).Int64("value", c.Value).Msg("session total")
	}
}
