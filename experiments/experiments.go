package experiments

import (
	"errors"
	"fmt"
	"sync"

	"conquest/config"
	"conquest/engine"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/meta"

	"github.com/rs/zerolog/log"
)

// Simulate plays cfg.Games games in which every configured player is an AI.
// Game i uses seed cfg.Seed+i, so a run is reproducible whatever the
// scheduling of the workers.
func Simulate(cfg *config.Config, m *game.Map) ([]metrics.GameRecord, error) {
	rules, err := game.NewRules(cfg.Rules.MaxAttackArmies, cfg.Rules.MaxDefendArmies)
	if err != nil {
		return nil, err
	}

	records := make([]metrics.GameRecord, cfg.Games)
	errs := make([]error, cfg.Games)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(meta.GO_ROUTINES, cfg.Games); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i], errs[i] = runGame(cfg, m, rules, i)
			}
		}()
	}

	log.Info().Msgf("starting %d games with %d players...", cfg.Games, len(cfg.Players))
	for i := 0; i < cfg.Games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	log.Info().Msgf("completed %d games", cfg.Games)
	return records, nil
}

func runGame(cfg *config.Config, m *game.Map, rules game.Rules, i int) (metrics.GameRecord, error) {
	seed := cfg.Seed + uint64(i)
	e := engine.New(m, rules,
		engine.WithSeed(seed),
		engine.WithMaxRounds(cfg.MaxRounds),
		engine.WithMetrics(metrics.NewCollector()),
	)
	for _, p := range cfg.Players {
		e.AddPlayer(p.Name, true)
	}
	if err := e.Start(); err != nil {
		return metrics.GameRecord{}, fmt.Errorf("game %d: %w", i+1, err)
	}

	record := metrics.GameRecord{
		ID:         i + 1,
		Seed:       seed,
		GameMetric: e.Metrics(),
	}
	winner := record.Winner
	if winner == "" {
		winner = "none"
	}
	log.Info().Msgf("completed game %d after %d rounds with winner: %s", i+1, record.Rounds, winner)
	return record, nil
}

// Run simulates and stores the game records under cfg.OutputDir.
func Run(cfg *config.Config, m *game.Map) (string, error) {
	records, err := Simulate(cfg, m)
	if err != nil {
		return "", fmt.Errorf("failed to simulate: %w", err)
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "simulation")
	if err != nil {
		return "", err
	}
	err = writer.WriteGameRecords(records)
	if err != nil {
		return "", err
	}
	log.Info().Msgf("stored game records in %s", writer.Dir())
	return writer.Dir(), nil
}
