package main

import (
	"flag"
	"fmt"
	"os"

	"conquest/config"
	"conquest/experiments"
	"conquest/game"
	"conquest/logger"
	"conquest/mapfile"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mapPath := flag.String("map", "", "Path to a .map file, or the name of an embedded map")
	list := flag.Bool("list-maps", false, "List the embedded maps and exit")
	flag.Parse()

	if *list {
		names, err := mapfile.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	if *mapPath != "" {
		cfg.MapPath = *mapPath
	}
	m, err := loadMap(cfg.MapPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load map")
	}
	log.Info().Msgf("loaded map with %d territories and %d regions", m.Len(), len(m.Regions))

	dir, err := experiments.Run(cfg, m)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	log.Info().Msgf("finished, results in %s", dir)
}

// loadMap prefers a file on disk and falls back to the embedded maps.
func loadMap(path string) (*game.Map, error) {
	if path == "" {
		return mapfile.Default()
	}
	if _, err := os.Stat(path); err == nil {
		return mapfile.Load(path)
	}
	return mapfile.Embedded(path)
}
