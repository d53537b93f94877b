package main

import (
	"flag"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/server"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "cmd/bitsd/config.toml", "bitsd config.toml")
	flag.Parse()

	logCfg := logging.DefaultConfig(logging.ProfileRuntime)
	logging.ApplyEnvOverrides(&logCfg)
	logger := observability.InitLogger("bitsd", logCfg)

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("bitsd config")
	}
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logCfg.Level = lvl
		logging.ApplyEnvOverrides(&logCfg)
		logger = observability.InitLogger(cfg.Name, logCfg)
	}

	srv := server.New(cfg, logger)
	logger.Info().Str("name", cfg.Name).Str("addr", cfg.Addr).Msg("bitsd starting")
	if err := srv.Serve(); err != nil {
		logger.Fatal().Err(err).Msg("bitsd stopped")
	}
}
