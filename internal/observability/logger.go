package observability

import (
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs cfg as the global logger and tags every line with app.
func InitLogger(app string, cfg logging.Config) zerolog.Logger {
	logging.Apply(cfg)
	logger := log.Logger.With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
