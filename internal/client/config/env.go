package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with the environment. Unset variables leave the
// field alone.
//
// Variables: API_KEY, IMAGEN_DATABASE_DSN, IMAGEN_API_BASE_URL, IMAGEN_MODEL,
// IMAGEN_APP_ORIGIN, IMAGEN_RESET_TOKEN_TTL, IMAGEN_TOKEN_SOURCE,
// IMAGEN_LOG_LEVEL.
//
// Panics when a variable is set to a value of the wrong type.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(fmt.Errorf("failed to parse environment: %w", err))
	}
}
