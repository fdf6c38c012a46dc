package config

import (
	"log/slog"
	"time"

	"github.com/dmitrijs2005/imagenstudio/internal/client/client"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
	"github.com/dmitrijs2005/imagenstudio/internal/tokenx"
)

// Config holds runtime settings for the Imagen Studio CLI.
//
// Fields:
//   - DatabaseDSN: SQLite file holding users, history and session, or
//     "memory" for a throwaway store.
//   - APIKey: credential for the image generation API. Empty is allowed at
//     startup; generation then fails with a configuration error.
//   - APIBaseURL, Model: where generation requests go.
//   - AppOrigin: scheme and host that simulated reset links are built on.
//   - ResetTokenTTL: lifetime of a reset link.
//   - TokenSource: "crypto" or "math", see tokenx.New.
//   - LogLevel: slog level name.
type Config struct {
	DatabaseDSN   string        `env:"IMAGEN_DATABASE_DSN"`
	APIKey        string        `env:"API_KEY"`
	APIBaseURL    string        `env:"IMAGEN_API_BASE_URL"`
	Model         string        `env:"IMAGEN_MODEL"`
	AppOrigin     string        `env:"IMAGEN_APP_ORIGIN"`
	ResetTokenTTL time.Duration `env:"IMAGEN_RESET_TOKEN_TTL"`
	TokenSource   string        `env:"IMAGEN_TOKEN_SOURCE"`
	LogLevel      slog.Level    `env:"IMAGEN_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "imagen-studio.db"
	c.APIKey = ""
	c.APIBaseURL = client.DefaultAPIBaseURL
	c.Model = client.DefaultModel
	c.AppOrigin = "http://localhost:5173"
	c.ResetTokenTTL = common.DefaultResetTokenTTL
	c.TokenSource = tokenx.SourceCrypto
	c.LogLevel = slog.LevelWarn
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
