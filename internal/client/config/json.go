package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/imagenstudio/internal/flagx"
	"github.com/dmitrijs2005/imagenstudio/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the reset link lifetime
// either as a string like "1h" or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN   string         `json:"database_dsn"`
	APIKey        string         `json:"api_key"`
	APIBaseURL    string         `json:"api_base_url"`
	Model         string         `json:"model"`
	AppOrigin     string         `json:"app_origin"`
	ResetTokenTTL timex.Duration `json:"reset_token_ttl"`
	TokenSource   string         `json:"token_source"`
	LogLevel      *slog.Level    `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file given as -c
// or -config. Fields missing from the file keep their current value.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.APIKey, jc.APIKey)
	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.Model, jc.Model)
	setIf(&cfg.AppOrigin, jc.AppOrigin)
	setIf(&cfg.TokenSource, jc.TokenSource)
	if jc.ResetTokenTTL.Duration > 0 {
		cfg.ResetTokenTTL = jc.ResetTokenTTL.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
