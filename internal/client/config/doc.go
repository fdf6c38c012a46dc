// Package config loads runtime configuration for the Imagen Studio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), API_KEY and IMAGEN_*.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the reset link lifetime, so it can
// be either a string like "1h" or integer nanoseconds:
//
//	{
//	  "database_dsn": "imagen-studio.db",
//	  "api_key": "...",
//	  "model": "imagen-4.0-generate-001",
//	  "app_origin": "http://localhost:5173",
//	  "reset_token_ttl": "1h",
//	  "token_source": "crypto",
//	  "log_level": "INFO"
//	}
package config
