// Package common contains shared constants and sentinel errors used across
// Imagen Studio components.
package common

import "time"

// Storage keys. The values are JSON documents kept in the local kv table.
const (
	UsersStorageKey    = "imagen-ai-studio-users"
	HistoryStorageKey  = "imagen-ai-studio-history"
	LoggedInStorageKey = "imagen-ai-studio-isLoggedIn"
)

// MaxHistoryItems caps the persisted generation history.
const MaxHistoryItems = 12

// MinPasswordLength applies to signup and password reset.
const MinPasswordLength = 6

// DefaultResetTokenTTL is how long a password reset link stays usable.
const DefaultResetTokenTTL = time.Hour

// ResetPasswordPath is the route carrying the reset token as the "token" query parameter.
const ResetPasswordPath = "/reset-password"

// ResetTokenQueryParam names the query parameter of ResetPasswordPath.
const ResetTokenQueryParam = "token"
