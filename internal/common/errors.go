package common

import "errors"

// The error texts double as the messages shown to the user, so keep them
// human-readable. Callers should match with errors.Is.
var (
	// Validation errors.
	ErrPasswordMismatch = errors.New("Passwords do not match.")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters long.")
	ErrEmailTaken       = errors.New("An account with this email already exists.")
	ErrEmptyPrompt      = errors.New("Please enter a prompt.")
	ErrInvalidRatio     = errors.New("Unsupported aspect ratio.")

	// Lookup errors. Deliberately vague.
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrResetTokenMissing  = errors.New("Password reset token not found.")
	ErrInvalidResetToken  = errors.New("Invalid or expired password reset link. Please request a new one.")

	// Flow errors.
	ErrGenerationInFlight = errors.New("An image is already being generated.")
	ErrInvalidTransition  = errors.New("action not available in the current view")

	// Storage errors. Surfaced generically, the cause is only logged.
	ErrStorageUnavailable = errors.New("An error occurred. Please try again.")
)
