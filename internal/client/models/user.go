// Package models defines the client-side data models of Imagen Studio.
package models

import "time"

// UserRecord is the credential record kept per registered email.
//
// ResetToken and ResetTokenExpiry are either both set or both zero. The
// expiry is an absolute instant in milliseconds since the epoch; the token
// is usable strictly before it.
type UserRecord struct {
	// Password is stored as entered. The directory is a local demo store.
	Password string `json:"password"`
	// Verified is always true for accounts created by signup.
	Verified bool `json:"verified"`

	ResetToken       string `json:"resetToken,omitempty"`
	ResetTokenExpiry int64  `json:"resetTokenExpiry,omitempty"`
}

// Directory maps email to credential record.
type Directory map[string]UserRecord

// SetReset attaches a pending reset token expiring at expiry.
func (u *UserRecord) SetReset(token string, expiry time.Time) {
	u.ResetToken = token
	u.ResetTokenExpiry = expiry.UnixMilli()
}

// ClearReset drops the pending reset token, if any.
func (u *UserRecord) ClearReset() {
	u.ResetToken = ""
	u.ResetTokenExpiry = 0
}

func (u UserRecord) HasPendingReset() bool {
	return u.ResetToken != "" && u.ResetTokenExpiry != 0
}

// ResetValidAt reports whether the pending reset token may still be used at now.
func (u UserRecord) ResetValidAt(now time.Time) bool {
	return u.HasPendingReset() && now.UnixMilli() < u.ResetTokenExpiry
}
