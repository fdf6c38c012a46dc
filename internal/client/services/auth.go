// Package services contains application services for the Imagen Studio
// client. This file defines the authentication service: login, signup,
// the simulated password reset and the device-wide session flag.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/url"
	"time"

	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/session"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/users"
	"github.com/dmitrijs2005/imagenstudio/internal/common"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
	"github.com/dmitrijs2005/imagenstudio/internal/tokenx"
)

const (
	// ResetRequestedMessage is shown after every reset request, whether or
	// not the email is registered.
	ResetRequestedMessage = "If an account with that email exists, a password reset link has been sent."
	ResetPromptMessage    = "Please enter your new password."
	ResetSuccessMessage   = "Your password has been successfully updated! You can now log in with your new password."
)

// ResetStatus is the state of a password reset page.
type ResetStatus string

const (
	ResetValidating ResetStatus = "validating"
	ResetValid      ResetStatus = "valid"
	ResetInvalid    ResetStatus = "invalid"
	ResetSuccess    ResetStatus = "success"
)

// ResetRequest is the outcome of ForgotPassword. Link is empty when no
// token was issued.
type ResetRequest struct {
	Message string
	Link    string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: check credentials and raise the session flag.
//   - Signup: validate and register a new email.
//   - ForgotPassword: issue a reset token for a known email; the message never
//     reveals whether the email is known.
//   - ValidateResetToken / ResetPassword: the reset link flow.
//   - Logout / IsLoggedIn: the device-wide session flag.
//
// Returned errors are sentinels from package common.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, password, confirm string) error
	ForgotPassword(ctx context.Context, email string) ResetRequest
	ValidateResetToken(ctx context.Context, token string) (ResetStatus, string)
	ResetPassword(ctx context.Context, token, password, confirm string) error
	Logout(ctx context.Context)
	IsLoggedIn(ctx context.Context) bool
}

type authService struct {
	users   users.Repository
	session session.Repository
	tokens  tokenx.Issuer
	log     logging.Logger

	origin string
	ttl    time.Duration
	now    func() time.Time
}

// AuthOption customizes NewAuthService.
type AuthOption func(*authService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthOption {
	return func(a *authService) { a.now = now }
}

// WithResetTTL sets how long issued reset links stay valid.
func WithResetTTL(ttl time.Duration) AuthOption {
	return func(a *authService) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithOrigin sets the scheme and host reset links are built on.
func WithOrigin(origin string) AuthOption {
	return func(a *authService) { a.origin = origin }
}

// NewAuthService constructs an AuthService over the user directory and the session flag.
func NewAuthService(u users.Repository, s session.Repository, tokens tokenx.Issuer, log logging.Logger, opts ...AuthOption) AuthService {
	a := &authService{
		users:   u,
		session: s,
		tokens:  tokens,
		log:     log.With("component", "auth"),
		ttl:     common.DefaultResetTokenTTL,
		now:     time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	u, ok := a.users.FindByEmail(ctx, email)
	if !ok || subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 0 {
		return common.ErrInvalidCredentials
	}

	if !a.session.SetLoggedIn(ctx) {
		a.log.Warn(ctx, "session flag not persisted")
	}
	a.log.Info(ctx, "logged in")
	return nil
}

func validateNewPassword(password, confirm string) error {
	if password != confirm {
		return common.ErrPasswordMismatch
	}
	if len(password) < common.MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	return nil
}

func (a *authService) Signup(ctx context.Context, email, password, confirm string) error {
	if err := validateNewPassword(password, confirm); err != nil {
		return err
	}
	if err := a.users.Create(ctx, email, password); err != nil {
		return err
	}
	a.log.Info(ctx, "account created")
	return nil
}

func (a *authService) resetLink(token string) string {
	q := url.Values{common.ResetTokenQueryParam: {token}}
	return a.origin + common.ResetPasswordPath + "?" + q.Encode()
}

func (a *authService) ForgotPassword(ctx context.Context, email string) ResetRequest {
	res := ResetRequest{Message: ResetRequestedMessage}

	dir := a.users.GetAll(ctx)
	u, ok := dir[email]
	if !ok {
		return res
	}

	token := a.tokens.Issue()
	u.SetReset(token, a.now().Add(a.ttl))
	dir[email] = u
	if !a.users.Save(ctx, dir) {
		a.log.Error(ctx, "reset token not persisted")
		return res
	}

	res.Link = a.resetLink(token)
	return res
}

func (a *authService) ValidateResetToken(ctx context.Context, token string) (ResetStatus, string) {
	if token == "" {
		return ResetInvalid, common.ErrResetTokenMissing.Error()
	}
	_, u, ok := a.users.FindByResetToken(ctx, token)
	if !ok || !u.ResetValidAt(a.now()) {
		return ResetInvalid, common.ErrInvalidResetToken.Error()
	}
	return ResetValid, ResetPromptMessage
}

// ResetPassword checks the token again at submit time, so a link that
// expired while the form was open is refused.
func (a *authService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if err := validateNewPassword(password, confirm); err != nil {
		return err
	}
	if token == "" {
		return common.ErrResetTokenMissing
	}

	email, u, ok := a.users.FindByResetToken(ctx, token)
	if !ok || !u.ResetValidAt(a.now()) {
		return common.ErrInvalidResetToken
	}

	dir := a.users.GetAll(ctx)
	u.Password = password
	u.ClearReset()
	dir[email] = u
	if !a.users.Save(ctx, dir) {
		return common.ErrStorageUnavailable
	}
	a.log.Info(ctx, "password reset")
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	if !a.session.Clear(ctx) {
		a.log.Warn(ctx, "session flag not cleared")
	}
}

func (a *authService) IsLoggedIn(ctx context.Context) bool {
	return a.session.IsLoggedIn(ctx)
}

func isResetLookupError(err error) bool {
	return errors.Is(err, common.ErrInvalidResetToken) || errors.Is(err, common.ErrResetTokenMissing)
}
