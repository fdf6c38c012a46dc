package services

import (
	"context"

	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

const (
	SignupSuccessMessage = "Account created! You can now sign in."
	ResendLinkMessage    = "A new link has been simulated!"
)

// AuthView is the current screen of the signed-out area.
type AuthView string

const (
	ViewLogin          AuthView = "login"
	ViewSignup         AuthView = "signup"
	ViewForgotPassword AuthView = "forgotPassword"
	ViewResetMessage   AuthView = "resetMessage"
)

// AuthFlow holds the signed-out view state. It is never persisted; a new
// flow starts on the login view.
type AuthFlow struct {
	auth AuthService

	view     AuthView
	err      string
	feedback string
	link     string
}

func NewAuthFlow(auth AuthService) *AuthFlow {
	return &AuthFlow{auth: auth, view: ViewLogin}
}

func (f *AuthFlow) View() AuthView   { return f.view }
func (f *AuthFlow) Error() string    { return f.err }
func (f *AuthFlow) Feedback() string { return f.feedback }

// Link is the simulated reset link shown on the reset message view.
func (f *AuthFlow) Link() string { return f.link }

func (f *AuthFlow) moveTo(v AuthView) {
	f.view = v
	f.err = ""
	f.feedback = ""
}

func (f *AuthFlow) ToLogin() {
	f.moveTo(ViewLogin)
	f.link = ""
}

func (f *AuthFlow) ToSignup() error {
	if f.view != ViewLogin {
		return common.ErrInvalidTransition
	}
	f.moveTo(ViewSignup)
	return nil
}

func (f *AuthFlow) ToForgotPassword() error {
	if f.view != ViewLogin {
		return common.ErrInvalidTransition
	}
	f.moveTo(ViewForgotPassword)
	return nil
}

// SubmitLogin returns nil once the session flag is set; the caller then
// leaves the signed-out area.
func (f *AuthFlow) SubmitLogin(ctx context.Context, email, password string) error {
	if f.view != ViewLogin {
		return common.ErrInvalidTransition
	}
	f.err, f.feedback = "", ""
	if err := f.auth.Login(ctx, email, password); err != nil {
		f.err = err.Error()
		return err
	}
	return nil
}

func (f *AuthFlow) SubmitSignup(ctx context.Context, email, password, confirm string) error {
	if f.view != ViewSignup {
		return common.ErrInvalidTransition
	}
	f.err = ""
	if err := f.auth.Signup(ctx, email, password, confirm); err != nil {
		f.err = err.Error()
		return err
	}
	f.moveTo(ViewLogin)
	f.feedback = SignupSuccessMessage
	return nil
}

func (f *AuthFlow) SubmitForgot(ctx context.Context, email string) error {
	if f.view != ViewForgotPassword {
		return common.ErrInvalidTransition
	}
	res := f.auth.ForgotPassword(ctx, email)
	f.moveTo(ViewResetMessage)
	f.feedback = res.Message
	f.link = res.Link
	return nil
}

// ResendLink only acknowledges the request. No new token is issued.
func (f *AuthFlow) ResendLink() error {
	if f.view != ViewResetMessage {
		return common.ErrInvalidTransition
	}
	f.feedback = ResendLinkMessage
	return nil
}

// ResetFlow is the state of one visit to a reset link.
type ResetFlow struct {
	auth  AuthService
	token string

	status  ResetStatus
	message string
	err     string
}

// NewResetFlow starts in ResetValidating; call Validate next.
func NewResetFlow(auth AuthService, token string) *ResetFlow {
	return &ResetFlow{auth: auth, token: token, status: ResetValidating, message: "Validating reset link..."}
}

func (f *ResetFlow) Status() ResetStatus { return f.status }
func (f *ResetFlow) Message() string     { return f.message }
func (f *ResetFlow) Error() string       { return f.err }
func (f *ResetFlow) Token() string       { return f.token }

func (f *ResetFlow) Validate(ctx context.Context) ResetStatus {
	f.status, f.message = f.auth.ValidateResetToken(ctx, f.token)
	return f.status
}

// Submit sets the new password. It is only accepted while the status is
// ResetValid. Validation errors keep the form open; a token that went stale
// since Validate moves the flow to ResetInvalid.
func (f *ResetFlow) Submit(ctx context.Context, password, confirm string) error {
	if f.status != ResetValid {
		return common.ErrInvalidTransition
	}
	f.err = ""

	err := f.auth.ResetPassword(ctx, f.token, password, confirm)
	switch {
	case err == nil:
		f.status = ResetSuccess
		f.message = ResetSuccessMessage
	case isResetLookupError(err):
		f.status = ResetInvalid
		f.message = err.Error()
	default:
		f.err = err.Error()
	}
	return err
}
