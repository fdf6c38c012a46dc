package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

var errNoResetLink = errors.New("no reset link available")

// readSecret reads a password and returns it as a string, wiping the buffer.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Login prompts for credentials. On success the session flag is set and the
// generator screen opens.
func (a *App) Login(ctx context.Context) error {
	flow := a.state.auth
	flow.ToLogin()

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	if err := flow.SubmitLogin(ctx, email, password); err != nil {
		a.println(flow.Error())
		return err
	}

	a.println("Signed in.")
	a.navigate(ctx, "/")
	return nil
}

// Signup registers a new account and returns to the login view.
func (a *App) Signup(ctx context.Context) error {
	flow := a.state.auth
	flow.ToLogin()
	if err := flow.ToSignup(); err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}
	confirmation, err := a.readSecret("Confirm password")
	if err != nil {
		return err
	}

	if err := flow.SubmitSignup(ctx, email, password, confirmation); err != nil {
		a.println(flow.Error())
		return err
	}
	a.println(flow.Feedback())
	return nil
}

// Forgot requests a simulated reset link. The same message is printed
// whether or not the email is registered.
func (a *App) Forgot(ctx context.Context) error {
	flow := a.state.auth
	flow.ToLogin()
	if err := flow.ToForgotPassword(); err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := flow.SubmitForgot(ctx, email); err != nil {
		return err
	}

	a.println(flow.Feedback())
	if link := flow.Link(); link != "" {
		a.println("This demo does not send real emails. Simulated password reset link:")
		a.println("  " + link)
		a.println("Type 'open' to follow it, 'copy' to print it alone, 'resend' to simulate resending.")
	}
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	if err := a.state.auth.ResendLink(); err != nil {
		a.println("Request a reset link first (forgot).")
		return err
	}
	a.println(a.state.auth.Feedback())
	return nil
}

// CopyLink prints the bare reset link so it can be piped or pasted.
func (a *App) CopyLink(ctx context.Context) error {
	link := a.state.auth.Link()
	if link == "" {
		a.println("No reset link to copy.")
		return errNoResetLink
	}
	a.println(link)
	return nil
}

// Open follows a location as if it had been clicked. Without an argument it
// follows the current reset link.
func (a *App) Open(ctx context.Context, location string) error {
	if location == "" && a.state.auth != nil {
		location = a.state.auth.Link()
	}
	if location == "" {
		a.println("Usage: open <url>")
		return errNoResetLink
	}
	a.navigate(ctx, location)
	return nil
}

// Wipe deletes every account, the history and the session flag from this device.
func (a *App) Wipe(ctx context.Context) error {
	ok, err := confirm(a.reader, "This removes all accounts, history and the session from this device. Continue?", a.out)
	if err != nil || !ok {
		return err
	}
	if !a.store.Wipe(ctx) {
		a.println(common.ErrStorageUnavailable.Error())
		return common.ErrStorageUnavailable
	}
	a.println("Local data cleared.")
	a.navigate(ctx, "/")
	return nil
}

// Logout clears the session flag and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.println("Signed out.")
	a.navigate(ctx, "/")
	return nil
}
