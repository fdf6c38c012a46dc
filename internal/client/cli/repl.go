package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/imagenstudio/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	mode() router.View

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	Resend(ctx context.Context) error
	CopyLink(ctx context.Context) error
	Open(ctx context.Context, location string) error
	Wipe(ctx context.Context) error

	Reset(ctx context.Context) error
	Back(ctx context.Context) error

	SetPrompt(ctx context.Context, text string) error
	SetRatio(ctx context.Context, value string) error
	Generate(ctx context.Context) error
	Show(ctx context.Context) error
	History(ctx context.Context) error
	Select(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
	Save(ctx context.Context, path string) error
	Logout(ctx context.Context) error
}

const (
	authHelp      = "Available commands: login, signup, forgot, resend, copy, open [url], wipe, exit"
	resetHelp     = "Available commands: reset, back, exit"
	generatorHelp = "Available commands: prompt [text], ratio [r], generate, show, history, select <id>, clear-history, save [file], logout, exit"
)

// runREPL starts a simple read–eval–print loop for the Imagen Studio CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' according to the current screen. The rest of
// the line is passed as the argument of commands that take one. The loop
// exits on EOF, when ctx is done, or when the user types "exit" or "quit".
//
//	Auth screen:
//	  - login, signup, forgot  — fill in the matching form
//	  - resend, copy           — act on the simulated reset link
//	  - open [url]             — follow a link (the reset link by default)
//	  - wipe                   — clear all local data
//
//	Reset screen:
//	  - reset                  — enter the new password
//	  - back                   — return to login
//
//	Generator screen:
//	  - prompt [text], ratio [r], generate, show
//	  - history, select <id>, clear-history
//	  - save [file], logout
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("imagen %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil || ctx.Err() != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printlnFn(helpFor(a.mode()))
			continue
		}

		var known bool
		switch a.mode() {
		case router.ViewGenerator:
			known = dispatchGenerator(ctx, a, cmd, arg)
		case router.ViewResetPassword:
			known = dispatchReset(ctx, a, cmd)
		default:
			known = dispatchAuth(ctx, a, cmd, arg)
		}
		if !known {
			printlnFn("Unknown command:", cmd)
		}
	}
}

func helpFor(v router.View) string {
	switch v {
	case router.ViewGenerator:
		return generatorHelp
	case router.ViewResetPassword:
		return resetHelp
	default:
		return authHelp
	}
}

func dispatchAuth(ctx context.Context, a execIface, cmd, arg string) bool {
	switch cmd {
	case "login":
		_ = a.Login(ctx)
	case "signup", "register":
		_ = a.Signup(ctx)
	case "forgot":
		_ = a.Forgot(ctx)
	case "resend":
		_ = a.Resend(ctx)
	case "copy":
		_ = a.CopyLink(ctx)
	case "open":
		_ = a.Open(ctx, arg)
	case "wipe":
		_ = a.Wipe(ctx)
	default:
		return false
	}
	return true
}

func dispatchReset(ctx context.Context, a execIface, cmd string) bool {
	switch cmd {
	case "reset":
		_ = a.Reset(ctx)
	case "back", "login":
		_ = a.Back(ctx)
	default:
		return false
	}
	return true
}

func dispatchGenerator(ctx context.Context, a execIface, cmd, arg string) bool {
	switch cmd {
	case "prompt":
		_ = a.SetPrompt(ctx, arg)
	case "ratio":
		_ = a.SetRatio(ctx, arg)
	case "generate", "g":
		_ = a.Generate(ctx)
	case "show":
		_ = a.Show(ctx)
	case "history", "h":
		_ = a.History(ctx)
	case "select":
		_ = a.Select(ctx, arg)
	case "clear-history":
		_ = a.ClearHistory(ctx)
	case "save":
		_ = a.Save(ctx, arg)
	case "logout":
		_ = a.Logout(ctx)
	default:
		return false
	}
	return true
}
