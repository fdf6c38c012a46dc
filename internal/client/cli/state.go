package cli

import (
	"context"

	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/client/router"
	"github.com/dmitrijs2005/imagenstudio/internal/client/services"
)

// DefaultPrompt is the prompt the generator screen opens with.
const DefaultPrompt = "A photorealistic image of a majestic lion wearing a crown, sitting on a throne in a lush jungle, sunrise"

// appState is everything the screens show. It is owned by App and only
// changed by REPL commands; persisted parts (session, users, history) are
// re-read from storage on navigation.
type appState struct {
	location string
	route    router.Route

	auth  *services.AuthFlow
	reset *services.ResetFlow

	prompt    string
	imageURL  string
	ratio     models.AspectRatio
	lastError string
	history   []models.HistoryItem
}

func newAppState() *appState {
	return &appState{
		route:  router.Route{View: router.ViewAuth},
		prompt: DefaultPrompt,
		ratio:  models.DefaultAspectRatio,
	}
}

// navigate resolves location against the session flag and enters the
// resulting screen.
func (a *App) navigate(ctx context.Context, location string) {
	s := a.state
	s.location = location
	s.route = a.router.Resolve(a.authService.IsLoggedIn(ctx), location)
	s.reset = nil

	switch s.route.View {
	case router.ViewGenerator:
		s.auth = nil
		s.prompt = DefaultPrompt
		s.ratio = models.DefaultAspectRatio
		s.imageURL = ""
		s.lastError = ""
		s.history = a.generator.History(ctx)

	case router.ViewResetPassword:
		s.auth = nil
		s.reset = services.NewResetFlow(a.authService, s.route.Token)
		a.println(s.reset.Message())
		s.reset.Validate(ctx)
		a.println(s.reset.Message())
		if s.reset.Status() != services.ResetValid {
			a.println("Type 'back' to return to login.")
		}

	default:
		s.auth = services.NewAuthFlow(a.authService)
		s.history = nil
		s.imageURL = ""
	}
}

// mode is the screen the REPL dispatches commands for.
func (a *App) mode() router.View {
	return a.state.route.View
}

func (a *App) getStatus() string {
	s := a.state
	switch s.route.View {
	case router.ViewGenerator:
		return "(generator " + string(s.ratio) + ")"
	case router.ViewResetPassword:
		return "(reset " + string(s.reset.Status()) + ")"
	default:
		return "(" + string(s.auth.View()) + ")"
	}
}
