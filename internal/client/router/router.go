// Package router decides which top-level screen the client shows for a
// location.
package router

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

type View string

const (
	ViewAuth          View = "auth"
	ViewGenerator     View = "generator"
	ViewResetPassword View = "resetPassword"
)

// Route is a resolved location. Token is only set for ViewResetPassword and
// may be empty when the query carries the key without a value.
type Route struct {
	View  View
	Token string
}

const resetRouteName = "reset-password"

type Router struct {
	mux *mux.Router
}

func New() *Router {
	m := mux.NewRouter()
	m.Path(common.ResetPasswordPath).
		Queries(common.ResetTokenQueryParam, "{token}").
		Name(resetRouteName)
	return &Router{mux: m}
}

// Resolve maps a location to a screen. A signed-in session always lands on
// the generator, whatever the location. Unparseable locations fall back to
// the auth screen.
func (r *Router) Resolve(loggedIn bool, rawURL string) Route {
	if loggedIn {
		return Route{View: ViewGenerator}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Route{View: ViewAuth}
	}

	req := &http.Request{Method: http.MethodGet, URL: u, Host: u.Host}
	var m mux.RouteMatch
	if r.mux.Match(req, &m) && m.Route != nil && m.Route.GetName() == resetRouteName {
		return Route{View: ViewResetPassword, Token: m.Vars["token"]}
	}
	return Route{View: ViewAuth}
}
