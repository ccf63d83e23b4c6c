// Package guard decides whether a navigation target is reachable for the
// current session. The route table mirrors the application's views: the
// task views require a session, the login and signup entry points are
// guest-only.
package guard

import (
	"context"

	"github.com/taskbuddy/taskbuddy/internal/common"
)

const (
	// LoginRoute is where unauthenticated navigation gets redirected.
	LoginRoute = "login"
	// DefaultRoute is the landing view for authenticated users.
	DefaultRoute = "dashboard"
)

// Route describes one navigation target.
type Route struct {
	Name         string
	RequiresAuth bool
	GuestOnly    bool
}

var routes = map[string]Route{
	"dashboard":   {Name: "dashboard", RequiresAuth: true},
	"todo":        {Name: "todo", RequiresAuth: true},
	"in-progress": {Name: "in-progress", RequiresAuth: true},
	"completed":   {Name: "completed", RequiresAuth: true},
	"login":       {Name: "login", GuestOnly: true},
	"signup":      {Name: "signup", GuestOnly: true},
}

// Session is the slice of the accounts service the guard needs.
type Session interface {
	InitFromStorage(ctx context.Context) error
	IsLoggedIn() bool
}

// Decision is the outcome of a navigation attempt. Either Allow is true,
// or RedirectTo names the view to go to instead. Requested carries the
// originally requested view when redirecting to login, so the caller can
// come back to it after authentication.
type Decision struct {
	Allow      bool
	RedirectTo string
	Requested  string
}

type Guard struct {
	session Session
}

func New(session Session) *Guard {
	return &Guard{session: session}
}

// Known reports whether name is a navigable view.
func Known(name string) bool {
	_, ok := routes[name]
	return ok
}

// Decide evaluates a navigation to the named view. The session is
// rehydrated from storage first, so the decision never runs against a
// stale login state. Unknown views return common.ErrNotFound.
func (g *Guard) Decide(ctx context.Context, name string) (Decision, error) {
	if err := g.session.InitFromStorage(ctx); err != nil {
		return Decision{}, err
	}

	r, ok := routes[name]
	if !ok {
		return Decision{}, common.ErrNotFound
	}

	loggedIn := g.session.IsLoggedIn()
	if r.RequiresAuth && !loggedIn {
		return Decision{RedirectTo: LoginRoute, Requested: name}, nil
	}
	if r.GuestOnly && loggedIn {
		return Decision{RedirectTo: DefaultRoute}, nil
	}
	return Decision{Allow: true}, nil
}
