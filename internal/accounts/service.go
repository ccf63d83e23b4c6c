// Package accounts implements the user directory and the active session.
//
// The directory is an append-only list of accounts stored as one JSON
// document under the "accounts" key; the session is a single redacted
// account stored under "currentSession". An empty directory is seeded
// with a demo account so the application is usable right after install.
package accounts

import (
	"context"

	"github.com/taskbuddy/taskbuddy/internal/models"
)

// Service exposes directory and session operations to the UI layer.
//
// Signup and Login return the redacted account they establish a session
// for; failures are reported as common.ErrDuplicateEmail and
// common.ErrInvalidCredentials, matched with errors.Is.
type Service interface {
	// List returns all stored accounts, seeding the demo account into an
	// empty directory first.
	List(ctx context.Context) ([]models.Account, error)

	// Signup registers a new account and signs it in. Email uniqueness is
	// case-insensitive. When name is blank it is derived from the email
	// local part.
	Signup(ctx context.Context, email, password, name string) (models.User, error)

	// Login signs in the account matching email (case-insensitive) and
	// password (exact).
	Login(ctx context.Context, email, password string) (models.User, error)

	// Logout clears the session, in memory and in storage.
	Logout(ctx context.Context) error

	// InitFromStorage re-reads the persisted session into memory. It must
	// run at least once before the first IsLoggedIn/Current call of a
	// process, and before every navigation decision.
	InitFromStorage(ctx context.Context) error

	// IsLoggedIn reports whether a session is present.
	IsLoggedIn() bool

	// Current returns the signed-in user, if any.
	Current() (models.User, bool)
}
