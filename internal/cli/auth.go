package cli

import (
	"context"
	"fmt"

	"github.com/taskbuddy/taskbuddy/internal/common"
	"github.com/taskbuddy/taskbuddy/internal/guard"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to the interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// signup prompts for the new account's details and signs it up. A
// successful signup establishes the session right away.
func (a *App) signup(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	password, err := getPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter display name (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	u, err := a.accounts.Signup(ctx, email, string(password), name)
	if err != nil {
		fmt.Fprintln(a.out, "Signup failed:", err)
		return
	}

	a.afterLogin(ctx, u.ID, u.Name)
}

// login prompts for credentials and signs in.
func (a *App) login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	password, err := getPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer common.WipeByteArray(password)

	u, err := a.accounts.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return
	}

	a.afterLogin(ctx, u.ID, u.Name)
}

// afterLogin rebinds the task store to the new session and lands on the
// view the user originally asked for, or the dashboard.
func (a *App) afterLogin(ctx context.Context, userID, name string) {
	if err := a.store.Bind(ctx, userID); err != nil {
		a.log.Error(ctx, "failed to load tasks", "user", userID, "error", err)
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", name)

	target := a.pending
	a.pending = ""
	if target == "" {
		target = guard.DefaultRoute
	}
	a.goTo(ctx, target)
}

// logout clears the session and unbinds the task store.
func (a *App) logout(ctx context.Context) {
	if err := a.accounts.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if err := a.store.Bind(ctx, ""); err != nil {
		a.log.Error(ctx, "failed to reset task store", "error", err)
	}
	a.view = guard.LoginRoute
	fmt.Fprintln(a.out, "Signed out.")
}
