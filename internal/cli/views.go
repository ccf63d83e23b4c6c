package cli

import (
	"context"
	"fmt"

	"github.com/taskbuddy/taskbuddy/internal/models"
)

func (a *App) open(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: open <dashboard|todo|in-progress|completed|login|signup>")
		return
	}
	a.goTo(ctx, args[0])
}

// goTo routes a navigation attempt through the guard and renders whatever
// view it lands on. A bounce to login remembers the requested view so a
// later login can return to it.
func (a *App) goTo(ctx context.Context, name string) {
	d, err := a.guard.Decide(ctx, name)
	if err != nil {
		fmt.Fprintln(a.out, "Unknown view:", name)
		return
	}

	if !d.Allow {
		if d.Requested != "" {
			a.pending = d.Requested
			fmt.Fprintln(a.out, "Please log in first.")
		}
		name = d.RedirectTo
	}

	a.view = name
	a.render(ctx)
}

func (a *App) render(_ context.Context) {
	switch a.view {
	case "dashboard":
		a.dashboard()
	case "todo":
		a.bucket("To do", a.store.ByStatus().Todo)
	case "in-progress":
		a.bucket("In progress", a.store.ByStatus().InProgress)
	case "completed":
		a.bucket("Completed", a.store.ByStatus().Completed)
	case "signup":
		fmt.Fprintln(a.out, "Type 'signup' to create an account.")
	default: // login
		fmt.Fprintln(a.out, "Type 'login' to sign in, or 'open signup' to create an account.")
	}
}

func (a *App) dashboard() {
	fmt.Fprintf(a.out, "Completion: %d%% (%d tasks)\n", a.store.CompletionPercent(), a.store.Len())
	a.section("Due today", a.store.DueToday())
	a.section("Upcoming", a.store.Upcoming())
	a.section("Overdue", a.store.Overdue())
}

func (a *App) bucket(heading string, items []models.Task) {
	fmt.Fprintf(a.out, "%s (%d)\n", heading, len(items))
	for _, t := range items {
		fmt.Fprintln(a.out, "  "+formatTask(t))
	}
}

func (a *App) section(heading string, items []models.Task) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(a.out, "%s:\n", heading)
	for _, t := range items {
		fmt.Fprintln(a.out, "  "+formatTask(t))
	}
}
