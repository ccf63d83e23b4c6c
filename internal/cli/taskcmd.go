package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taskbuddy/taskbuddy/internal/common"
	"github.com/taskbuddy/taskbuddy/internal/models"
	"github.com/taskbuddy/taskbuddy/internal/tasks"
)

// addTask interactively collects the fields of a new task. Everything
// except the title may be left empty.
func (a *App) addTask(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	category, err := getSimpleText(a.reader, fmt.Sprintf("Enter category %v (default Personal)", models.Categories), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	dueDate, err := getSimpleText(a.reader, "Enter due date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	priority, err := getSimpleText(a.reader, fmt.Sprintf("Enter priority %v (default Medium)", models.Priorities), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	created, err := a.store.Add(ctx, tasks.AddRequest{
		Title:       title,
		Description: description,
		Category:    models.Category(category),
		DueDate:     dueDate,
		Priority:    models.Priority(priority),
	})
	if err != nil {
		fmt.Fprintln(a.out, "Could not add task:", err)
		return
	}

	fmt.Fprintln(a.out, "Added", formatTask(created))
}

func (a *App) list() {
	if !a.requireLogin() {
		return
	}
	for _, t := range a.store.All() {
		fmt.Fprintln(a.out, formatTask(t))
	}
}

func (a *App) show(args []string) {
	id, ok := a.parseID(args, "show")
	if !ok {
		return
	}

	t, found := a.store.Get(id)
	if !found {
		fmt.Fprintln(a.out, "No task with id", id)
		return
	}

	fmt.Fprintln(a.out, formatTask(t))
	if t.Description != nil {
		fmt.Fprintln(a.out, "  "+*t.Description)
	}
}

// edit prompts for each field; empty input keeps the current value and a
// single '-' clears description or due date.
func (a *App) edit(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "edit")
	if !ok {
		return
	}
	current, found := a.store.Get(id)
	if !found {
		fmt.Fprintln(a.out, "No task with id", id)
		return
	}

	var patch models.TaskPatch

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s] (empty keeps)", current.Title), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if title != "" {
		patch.Title = &title
	}

	description, err := getSimpleText(a.reader, "Description (empty keeps, '-' clears)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if description != "" {
		patch.Description = clearable(description)
	}

	category, err := getSimpleText(a.reader, fmt.Sprintf("Category [%s] (empty keeps)", current.Category), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if category != "" {
		c := models.Category(category)
		patch.Category = &c
	}

	dueDate, err := getSimpleText(a.reader, "Due date YYYY-MM-DD (empty keeps, '-' clears)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if dueDate != "" {
		patch.DueDate = clearable(dueDate)
	}

	priority, err := getSimpleText(a.reader, fmt.Sprintf("Priority [%s] (empty keeps)", current.Priority), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	if priority != "" {
		p := models.Priority(priority)
		patch.Priority = &p
	}

	if err := a.store.Update(ctx, id, patch); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return
	}

	updated, _ := a.store.Get(id)
	fmt.Fprintln(a.out, "Updated", formatTask(updated))
}

func (a *App) setStatus(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: status <id> <todo|in_progress|completed>")
		return
	}
	id, ok := a.parseID(args[:1], "status")
	if !ok {
		return
	}

	if err := a.store.SetStatus(ctx, id, models.Status(args[1])); err != nil {
		a.reportTaskError(id, err)
		return
	}
	fmt.Fprintln(a.out, "Task", id, "is now", args[1])
}

func (a *App) done(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "done")
	if !ok {
		return
	}
	if err := a.store.SetStatus(ctx, id, models.StatusCompleted); err != nil {
		a.reportTaskError(id, err)
		return
	}
	fmt.Fprintln(a.out, "Task", id, "completed.")
}

func (a *App) remove(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "rm")
	if !ok {
		return
	}
	if err := a.store.Remove(ctx, id); err != nil {
		a.reportTaskError(id, err)
		return
	}
	fmt.Fprintln(a.out, "Task", id, "removed.")
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Please log in first.")
	return false
}

func (a *App) parseID(args []string, cmd string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid task id:", args[0])
		return 0, false
	}
	return id, true
}

func (a *App) reportTaskError(id int64, err error) {
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintln(a.out, "No task with id", id)
		return
	}
	fmt.Fprintln(a.out, "error:", err)
}

// clearable maps the '-' convention onto a field-clearing patch value.
func clearable(input string) *string {
	if input == "-" {
		empty := ""
		return &empty
	}
	return &input
}

func formatTask(t models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d [%s] %s", t.ID, t.Status, t.Title)
	fmt.Fprintf(&b, " (%s, %s", t.Category, t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&b, ", due %s", *t.DueDate)
	}
	b.WriteString(")")
	return b.String()
}
