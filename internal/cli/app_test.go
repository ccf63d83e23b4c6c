package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbuddy/taskbuddy/internal/accounts"
	"github.com/taskbuddy/taskbuddy/internal/guard"
	"github.com/taskbuddy/taskbuddy/internal/logging"
	"github.com/taskbuddy/taskbuddy/internal/models"
	"github.com/taskbuddy/taskbuddy/internal/tasks"
)

// memKV is an in-memory storage.KV for app tests.
type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// newTestApp wires a full App over in-memory storage, reading the given
// input lines instead of stdin.
func newTestApp(kv *memKV, lines ...string) (*App, *bytes.Buffer) {
	log := logging.NewTextLogger(io.Discard, "error")
	acc := accounts.NewService(kv, log)
	store := tasks.NewStore(tasks.NewKVCollections(kv, log), log)

	var out bytes.Buffer
	return &App{
		log:      log,
		accounts: acc,
		store:    store,
		guard:    guard.New(acc),
		reader:   bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:      &out,
		view:     guard.LoginRoute,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = old })
}

func TestRun_LoginAddListLogout(t *testing.T) {
	stubPassword(t, "123")

	app, out := newTestApp(newMemKV(),
		"login",
		"student@taskbuddy.edu",
		"add",
		"Write spec", // title
		"",           // description
		"",           // category
		"",           // due date
		"",           // priority
		"list",
		"logout",
		"exit",
	)

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Welcome, student!")
	assert.Contains(t, got, "#1 [todo] Write spec (Personal, Medium)")
	assert.Contains(t, got, "Signed out.")
	assert.Contains(t, got, "Bye!")
}

func TestRun_WrongPasswordReportsFailure(t *testing.T) {
	stubPassword(t, "not-it")

	app, out := newTestApp(newMemKV(),
		"login",
		"student@taskbuddy.edu",
		"exit",
	)

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Login failed: invalid email or password")
}

func TestRun_ResumesPersistedSession(t *testing.T) {
	kv := newMemKV()
	stubPassword(t, "123")

	first, _ := newTestApp(kv, "login", "student@taskbuddy.edu", "exit")
	require.NoError(t, first.Run(context.Background()))

	// A fresh app over the same storage starts signed in on the dashboard.
	second, out := newTestApp(kv, "exit")
	require.NoError(t, second.Run(context.Background()))

	assert.Equal(t, guard.DefaultRoute, second.view)
	assert.Contains(t, out.String(), "Completion: 0%")
}

func TestGoTo_GuestIsBouncedToLoginThenReturned(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(newMemKV(), "student@taskbuddy.edu")
	stubPassword(t, "123")

	app.goTo(ctx, "completed")

	assert.Equal(t, "login", app.view)
	assert.Equal(t, "completed", app.pending)
	assert.Contains(t, out.String(), "Please log in first.")

	// Logging in lands on the view originally asked for.
	app.login(ctx)
	assert.Equal(t, "completed", app.view)
	assert.Empty(t, app.pending)
}

func TestGoTo_SignedInUserSkipsGuestViews(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(newMemKV(), "student@taskbuddy.edu")
	stubPassword(t, "123")
	app.login(ctx)

	app.goTo(ctx, "login")
	assert.Equal(t, "dashboard", app.view)

	app.goTo(ctx, "signup")
	assert.Equal(t, "dashboard", app.view)
}

func TestGoTo_UnknownView(t *testing.T) {
	app, out := newTestApp(newMemKV())

	app.goTo(context.Background(), "settings")

	assert.Contains(t, out.String(), "Unknown view: settings")
	assert.Equal(t, "login", app.view, "view unchanged on unknown target")
}

func TestTaskCommands_RequireLogin(t *testing.T) {
	app, out := newTestApp(newMemKV())

	app.list()
	app.addTask(context.Background())

	assert.Contains(t, out.String(), "Please log in first.")
	assert.Equal(t, 0, app.store.Len())
}

func TestStatusCommand_UpdatesTask(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(newMemKV(), "student@taskbuddy.edu")
	stubPassword(t, "123")
	app.login(ctx)

	created, err := app.store.Add(ctx, tasks.AddRequest{Title: "move me"})
	require.NoError(t, err)

	app.setStatus(ctx, []string{"1", "in_progress"})
	got, _ := app.store.Get(created.ID)
	assert.Equal(t, models.StatusInProgress, got.Status)

	app.setStatus(ctx, []string{"99", "completed"})
	assert.Contains(t, out.String(), "No task with id 99")
}

func TestRemoveCommand_InvalidID(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(newMemKV(), "student@taskbuddy.edu")
	stubPassword(t, "123")
	app.login(ctx)

	app.remove(ctx, []string{"banana"})
	assert.Contains(t, out.String(), "Invalid task id: banana")

	app.remove(ctx, nil)
	assert.Contains(t, out.String(), "Usage: rm <id>")
}

// chdir changes the working directory for the duration of the test,
// standing in for t.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestExport_WritesUserTasksAsJSON(t *testing.T) {
	chdir(t, t.TempDir())

	ctx := context.Background()
	app, out := newTestApp(newMemKV(), "student@taskbuddy.edu")
	stubPassword(t, "123")
	app.login(ctx)

	_, err := app.store.Add(ctx, tasks.AddRequest{Title: "exported", DueDate: "2026-12-24"})
	require.NoError(t, err)

	app.export(ctx)
	assert.Contains(t, out.String(), "Exported 1 tasks to")

	matches, err := filepath.Glob(filepath.Join("exports", "student-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	var exported []models.Task
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "exported", exported[0].Title)
}

func TestExport_RequiresLogin(t *testing.T) {
	app, out := newTestApp(newMemKV())

	app.export(context.Background())
	assert.Contains(t, out.String(), "Please log in first.")
}

func TestStatusLine_ReflectsUserAndView(t *testing.T) {
	ctx := context.Background()
	app, _ := newTestApp(newMemKV(), "student@taskbuddy.edu")

	assert.Equal(t, "(@ login)", app.status())

	stubPassword(t, "123")
	app.login(ctx)
	assert.Equal(t, "(student @ dashboard)", app.status())
}
