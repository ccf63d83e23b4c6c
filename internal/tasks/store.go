package tasks

import (
	"context"
	"slices"
	"strings"

	"github.com/taskbuddy/taskbuddy/internal/common"
	"github.com/taskbuddy/taskbuddy/internal/logging"
	"github.com/taskbuddy/taskbuddy/internal/models"
)

// Store holds the task collection of the currently signed-in user.
//
// The store is bound to a user id with Bind; callers rebind on every
// session change. While unbound (empty user id) all mutations stay in
// memory only and are lost on the next reload.
//
// Every public mutation ends with an explicit persist step that rewrites
// the whole collection into the bound user's slot, so storage never lags
// the in-memory state by more than the write in flight. The store is not
// goroutine-safe: there is exactly one logical writer, the UI loop.
type Store struct {
	colls    Collections
	log      logging.Logger
	userID   string
	items    []models.Task
	nextID   int64
	watchers []func()
}

// AddRequest carries the fields of a new task. Only Title is required;
// zero values fall back to the documented defaults (status todo, category
// Personal, priority Medium, no description, no due date).
type AddRequest struct {
	Title       string
	Description string
	Status      models.Status
	Category    models.Category
	DueDate     string
	Priority    models.Priority
}

func NewStore(colls Collections, log logging.Logger) *Store {
	return &Store{colls: colls, log: log, nextID: 1}
}

// Bind switches the store to the given user's collection and reloads it.
// An empty user id unbinds the store, yielding an empty, non-persisted
// collection.
func (s *Store) Bind(ctx context.Context, userID string) error {
	s.userID = userID
	return s.Reload(ctx)
}

// Reload discards the in-memory collection and re-reads the bound user's
// slot, recomputing the id counter from the stored ids.
func (s *Store) Reload(ctx context.Context) error {
	s.items = nil
	s.nextID = 1

	if s.userID != "" {
		items, err := s.colls.Load(ctx, s.userID)
		if err != nil {
			return err
		}
		s.items = items
		s.nextID = maxID(items) + 1
	}

	s.notify()
	return nil
}

// Add validates the title, fills in defaults, assigns the next id and
// appends the task. Returns common.ErrEmptyTitle when the trimmed title
// is empty; the collection is not touched in that case.
func (s *Store) Add(ctx context.Context, req AddRequest) (models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Task{}, common.ErrEmptyTitle
	}

	t := models.Task{
		ID:          s.nextID,
		Title:       title,
		Description: models.Optional(req.Description),
		Status:      req.Status,
		Category:    req.Category,
		DueDate:     models.Optional(req.DueDate),
		Priority:    req.Priority,
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.Category == "" {
		t.Category = models.CategoryPersonal
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	s.nextID++
	s.items = append(s.items, t)
	s.persist(ctx)
	s.notify()
	return t, nil
}

// Update merges the patch into the task with the given id. Fields the
// patch leaves nil keep their values; no further validation happens.
// Returns common.ErrNotFound for an unknown id.
func (s *Store) Update(ctx context.Context, id int64, patch models.TaskPatch) error {
	i := s.index(id)
	if i < 0 {
		return common.ErrNotFound
	}

	s.items[i].Apply(patch)
	s.persist(ctx)
	s.notify()
	return nil
}

// SetStatus moves the task to the given status. Any transition is legal,
// including straight from todo to completed and back.
func (s *Store) SetStatus(ctx context.Context, id int64, status models.Status) error {
	return s.Update(ctx, id, models.TaskPatch{Status: &status})
}

// Remove deletes the task with the given id. The id is never reused for
// later tasks within this process.
func (s *Store) Remove(ctx context.Context, id int64) error {
	i := s.index(id)
	if i < 0 {
		return common.ErrNotFound
	}

	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
	s.notify()
	return nil
}

// Get looks up a task by id.
func (s *Store) Get(id int64) (models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.items[i], true
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []models.Task {
	return slices.Clone(s.items)
}

// Len reports the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.items)
}

// Watch registers fn to run after every add, update, remove and reload.
func (s *Store) Watch(fn func()) {
	s.watchers = append(s.watchers, fn)
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.items, func(t models.Task) bool { return t.ID == id })
}

// persist rewrites the bound slot with the full collection. Unbound
// stores skip the write; storage failures are logged, not surfaced, so a
// broken disk degrades to a memory-only session.
func (s *Store) persist(ctx context.Context) {
	if s.userID == "" {
		s.log.Debug(ctx, "no active session, keeping tasks in memory only")
		return
	}
	if err := s.colls.Save(ctx, s.userID, s.items); err != nil {
		s.log.Error(ctx, "failed to persist tasks", "user", s.userID, "error", err)
	}
}

func (s *Store) notify() {
	for _, fn := range s.watchers {
		fn()
	}
}

func maxID(items []models.Task) int64 {
	var m int64
	for _, t := range items {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}
