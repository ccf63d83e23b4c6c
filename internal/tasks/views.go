package tasks

import (
	"math"
	"time"

	"github.com/taskbuddy/taskbuddy/internal/models"
)

// nowFn is a test seam for the current time.
var nowFn = time.Now

// StatusBuckets partitions the collection by lifecycle state, preserving
// insertion order within each bucket.
type StatusBuckets struct {
	Todo       []models.Task
	InProgress []models.Task
	Completed  []models.Task
}

// The derived views below are pure functions over the current collection
// and are recomputed on every call; nothing is cached across mutations.

// ByStatus partitions the collection into the three status buckets.
func (s *Store) ByStatus() StatusBuckets {
	var b StatusBuckets
	for _, t := range s.items {
		switch t.Status {
		case models.StatusInProgress:
			b.InProgress = append(b.InProgress, t)
		case models.StatusCompleted:
			b.Completed = append(b.Completed, t)
		default:
			b.Todo = append(b.Todo, t)
		}
	}
	return b
}

// DueToday returns open tasks due on the current calendar date (host
// local time zone).
func (s *Store) DueToday() []models.Task {
	return s.dueFiltered(func(due, today string) bool { return due == today })
}

// Upcoming returns open tasks due strictly after today.
func (s *Store) Upcoming() []models.Task {
	return s.dueFiltered(func(due, today string) bool { return due > today })
}

// Overdue returns open tasks due strictly before today.
func (s *Store) Overdue() []models.Task {
	return s.dueFiltered(func(due, today string) bool { return due < today })
}

// CompletionPercent returns round(100 * completed / total), and 0 for an
// empty collection.
func (s *Store) CompletionPercent() int {
	if len(s.items) == 0 {
		return 0
	}
	done := 0
	for _, t := range s.items {
		if t.Status == models.StatusCompleted {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(s.items))))
}

// dueFiltered selects open tasks whose due date matches cmp against
// today. ISO dates compare correctly as strings.
func (s *Store) dueFiltered(cmp func(due, today string) bool) []models.Task {
	today := nowFn().Format(time.DateOnly)

	var out []models.Task
	for _, t := range s.items {
		if t.Status == models.StatusCompleted || t.DueDate == nil {
			continue
		}
		if cmp(*t.DueDate, today) {
			out = append(out, t)
		}
	}
	return out
}
