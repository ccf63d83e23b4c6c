// Package tasks implements the task store: one signed-in user's ordered
// task collection, its mutations, and the derived views computed over it.
package tasks

import (
	"context"

	"github.com/taskbuddy/taskbuddy/internal/models"
)

// Collections loads and saves one user's task collection. Implementations
// decide how user ids map onto storage locations; the store itself never
// sees a storage key.
type Collections interface {
	// Load returns the user's tasks, normalized. A missing or unreadable
	// collection loads as empty, never as an error the caller must handle
	// specially.
	Load(ctx context.Context, userID string) ([]models.Task, error)

	// Save replaces the user's stored collection wholesale.
	Save(ctx context.Context, userID string, items []models.Task) error
}
