package tasks

import (
	"context"
	"encoding/json"

	"github.com/taskbuddy/taskbuddy/internal/logging"
	"github.com/taskbuddy/taskbuddy/internal/models"
	"github.com/taskbuddy/taskbuddy/internal/storage"
)

// slotPrefix scopes each user's collection to its own storage key.
const slotPrefix = "tasks:"

// KVCollections implements Collections over the key-value adapter, one
// JSON document per user under "tasks:<userId>".
type KVCollections struct {
	kv  storage.KV
	log logging.Logger
}

func NewKVCollections(kv storage.KV, log logging.Logger) *KVCollections {
	return &KVCollections{kv: kv, log: log}
}

func (c *KVCollections) slot(userID string) string {
	return slotPrefix + userID
}

// Load reads and normalizes the user's stored collection. Read failures
// and malformed documents degrade to an empty collection; the next save
// overwrites whatever was there.
func (c *KVCollections) Load(ctx context.Context, userID string) ([]models.Task, error) {
	raw, err := c.kv.Get(ctx, c.slot(userID))
	if err != nil {
		c.log.Warn(ctx, "failed to read task collection, treating as empty", "user", userID, "error", err)
		return nil, nil
	}
	if raw == nil {
		return nil, nil
	}

	var records []models.TaskRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Warn(ctx, "stored task collection is malformed, treating as empty", "user", userID, "error", err)
		return nil, nil
	}

	items := make([]models.Task, len(records))
	for i, r := range records {
		items[i] = r.Normalize()
	}
	return items, nil
}

// Save serializes the whole collection into the user's slot.
func (c *KVCollections) Save(ctx context.Context, userID string, items []models.Task) error {
	if items == nil {
		items = []models.Task{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.slot(userID), raw)
}
