package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/taskbuddy/taskbuddy/internal/filex"
)

// export writes the signed-in user's tasks to a JSON file under exports/.
// File names carry a uuid so repeated exports never clobber each other.
func (a *App) export(ctx context.Context) {
	u, ok := a.accounts.Current()
	if !ok {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}

	dir, err := filex.EnsureSubDir("exports")
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	data, err := json.MarshalIndent(a.store.All(), "", "  ")
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", u.Name, uuid.NewString()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	a.log.Info(ctx, "exported tasks", "user", u.ID, "path", path)
	fmt.Fprintln(a.out, "Exported", a.store.Len(), "tasks to", path)
}
