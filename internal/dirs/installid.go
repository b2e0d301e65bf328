package dirs

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// InstallationID returns the persistent per-installation identifier,
// generating and persisting a new one on first use. It never fails:
// if the ID cannot be persisted, the freshly generated value is still
// returned and a new one is minted on the next run.
func InstallationID(l Layout) string {
	path := l.InstallIDFile()

	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := uuid.NewString()
	if err := l.Ensure(); err == nil {
		_ = os.WriteFile(path, []byte(id), 0600)
	}
	return id
}
