package dirs

import (
	"fmt"
	"os"
	"path/filepath"
)

// dirPerm is the permission for client-managed directories.
const dirPerm = 0750

// Layout describes the on-disk layout of the InfraIQ runtime directory.
// Everything the client touches lives under Root (~/.infraiq by default).
type Layout struct {
	Root string
}

// Default resolves the layout rooted at ~/.infraiq.
func Default() (Layout, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return Layout{Root: filepath.Join(home, ".infraiq")}, nil
}

// Socket returns the path of the daemon's unix socket.
func (l Layout) Socket() string {
	return filepath.Join(l.Root, "wraith.sock")
}

// ConsentFile returns the path of the user preference file (config.json).
func (l Layout) ConsentFile() string {
	return filepath.Join(l.Root, "config.json")
}

// SettingsFile returns the path of the optional client settings file.
func (l Layout) SettingsFile() string {
	return filepath.Join(l.Root, "wraith.yaml")
}

// InstallIDFile returns the path of the persisted installation ID.
func (l Layout) InstallIDFile() string {
	return filepath.Join(l.Root, "installation_id")
}

// BinDir returns the per-user binary directory searched for the daemon.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, "bin")
}

// LogDir returns the directory for client diagnostic logs.
func (l Layout) LogDir() string {
	return filepath.Join(l.Root, "logs")
}

// LogFile returns the path of the client diagnostic log.
func (l Layout) LogFile() string {
	return filepath.Join(l.LogDir(), "wraith-client.log")
}

// Ensure creates the runtime directories. Idempotent.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, l.LogDir()} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
