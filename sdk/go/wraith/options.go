package wraith

import "github.com/infraiq/wraith-go/internal/daemon"

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	socketPath   string
	toolVersion  string
	daemonBin    string
	autoSpawn    bool
	autoSpawnSet bool
	enabled      bool
	enabledSet   bool
	spawn        daemon.SpawnFunc
}

// WithSocketPath overrides the daemon socket location
// (default ~/.infraiq/wraith.sock).
func WithSocketPath(path string) Option {
	return func(c *clientConfig) { c.socketPath = path }
}

// WithToolVersion tags every event with the embedding tool's version.
func WithToolVersion(version string) Option {
	return func(c *clientConfig) { c.toolVersion = version }
}

// WithAutoSpawn controls whether a missing daemon is launched on demand.
// Default: on.
func WithAutoSpawn(on bool) Option {
	return func(c *clientConfig) {
		c.autoSpawn = on
		c.autoSpawnSet = true
	}
}

// WithEnabled forces telemetry on or off, bypassing consent resolution
// entirely. Without this option the client consults the environment kill
// switch and the user preference file.
func WithEnabled(on bool) Option {
	return func(c *clientConfig) {
		c.enabled = on
		c.enabledSet = true
	}
}

// WithDaemonBinary sets an explicit daemon executable for auto-spawn
// instead of the standard search path.
func WithDaemonBinary(path string) Option {
	return func(c *clientConfig) { c.daemonBin = path }
}

// withSpawner replaces the process-launching step. Test seam.
func withSpawner(fn daemon.SpawnFunc) Option {
	return func(c *clientConfig) { c.spawn = fn }
}
