// Package daemon locates the Wraith daemon and, when allowed, brings it
// up on demand. It never reports errors — only whether the daemon is
// reachable — and every step is bounded so a missing or wedged daemon
// costs the caller at most a few hundred milliseconds, once.
package daemon

import (
	"io"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

const (
	probeTimeout = 50 * time.Millisecond

	// reachableTTL is how long a successful probe is trusted, so warm-path
	// events skip the probe entirely.
	reachableTTL = 5 * time.Second

	// spawnCooldown bounds spawning to once per cold period. A daemon that
	// failed to come up will not be relaunched on every event.
	spawnCooldown = 30 * time.Second

	// readyWait bounds how long a spawn waits for the socket to appear.
	readyWait = 500 * time.Millisecond
	readyPoll = 50 * time.Millisecond
)

// SpawnFunc launches the daemon binary detached from the calling process.
// Replaceable in tests.
type SpawnFunc func(binary string, parentPID int) error

// Locator checks daemon liveness and auto-spawns it when absent.
type Locator struct {
	SocketPath string
	AutoSpawn  bool
	Binary     string    // explicit daemon binary; empty means search
	Spawn      SpawnFunc // nil means spawnDetached
	Log        *slog.Logger

	mu             sync.Mutex
	reachableUntil time.Time
	cooldownUntil  time.Time
}

// EnsureRunning reports whether the daemon is reachable, spawning it
// first if it is absent and auto-spawn is on. Never fails; a spawn
// problem reads as "daemon unavailable".
func (l *Locator) EnsureRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Before(l.reachableUntil) {
		return true
	}
	if Probe(l.SocketPath, probeTimeout) {
		l.reachableUntil = now.Add(reachableTTL)
		return true
	}
	if !l.AutoSpawn || now.Before(l.cooldownUntil) {
		return false
	}
	l.cooldownUntil = now.Add(spawnCooldown)

	if !l.spawnAndWait() {
		return false
	}
	if Probe(l.SocketPath, probeTimeout) {
		l.reachableUntil = time.Now().Add(reachableTTL)
		return true
	}
	return false
}

// Probe attempts a connect-and-close against the socket.
func Probe(socketPath string, timeout time.Duration) bool {
	if socketPath == "" {
		return false
	}
	conn, err := net.DialTimeout("unix", socketPath, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// spawnAndWait launches the daemon and waits for its socket. Caller
// holds l.mu; the wait is bounded by readyWait.
func (l *Locator) spawnAndWait() bool {
	bin := l.Binary
	if bin == "" {
		bin = FindBinary()
	}
	if bin == "" {
		l.logger().Debug("daemon binary not found")
		return false
	}

	spawn := l.Spawn
	if spawn == nil {
		spawn = spawnDetached
	}
	if err := spawn(bin, os.Getpid()); err != nil {
		l.logger().Debug("daemon spawn failed", "binary", bin, "error", err)
		return false
	}
	return waitForSocket(l.SocketPath, readyWait)
}

func (l *Locator) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FindBinary locates the wraith executable: $PATH first, then the
// per-user install dir and the system locations.
func FindBinary() string {
	if p, err := exec.LookPath("wraith"); err == nil {
		return p
	}

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".infraiq", "bin", "wraith"))
	}
	candidates = append(candidates, "/usr/local/bin/wraith", "/usr/bin/wraith")

	for _, p := range candidates {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0111 != 0 {
			return p
		}
	}
	return ""
}
