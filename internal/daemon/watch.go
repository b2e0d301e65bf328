package daemon

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// waitForSocket blocks until the socket file exists or the deadline
// passes. It watches the socket's directory with fsnotify and falls back
// to polling when a watch cannot be established.
func waitForSocket(socketPath string, wait time.Duration) bool {
	deadline := time.Now().Add(wait)
	if socketExists(socketPath) {
		return true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pollForSocket(socketPath, deadline)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(socketPath)); err != nil {
		return pollForSocket(socketPath, deadline)
	}

	// The socket may have appeared between the stat and the watch.
	if socketExists(socketPath) {
		return true
	}

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			return socketExists(socketPath)

		case event, ok := <-watcher.Events:
			if !ok {
				return pollForSocket(socketPath, deadline)
			}
			if event.Has(fsnotify.Create) && event.Name == socketPath {
				return true
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return pollForSocket(socketPath, deadline)
			}
		}
	}
}

// pollForSocket is the fsnotify fallback: short-interval stat polling
// until the deadline.
func pollForSocket(socketPath string, deadline time.Time) bool {
	for time.Now().Before(deadline) {
		if socketExists(socketPath) {
			return true
		}
		time.Sleep(readyPoll)
	}
	return socketExists(socketPath)
}

func socketExists(socketPath string) bool {
	_, err := os.Stat(socketPath)
	return err == nil
}
