// Package transport owns the client side of the daemon socket: a single
// lazily-dialed unix stream connection, one NDJSON record per event.
// Every operation is bounded by an explicit deadline and every failure is
// absorbed; the worst outcome is a dropped event.
package transport

import (
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/infraiq/wraith-go/internal/wire"
)

// connState tracks the connection lifecycle. Never exposed outside the
// transport.
type connState int

const (
	stateUnconnected connState = iota
	stateConnected
	stateFailed
)

const (
	defaultDialTimeout  = 50 * time.Millisecond
	defaultWriteTimeout = 100 * time.Millisecond
)

// Transport sends events to the daemon best-effort. Safe for concurrent
// use; a single lock serializes connect+send.
type Transport struct {
	socketPath   string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	log          *slog.Logger

	mu    sync.Mutex
	conn  net.Conn
	state connState
}

// New creates a transport for the given socket path. The connection is
// established on first Send.
func New(socketPath string, log *slog.Logger) *Transport {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transport{
		socketPath:   socketPath,
		dialTimeout:  defaultDialTimeout,
		writeTimeout: defaultWriteTimeout,
		log:          log,
	}
}

// Send delivers one event. It never blocks beyond the dial and write
// deadlines and never returns an error: the bool reports whether the
// record was written, for internal bookkeeping only. Any failure resets
// the connection so the next Send dials fresh — no retry, no backoff.
func (t *Transport) Send(ev wire.Event) bool {
	if err := ev.Validate(); err != nil {
		t.log.Debug("drop invalid event", "error", err)
		return false
	}
	data, err := wire.Encode(ev)
	if err != nil {
		t.log.Debug("drop unencodable event", "error", err)
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil && !t.connectLocked() {
		return false
	}

	_ = t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	if _, err := t.conn.Write(data); err != nil {
		t.log.Debug("write failed, dropping event", "event_type", string(ev.Type), "error", err)
		t.resetLocked()
		return false
	}
	return true
}

// connectLocked dials the daemon socket. Caller holds t.mu.
func (t *Transport) connectLocked() bool {
	conn, err := net.DialTimeout("unix", t.socketPath, t.dialTimeout)
	if err != nil {
		t.state = stateFailed
		t.log.Debug("connect failed", "socket", t.socketPath, "error", err)
		return false
	}
	t.conn = conn
	t.state = stateConnected
	return true
}

// resetLocked drops the connection after a failure. Caller holds t.mu.
func (t *Transport) resetLocked() {
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
	t.state = stateFailed
}

// Close releases the connection. The client treats this as optional; an
// abandoned connection is reclaimed at process exit.
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
	t.state = stateUnconnected
}
