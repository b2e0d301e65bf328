package transport

import (
	"bufio"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/infraiq/wraith-go/internal/wire"
)

// sink is a stub daemon: it accepts connections on a unix socket and
// records every decoded event and every accepted connection.
type sink struct {
	ln net.Listener

	mu     sync.Mutex
	events []wire.Event
	conns  []net.Conn
	nconns int
}

func newSink(t *testing.T) (*sink, string) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "wraith.sock")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &sink{ln: ln}
	go s.accept()
	t.Cleanup(s.Close)
	return s, socket
}

func (s *sink) accept() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.nconns++
		s.mu.Unlock()

		go func() {
			scanner := bufio.NewScanner(conn)
			for scanner.Scan() {
				ev, err := wire.Decode(scanner.Bytes())
				if err != nil {
					continue
				}
				s.mu.Lock()
				s.events = append(s.events, ev)
				s.mu.Unlock()
			}
		}()
	}
}

// Close shuts the listener and all accepted connections.
func (s *sink) Close() {
	_ = s.ln.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		_ = c.Close()
	}
	s.conns = nil
}

// waitEvents blocks until n events arrived or the deadline passes.
func (s *sink) waitEvents(t *testing.T, n int) []wire.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		if len(s.events) >= n {
			out := append([]wire.Event(nil), s.events...)
			s.mu.Unlock()
			return out
		}
		s.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.Fatalf("expected %d events, got %d", n, len(s.events))
	return nil
}

func (s *sink) connCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nconns
}

func testEvent(command string) wire.Event {
	return wire.Event{
		Level:     wire.LevelInfo,
		Type:      wire.ToolInvoked,
		Tool:      "migrateiq",
		Command:   command,
		Timestamp: time.Now().UTC(),
	}
}

func TestSendDelivers(t *testing.T) {
	s, socket := newSink(t)
	tr := New(socket, nil)
	defer tr.Close()

	if !tr.Send(testEvent("scan")) {
		t.Fatal("Send should report delivery to a live sink")
	}

	events := s.waitEvents(t, 1)
	if events[0].Tool != "migrateiq" || events[0].Command != "scan" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestSendWithoutDaemon(t *testing.T) {
	tr := New(filepath.Join(t.TempDir(), "missing.sock"), nil)
	defer tr.Close()

	start := time.Now()
	if tr.Send(testEvent("scan")) {
		t.Error("Send must fail when nothing listens")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Send took %v; must stay within its timeout ceiling", elapsed)
	}
}

func TestInvalidEventDoesNotTouchConnection(t *testing.T) {
	s, socket := newSink(t)
	tr := New(socket, nil)
	defer tr.Close()

	if tr.Send(wire.Event{Type: wire.ToolInvoked}) {
		t.Error("invalid event must be dropped")
	}
	if !tr.Send(testEvent("scan")) {
		t.Fatal("valid event after an invalid one must still deliver")
	}

	s.waitEvents(t, 1)
	if got := s.connCount(); got != 1 {
		t.Errorf("expected 1 connection, got %d", got)
	}
}

func TestReconnectAfterFailure(t *testing.T) {
	s, socket := newSink(t)
	tr := New(socket, nil)
	defer tr.Close()

	if !tr.Send(testEvent("first")) {
		t.Fatal("first send should deliver")
	}
	s.waitEvents(t, 1)

	// Kill the daemon. The next write eventually surfaces the broken
	// pipe; the one after dials fresh and fails.
	s.Close()
	failed := false
	for i := 0; i < 3 && !failed; i++ {
		failed = !tr.Send(testEvent("lost"))
	}
	if !failed {
		t.Fatal("sends should fail once the daemon is gone")
	}

	// Daemon comes back on the same socket; the next send reconnects.
	s2, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("relisten: %v", err)
	}
	reborn := &sink{ln: s2}
	go reborn.accept()
	t.Cleanup(reborn.Close)

	if !tr.Send(testEvent("recovered")) {
		t.Fatal("send should succeed after the daemon returns")
	}
	events := reborn.waitEvents(t, 1)
	if events[0].Command != "recovered" {
		t.Errorf("unexpected event after reconnect: %+v", events[0])
	}
}

func TestConcurrentSends(t *testing.T) {
	s, socket := newSink(t)
	tr := New(socket, nil)
	defer tr.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Send(testEvent("parallel"))
		}()
	}
	wg.Wait()

	// The lock serializes writes, so every record arrives intact.
	events := s.waitEvents(t, 10)
	for _, ev := range events {
		if ev.Command != "parallel" {
			t.Errorf("corrupted record: %+v", ev)
		}
	}
}
