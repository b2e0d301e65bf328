package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wraith.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `
socket_path: /run/wraith/wraith.sock
auto_spawn: false
daemon_bin: /opt/infraiq/wraith
debug: true
`)
	s := Load(path)
	if s.SocketPath != "/run/wraith/wraith.sock" {
		t.Errorf("SocketPath = %q", s.SocketPath)
	}
	if s.AutoSpawn == nil || *s.AutoSpawn {
		t.Error("AutoSpawn should be explicit false")
	}
	if s.DaemonBin != "/opt/infraiq/wraith" {
		t.Errorf("DaemonBin = %q", s.DaemonBin)
	}
	if !s.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoadAutoSpawnUnset(t *testing.T) {
	s := Load(writeSettings(t, "socket_path: /tmp/w.sock\n"))
	if s.AutoSpawn != nil {
		t.Error("absent auto_spawn must stay nil, not default to false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if s != (Settings{}) {
		t.Errorf("missing file should yield zero settings, got %+v", s)
	}
	if s := Load(""); s != (Settings{}) {
		t.Errorf("empty path should yield zero settings, got %+v", s)
	}
}

func TestLoadMalformed(t *testing.T) {
	s := Load(writeSettings(t, "socket_path: [unterminated"))
	if s != (Settings{}) {
		t.Errorf("malformed file should yield zero settings, got %+v", s)
	}
}
