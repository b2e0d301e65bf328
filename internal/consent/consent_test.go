package consent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write prefs: %v", err)
	}
	return path
}

func TestEnvOptOutValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"0", true},
		{"false", true},
		{"FALSE", true},
		{"no", true},
		{"off", true},
		{" Off ", true},
		{"", false},
		{"1", false},
		{"true", false},
		{"yes", false},
		{"banana", false},
	}
	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(EnvVar, tt.value)
			if got := EnvOptOut(); got != tt.want {
				t.Errorf("EnvOptOut() with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolvePreferenceFile(t *testing.T) {
	t.Setenv(EnvVar, "")

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"opted out", `{"telemetry": false}`, false},
		{"opted in", `{"telemetry": true}`, true},
		{"no telemetry key", `{"other": 42}`, true},
		{"malformed json", `{telemetry: nope`, true},
		{"wrong type", `{"telemetry": "false"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePrefs(t, tt.content)
			if got := Resolve(path); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveMissingFile(t *testing.T) {
	t.Setenv(EnvVar, "")
	if !Resolve(filepath.Join(t.TempDir(), "nope.json")) {
		t.Error("missing preference file should default to enabled")
	}
	if !Resolve("") {
		t.Error("empty path should default to enabled")
	}
}

func TestEnvOverridesPreferenceFile(t *testing.T) {
	path := writePrefs(t, `{"telemetry": true}`)
	t.Setenv(EnvVar, "false")
	if Resolve(path) {
		t.Error("environment opt-out must win over an opted-in preference file")
	}
}

func TestSetPreference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	if err := SetPreference(path, false); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	t.Setenv(EnvVar, "")
	if Resolve(path) {
		t.Error("Resolve should see the persisted opt-out")
	}

	if err := SetPreference(path, true); err != nil {
		t.Fatalf("SetPreference(true) failed: %v", err)
	}
	if !Resolve(path) {
		t.Error("Resolve should see the persisted opt-in")
	}
}

func TestSetPreferencePreservesOtherKeys(t *testing.T) {
	path := writePrefs(t, `{"theme": "dark", "telemetry": true}`)

	if err := SetPreference(path, false); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read prefs: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("prefs file is not valid JSON: %v", err)
	}
	if m["theme"] != "dark" {
		t.Errorf("unrelated key lost: %v", m)
	}
	if m["telemetry"] != false {
		t.Errorf("telemetry not updated: %v", m)
	}
}
