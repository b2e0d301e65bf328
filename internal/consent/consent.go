package consent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvVar is the environment kill switch. A falsy value disables telemetry
// regardless of the persisted preference.
const EnvVar = "INFRAIQ_TELEMETRY"

// EnvOptOut reports whether the environment kill switch is set to a falsy
// value ("0", "false", "no", "off", case-insensitive).
func EnvOptOut() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar))) {
	case "0", "false", "no", "off":
		return true
	}
	return false
}

// prefs is the shape of the user preference file. Telemetry is a pointer
// so an absent key reads as "no preference stated".
type prefs struct {
	Telemetry *bool `json:"telemetry"`
}

// Resolve reports whether telemetry is enabled. Precedence: environment
// opt-out, then the preference file, then enabled by default. It never
// fails; unreadable or malformed input means no preference stated.
func Resolve(prefsPath string) bool {
	if EnvOptOut() {
		return false
	}
	if prefsPath == "" {
		return true
	}
	data, err := os.ReadFile(prefsPath)
	if err != nil {
		return true
	}
	var p prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return true
	}
	if p.Telemetry != nil && !*p.Telemetry {
		return false
	}
	return true
}

// SetPreference persists the telemetry preference, preserving any other
// keys already in the file. Used by wraithctl, never by the client itself.
func SetPreference(prefsPath string, enabled bool) error {
	m := map[string]any{}
	if data, err := os.ReadFile(prefsPath); err == nil {
		// Malformed existing content is discarded rather than kept broken.
		_ = json.Unmarshal(data, &m)
	}
	m["telemetry"] = enabled

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(prefsPath), 0750); err != nil {
		return fmt.Errorf("create preference directory: %w", err)
	}
	if err := os.WriteFile(prefsPath, data, 0600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
