// Package settings reads the optional client-side settings file
// (~/.infraiq/wraith.yaml). The file lets operators relocate the socket,
// disable auto-spawn, or point at a custom daemon binary without touching
// the embedding application.
package settings

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are operator overrides for client defaults. Pointer fields
// distinguish "not set" from an explicit false.
type Settings struct {
	SocketPath string `yaml:"socket_path"`
	AutoSpawn  *bool  `yaml:"auto_spawn"`
	DaemonBin  string `yaml:"daemon_bin"`
	Debug      bool   `yaml:"debug"`
}

// Load reads the settings file. A missing or malformed file yields zero
// settings; configuration problems must never surface to the host
// application.
func Load(path string) Settings {
	if path == "" {
		return Settings{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}
	}
	return s
}
