package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Fixture is a team pairing seeded by POST /admin/seed.
type Fixture struct {
	TeamA string `json:"team_a" yaml:"team_a" toml:"team_a"`
	TeamB string `json:"team_b" yaml:"team_b" toml:"team_b"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	// Simulation timing, in seconds.
	MatchDurationSec    int `json:"match_duration_sec" yaml:"match_duration_sec" toml:"match_duration_sec"`
	MinEventIntervalSec int `json:"min_event_interval_sec" yaml:"min_event_interval_sec" toml:"min_event_interval_sec"`
	MaxEventIntervalSec int `json:"max_event_interval_sec" yaml:"max_event_interval_sec" toml:"max_event_interval_sec"`

	// Event generation vocabulary. Empty slices fall back to built-ins.
	Players   []string `json:"players" yaml:"players" toml:"players"`
	CardTypes []string `json:"card_types" yaml:"card_types" toml:"card_types"`
	FoulTypes []string `json:"foul_types" yaml:"foul_types" toml:"foul_types"`

	SeedFixtures []Fixture `json:"seed_fixtures" yaml:"seed_fixtures" toml:"seed_fixtures"`

	// Allowed CORS origins for the browser frontend. Empty means allow all.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
