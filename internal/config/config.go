package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const FileName = ".secudity.yaml"

type IgnoreRule struct {
	Rule   string `yaml:"rule"`
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
}

type Config struct {
	// SeverityThreshold drops findings below this severity from the report.
	SeverityThreshold string `yaml:"severityThreshold"`
	// Rules restricts the report to these rule IDs when non-empty.
	Rules  []string     `yaml:"rules"`
	Ignore []IgnoreRule `yaml:"ignore"`
}

func Default() Config {
	return Config{SeverityThreshold: "informational"}
}

// Load searches upward from startDir for a config file; absent config is not
// an error, the defaults apply.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, candidate, err
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cfg, "", nil
}
