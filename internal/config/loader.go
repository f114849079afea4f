package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory for configs, saves and logs.
const AppDir = ".squirrel-yarn"

// configNames are tried in order inside each search directory.
var configNames = []string{"runner.yaml", "runner.yml", "runner.toml"}

// Load loads and validates the runner configuration.
// Search order: customPath -> ~/.squirrel-yarn/configs/runner.{yaml,toml}
// -> ./configs/runner.{yaml,toml} -> embedded default.
// A file ending in .toml is decoded as TOML, anything else as YAML.
func Load(customPath string) (RunnerConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the config came from
// ("embedded" for the built-in default).
func LoadWithSource(customPath string) (RunnerConfig, string, error) {
	var cfg RunnerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, dir := range []string{userConfigDir(), "configs"} {
		if dir == "" {
			continue
		}
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var fileCfg RunnerConfig
			if err := decode(path, data, &fileCfg); err == nil {
				return fileCfg, path, fileCfg.Validate()
			}
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", cfg.Validate()
}

// decode picks the decoder from the file extension.
func decode(path string, data []byte, cfg *RunnerConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Encode renders a config as YAML, or TOML when format is "toml".
func Encode(cfg RunnerConfig, format string) ([]byte, error) {
	if format == "toml" {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode yaml: %w", err)
	}
	return out, nil
}

// userConfigDir returns ~/.squirrel-yarn/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs")
}

// UserDataPath returns a path under ~/.squirrel-yarn, or a relative path
// when the home directory cannot be resolved.
func UserDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(AppDir, name)
	}
	return filepath.Join(home, AppDir, name)
}
