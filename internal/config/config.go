package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "studybuddy.yaml"

// Config holds all studybuddy configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Conversation memory file
	Memory MemoryConfig `yaml:"memory"`

	// /export_history target
	Export ExportConfig `yaml:"export"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// MemoryConfig configures the persisted conversation memory.
type MemoryConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig configures history export.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "studybuddy",
		Version: "1.0.0",
		Memory: MemoryConfig{
			Path: "bot_memory.json",
		},
		Export: ExportConfig{
			Path: "chat_history.txt",
		},
		UI: UIConfig{
			Theme: ThemeLight,
			Color: true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			File:      filepath.Join(".studybuddy", "logs", "buddy.log"),
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("BUDDY_MEMORY_PATH"); path != "" {
		c.Memory.Path = path
	}
	if path := os.Getenv("BUDDY_EXPORT_PATH"); path != "" {
		c.Export.Path = path
	}
	if level := os.Getenv("BUDDY_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("BUDDY_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || strings.EqualFold(v, "true")
	}
	// https://no-color.org: any non-empty value disables color
	if os.Getenv("NO_COLOR") != "" {
		c.UI.Color = false
	}
}

// Validate checks the configuration for values the CLI cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Memory.Path) == "" {
		return fmt.Errorf("memory.path is required")
	}
	if strings.TrimSpace(c.Export.Path) == "" {
		return fmt.Errorf("export.path is required")
	}
	switch c.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("ui.theme must be %q or %q, got %q", ThemeLight, ThemeDark, c.UI.Theme)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
