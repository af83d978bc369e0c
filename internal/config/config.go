// ABOUTME: BMI tool configuration with storage backend and chart directory selection.
// ABOUTME: Loads JSON settings from XDG config and opens the configured repository.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/bmi/internal/storage"
)

// Supported storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
)

// Backends lists every accepted backend name.
var Backends = []string{BackendSQLite, BackendMarkdown}

// Config stores bmi tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "markdown".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts bmi_users.db here. Markdown puts a measurements/ folder here.
	// Supports ~ expansion. Defaults to ~/.local/share/bmi.
	DataDir string `json:"data_dir,omitempty"`

	// ChartDir is where `bmi history` writes PNG charts. Defaults to <data_dir>/charts.
	ChartDir string `json:"chart_dir,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetChartDir returns the chart output directory with ~ expanded.
func (c *Config) GetChartDir() string {
	if c.ChartDir == "" {
		return filepath.Join(c.GetDataDir(), "charts")
	}
	return ExpandPath(c.ChartDir)
}

// Validate checks that the backend is known.
func (c *Config) Validate() error {
	b := c.GetBackend()
	for _, known := range Backends {
		if b == known {
			return nil
		}
	}
	return fmt.Errorf("unknown backend: %q (want one of %s)", b, strings.Join(Backends, ", "))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, storage.DBFileName))
	case BackendMarkdown:
		return storage.NewMarkdownStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "bmi", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
