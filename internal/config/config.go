// Package config manages application-level configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bittin/bitrate/internal/rate"
)

const (
	// AppName is the application identifier used for XDG paths.
	AppName = "bitrate"
	// ConfigFileName is the name of the main configuration file.
	ConfigFileName = "config.json"

	// MinUpdateRateSeconds and MaxUpdateRateSeconds bound the sampling
	// interval. The lower bound also guarantees the rate computation never
	// divides by zero.
	MinUpdateRateSeconds = 1
	MaxUpdateRateSeconds = 10
)

// Config represents the application configuration.
type Config struct {
	Unit              rate.Unit `json:"unit"`
	UpdateRateSeconds int       `json:"update_rate_seconds"`
	ShowDownload      bool      `json:"show_download"`
	ShowUpload        bool      `json:"show_upload"`
	Listen            string    `json:"listen,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Unit:              rate.Bits,
		UpdateRateSeconds: 1,
		ShowDownload:      true,
		ShowUpload:        true,
	}
}

// Paths holds the resolved configuration locations.
type Paths struct {
	ConfigDir  string
	ConfigFile string
}

// GetPaths returns the configuration paths following XDG Base Directory spec.
func GetPaths() (*Paths, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(configHome, AppName)
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
	}, nil
}

// EnsurePaths creates the configuration directory.
func (p *Paths) EnsurePaths() error {
	if err := os.MkdirAll(p.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Load reads the configuration from disk. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk using atomic write (write to temp,
// then rename).
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up temp file on failure
		return fmt.Errorf("failed to finalize config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.UpdateRateSeconds < MinUpdateRateSeconds || c.UpdateRateSeconds > MaxUpdateRateSeconds {
		return fmt.Errorf("update rate must be between %d and %d seconds",
			MinUpdateRateSeconds, MaxUpdateRateSeconds)
	}
	return nil
}

// Manager provides high-level configuration management.
// It is safe for concurrent use from multiple goroutines.
type Manager struct {
	paths  *Paths       // Immutable after construction
	config *Config      // Protected by mu
	mu     sync.RWMutex // Protects config only
}

// NewManager creates a new configuration manager. It ensures the
// configuration directory exists and loads the configuration.
func NewManager() (*Manager, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := paths.EnsurePaths(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg, err := Load(paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &Manager{
		paths:  paths,
		config: cfg,
	}, nil
}

// GetConfig returns a copy of the current configuration.
// The returned copy is safe to read without holding locks.
func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := *m.config
	return &cfg
}

// SaveConfig saves the current configuration to disk.
func (m *Manager) SaveConfig() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Save(m.paths.ConfigFile, m.config)
}

// UpdateField atomically updates the configuration using a mutator function
// and persists the result. If validation fails, the original config is
// preserved.
func (m *Manager) UpdateField(mutator func(cfg *Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	configCopy := *m.config
	mutator(&configCopy)
	if err := configCopy.Validate(); err != nil {
		return err
	}

	*m.config = configCopy
	return Save(m.paths.ConfigFile, m.config)
}
