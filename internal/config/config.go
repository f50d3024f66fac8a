package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DirEnv overrides the data directory
	DirEnv = "BOXGRID_DIR"

	configFile      = "config.yaml"
	defaultDataFile = "app_data.json"
	minGridSize     = 10
)

// Config holds user settings read from <DataDir>/config.yaml
type Config struct {
	DataFile     string `yaml:"data_file"`
	MinRows      int    `yaml:"min_rows"`
	MinCols      int    `yaml:"min_cols"`
	GlamourStyle string `yaml:"glamour_style,omitempty"`
	Verbose      bool   `yaml:"verbose"`

	DataDir string `yaml:"-"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataFile: defaultDataFile,
		MinRows:  minGridSize,
		MinCols:  minGridSize,
		DataDir:  dataDir,
	}
}

// ResolveDataDir returns dir, else $BOXGRID_DIR, else ~/.boxgrid
func ResolveDataDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv(DirEnv); env != "" {
		return env, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".boxgrid"), nil
}

// Load reads the config file from the resolved data directory. A missing
// file yields defaults.
func Load(dir string) (*Config, error) {
	dataDir, err := ResolveDataDir(dir)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig(dataDir)
	data, err := os.ReadFile(cfg.Path())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.clamp()
	return cfg, nil
}

// Save writes the config back to disk
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(c.Path(), data, 0644)
}

// Path returns the config file location
func (c *Config) Path() string {
	return filepath.Join(c.DataDir, configFile)
}

// LogDir returns where the TUI writes its error log
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func (c *Config) clamp() {
	if c.DataFile == "" {
		c.DataFile = defaultDataFile
	}
	if c.MinRows < minGridSize {
		c.MinRows = minGridSize
	}
	if c.MinCols < minGridSize {
		c.MinCols = minGridSize
	}
}
