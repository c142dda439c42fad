package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/javipalanca/burrocracia/internal/model"
)

// AppConfig is the application configuration, loaded from config.toml
// next to the executable.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Hours  HoursConfig  `toml:"hours"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig holds the on-disk layout settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// HoursConfig holds the allocation ceilings.
type HoursConfig struct {
	DailyCap  float64 `toml:"daily_cap"`
	WeeklyCap float64 `toml:"weekly_cap"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	caps := model.DefaultCaps()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20470,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Hours: HoursConfig{
			DailyCap:  caps.Daily,
			WeeklyCap: caps.Weekly,
		},
	}
}

// Caps exposes the configured ceilings as the solver's value type.
func (c *AppConfig) Caps() model.Caps {
	return model.Caps{Daily: c.Hours.DailyCap, Weekly: c.Hours.WeeklyCap}
}

// GetExeDir returns the directory holding the executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory and
// applies the BURROCRACIA_DAILY_CAP / BURROCRACIA_WEEKLY_CAP overrides.
// A missing file yields the defaults.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("BURROCRACIA_DAILY_CAP"); v != "" {
		if cap, err := strconv.ParseFloat(v, 64); err == nil && cap > 0 {
			config.Hours.DailyCap = cap
		}
	}
	if v := os.Getenv("BURROCRACIA_WEEKLY_CAP"); v != "" {
		if cap, err := strconv.ParseFloat(v, 64); err == nil && cap > 0 {
			config.Hours.WeeklyCap = cap
		}
	}
}

// EnsureDataDir makes sure the data directory and its subdirectories
// exist, and returns the data directory path.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "results"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
