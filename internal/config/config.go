package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the effective configuration after files, env and flags are merged.
type Config struct {
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
	Backend  string `mapstructure:"backend" yaml:"backend"`
	Theme    string `mapstructure:"theme" yaml:"theme"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const envPrefix = "SERENE"

func DefaultConfig() *Config {
	return &Config{
		DataDir:  GlobalDir(),
		Backend:  BackendJSON,
		Theme:    "classic",
		LogLevel: "info",
	}
}

// Load merges, lowest precedence first: defaults, ~/.serene/config.yaml,
// ./.serene/config.yaml, the explicit file (if any), SERENE_* env vars.
func Load(explicit string) (*Config, error) {
	paths := []string{GlobalConfigPath(), ProjectConfigPath()}
	if explicit != "" {
		paths = append(paths, explicit)
	}
	return LoadFiles(paths, explicit)
}

// LoadFiles merges the given YAML files in order. A missing file is skipped
// unless it is required.
func LoadFiles(paths []string, required string) (*Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for _, p := range paths {
		if p == "" {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && p != required {
				continue
			}
			return nil, fmt.Errorf("open config %s: %w", p, err)
		}
		err = v.MergeConfig(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", p, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendJSON, BackendSQLite, BackendMemory:
		c.Backend = strings.ToLower(c.Backend)
	default:
		return fmt.Errorf("unknown backend %q (want json, sqlite or memory)", c.Backend)
	}
	if strings.TrimSpace(c.DataDir) == "" && c.Backend != BackendMemory {
		return errors.New("data_dir is empty")
	}
	return nil
}

// GlobalDir is ~/.serene, or ./.serene when there is no home dir.
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".serene"
	}
	return filepath.Join(home, ".serene")
}

func GlobalConfigPath() string { return filepath.Join(GlobalDir(), "config.yaml") }

func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".serene", "config.yaml")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
