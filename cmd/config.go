package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/repl"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the name of the configuration file read from the
// user's home directory when no --config flag is given.
const DefaultConfigName = ".yascl.yaml"

// Config is the contents of a yascl configuration file.  Unset fields keep
// their defaults.
type Config struct {
	Prompt         string `yaml:"prompt"`
	HistoryFile    string `yaml:"history_file"`
	MaxStackHeight *int   `yaml:"max_stack_height"`
	PrintResults   *bool  `yaml:"print_results"`
	Greeting       *bool  `yaml:"greeting"`
}

// LoadConfig parses the configuration file at path.  Unknown fields are
// errors.  An empty file is an empty Config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.MaxStackHeight != nil && *cfg.MaxStackHeight < 1 {
		return nil, fmt.Errorf("config: %s: max_stack_height must be positive: %d", path, *cfg.MaxStackHeight)
	}
	return &cfg, nil
}

// defaultConfigPath returns the path of the configuration file in the user's
// home directory, or the empty string if there is none.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, DefaultConfigName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// EnvConfig returns the interpreter configuration described by cfg.
func (cfg *Config) EnvConfig() []lang.Config {
	var config []lang.Config
	if cfg.MaxStackHeight != nil {
		config = append(config, lang.WithMaximumStackHeight(*cfg.MaxStackHeight))
	}
	return config
}

// ApplyRepl copies the REPL settings of cfg into rcfg.
func (cfg *Config) ApplyRepl(rcfg *repl.Config) {
	if cfg.Prompt != "" {
		rcfg.Prompt = cfg.Prompt
	}
	if cfg.HistoryFile != "" {
		rcfg.HistoryFile = cfg.HistoryFile
	}
	if cfg.PrintResults != nil {
		rcfg.PrintResults = *cfg.PrintResults
	}
	if cfg.Greeting != nil {
		rcfg.Greeting = *cfg.Greeting
	}
	rcfg.Env = append(rcfg.Env, cfg.EnvConfig()...)
}
