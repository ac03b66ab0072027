// Package config loads the optional YAML defaults file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// LocalFile is looked up in the working directory.
	LocalFile = ".callgraphtool.yaml"

	// BinEnv overrides callgraph_bin from any file.
	BinEnv = "CALLGRAPH_BIN"

	// MaxFileSize bounds how much of a config file is read.
	MaxFileSize = 1024 * 1024
)

// Config holds user defaults. Unset booleans are nil so flag defaults apply.
type Config struct {
	CallgraphBin   string   `yaml:"callgraph_bin"`
	Language       string   `yaml:"language"`
	FullPath       *bool    `yaml:"full_path"`
	Show           *bool    `yaml:"show"`
	HighlightColor string   `yaml:"highlight_color"`
	Tree           *bool    `yaml:"tree"`
	Subset         *bool    `yaml:"subset"`
	Ignore         []string `yaml:"ignore"`

	// Path is the file the config came from, empty when none was found.
	Path string `yaml:"-"`
	// BinFromEnv is set when CallgraphBin came from the environment.
	BinFromEnv bool `yaml:"-"`
}

func (c *Config) FullPathEnabled() bool {
	return boolOr(c.FullPath, false)
}

func (c *Config) ShowEnabled() bool {
	return boolOr(c.Show, false)
}

// TreeEnabled and SubsetEnabled default to true.
func (c *Config) TreeEnabled() bool {
	return boolOr(c.Tree, true)
}

func (c *Config) SubsetEnabled() bool {
	return boolOr(c.Subset, true)
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

// SearchPaths lists the candidate config files in lookup order. An explicit
// path replaces the search entirely.
func SearchPaths(explicit string) []string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return []string{explicit}
	}

	paths := []string{LocalFile}
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "callgraphtool", "config.yaml"))
	}
	return paths
}

func userConfigDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Load reads the first config file found on the search path and applies the
// environment override. No file at all yields an empty config. An explicit
// path that does not exist is an error.
func Load(explicit string) (*Config, error) {
	cfg := &Config{}
	for _, path := range SearchPaths(explicit) {
		loaded, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) && strings.TrimSpace(explicit) == "" {
			continue
		}
		if err != nil {
			return nil, err
		}
		cfg = loaded
		break
	}

	if bin := strings.TrimSpace(os.Getenv(BinEnv)); bin != "" {
		cfg.CallgraphBin = bin
		cfg.BinFromEnv = true
	}
	return cfg, nil
}

// LoadFile parses one config file. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("config %s exceeds %d bytes", path, MaxFileSize)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg.CallgraphBin = strings.TrimSpace(cfg.CallgraphBin)
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	cfg.HighlightColor = strings.TrimSpace(cfg.HighlightColor)
	rules := cfg.Ignore[:0]
	for _, rule := range cfg.Ignore {
		if rule = strings.TrimSpace(rule); rule != "" {
			rules = append(rules, rule)
		}
	}
	cfg.Ignore = rules
	return cfg, nil
}
