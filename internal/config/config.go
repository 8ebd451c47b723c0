package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"obsidian-cli/internal/logging"
	"obsidian-cli/internal/vault"
	"obsidian-cli/pkg/fileops"
)

const APP_NAME = "obsidian-cli" // application name used for config directory

// Environment variables consulted when the matching flag is not given.
const (
	EnvVault     = "OBSIDIAN_VAULT"
	EnvConfig    = "OBSIDIAN_CONFIG"
	EnvBlacklist = "OBSIDIAN_BLACKLIST"
	EnvEditor    = "EDITOR"
	EnvVerbose   = "OBSIDIAN_VERBOSE"
)

// Config holds user configuration for obsidian-cli.
type Config struct {
	// Vault is the root directory of the Obsidian vault.
	Vault           string   `yaml:"vault,omitempty" toml:"vault"`
	Editor          string   `yaml:"editor" toml:"editor"`
	IdentKey        string   `yaml:"ident_key" toml:"ident_key"`
	Blacklist       []string `yaml:"blacklist" toml:"blacklist"`
	JournalTemplate string   `yaml:"journal_template" toml:"journal_template"`
	Verbose         bool     `yaml:"verbose" toml:"verbose"`
}

// Overrides carries values given on the command line. Empty strings and nil
// pointers mean "not given".
type Overrides struct {
	Vault     string
	Blacklist string
	Editor    string
	Verbose   *bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Editor:          vault.DefaultEditor,
		IdentKey:        vault.DefaultIdentKey,
		Blacklist:       []string{"Assets/", ".obsidian/", ".git/"},
		JournalTemplate: vault.DefaultJournalTemplate,
	}
}

// ConfigPaths returns the candidate config files in lookup order.
func ConfigPaths() []string {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	paths := []string{
		APP_NAME + ".yaml",
		APP_NAME + ".toml",
		filepath.Join(configDir, "config.yaml"),
		filepath.Join(configDir, "config.toml"),
	}

	logging.Debug("Determined config paths", "paths", paths)
	return paths
}

// FindConfigFile returns the config file to load and whether it exists. An
// explicit path, from the flag or OBSIDIAN_CONFIG, bypasses the search.
func FindConfigFile(explicit string) (string, bool) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		path := fileops.ExpandPath(explicit)
		_, err := os.Stat(path)
		return path, err == nil
	}

	paths := ConfigPaths()
	for _, candidate := range paths {
		if _, err := os.Stat(candidate); err == nil {
			logging.Debug("Config found", "path", candidate)
			return candidate, true
		}
	}

	// Return primary user path for new config
	return paths[2], false
}

// Load reads the config file, falling back to defaults when none exists. An
// explicit path that does not exist is an error.
func Load(explicit string) (*Config, error) {
	path, exists := FindConfigFile(explicit)
	if !exists {
		if explicit != "" || os.Getenv(EnvConfig) != "" {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		logging.Debug("No config file found, using defaults", "path", path)
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(path)
}

// LoadFrom loads config from a specific path. Files ending in .toml are decoded
// as TOML, anything else as YAML. Keys absent from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return &cfg, nil
	}

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveTo writes the config with owner-only permissions, as TOML when path ends
// in .toml and as YAML otherwise.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.NewEncoder(f).Encode(c); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		return nil
	}
	return c.WriteYAML(f)
}

// WriteYAML encodes the config as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Apply overlays environment values and then flag values onto the config.
func (c *Config) Apply(getenv func(string) string, o Overrides) {
	if v := getenv(EnvVault); v != "" {
		c.Vault = v
	}
	if v := getenv(EnvBlacklist); v != "" {
		c.Blacklist = SplitBlacklist(v)
	}
	if v := getenv(EnvEditor); v != "" {
		c.Editor = v
	}
	if v := getenv(EnvVerbose); v != "" {
		c.Verbose = parseBool(v)
	}

	if o.Vault != "" {
		c.Vault = o.Vault
	}
	if o.Blacklist != "" {
		c.Blacklist = SplitBlacklist(o.Blacklist)
	}
	if o.Editor != "" {
		c.Editor = o.Editor
	}
	if o.Verbose != nil {
		c.Verbose = *o.Verbose
	}
}

// SplitBlacklist splits a colon-separated pattern list.
func SplitBlacklist(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ":") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// ResolveVaultPath expands and absolutizes path and checks that it is an
// Obsidian vault: an existing directory containing ".obsidian".
func ResolveVaultPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("vault path is required. Use --vault, set %s, or add 'vault' to the config file", EnvVault)
	}

	abs, err := filepath.Abs(fileops.ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve vault path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("vault path does not exist or is not a directory: %s", abs)
	}

	if _, err := os.Stat(filepath.Join(abs, ".obsidian")); err != nil {
		return "", fmt.Errorf("not an Obsidian vault (missing .obsidian directory): %s", abs)
	}

	return abs, nil
}

// NewVault resolves the configured vault and builds the immutable handle passed to
// commands and to the assistant server.
func (c *Config) NewVault() (*vault.Vault, error) {
	path, err := ResolveVaultPath(c.Vault)
	if err != nil {
		return nil, err
	}

	return vault.New(vault.Settings{
		Path:            path,
		Blacklist:       c.Blacklist,
		Editor:          c.Editor,
		IdentKey:        c.IdentKey,
		JournalTemplate: c.JournalTemplate,
		Verbose:         c.Verbose,
	})
}
