// Package config manages the user-level configuration file: named tracker
// accounts plus cache and paging settings. The file lives under
// ~/.taskra/config.yaml; a handful of environment variables override it
// for scripting and CI use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user state directory under $HOME.
	DirName = ".taskra"
	// FileName is the config file name inside DirName.
	FileName = "config.yaml"
)

// Account holds the credentials for one tracker instance. With an email
// the token is an API token sent as basic auth; without, a bearer token.
type Account struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Email string `yaml:"email,omitempty"`
	Token string `yaml:"token"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	// Dir overrides the cache location (default ~/.taskra/cache).
	Dir string `yaml:"dir,omitempty"`
	// TTL is how long cached results stay fresh.
	TTL time.Duration `yaml:"ttl"`
}

// Config is the full persisted configuration.
type Config struct {
	DefaultAccount string      `yaml:"default_account,omitempty"`
	Accounts       []Account   `yaml:"accounts,omitempty"`
	Cache          CacheConfig `yaml:"cache"`
	PageSize       int         `yaml:"page_size"`
	LogLevel       string      `yaml:"log_level"`

	// envAccount holds the TASKRA_URL override. It stays out of Accounts
	// so Save never writes environment credentials to disk and it cannot
	// collide with a configured account of the same name.
	envAccount *Account
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache:    CacheConfig{TTL: 15 * time.Minute},
		PageSize: 50,
		LogLevel: "warn",
	}
}

// Dir returns the per-user state directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config file if present, applies defaults for anything
// unset, then applies environment overrides (TASKRA_URL, TASKRA_EMAIL,
// TASKRA_TOKEN, TASKRA_LOG_LEVEL).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(path)
}

// LoadFromFile is Load against an explicit path; a missing file yields the
// defaults rather than an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// First run; defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.PageSize <= 0 {
		c.PageSize = 50
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

func (c *Config) applyEnv() {
	if url := os.Getenv("TASKRA_URL"); url != "" {
		c.envAccount = &Account{
			Name:  "env",
			URL:   url,
			Email: os.Getenv("TASKRA_EMAIL"),
			Token: os.Getenv("TASKRA_TOKEN"),
		}
	}
	if level := os.Getenv("TASKRA_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// Validate checks structural consistency; credential presence is checked
// when an account is actually selected.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.Name == "" {
			return fmt.Errorf("account with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate account %q", a.Name)
		}
		seen[a.Name] = true
	}
	if c.DefaultAccount != "" && !seen[c.DefaultAccount] {
		return fmt.Errorf("default account %q is not configured", c.DefaultAccount)
	}
	return nil
}

// Save writes the config back to its canonical path with owner-only
// permissions, since it holds credentials.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Account resolves a named account. An empty name selects the TASKRA_URL
// environment override when present, then the configured default. Explicit
// names always resolve against the configured accounts.
func (c *Config) Account(name string) (*Account, error) {
	if name == "" {
		if c.envAccount != nil {
			return c.envAccount, nil
		}
		name = c.DefaultAccount
	}
	if name == "" {
		if len(c.Accounts) == 1 {
			return &c.Accounts[0], nil
		}
		return nil, fmt.Errorf("no account selected: add one with \"taskra config account add\" or set TASKRA_URL")
	}
	for i := range c.Accounts {
		if c.Accounts[i].Name == name {
			a := &c.Accounts[i]
			if a.URL == "" || a.Token == "" {
				return nil, fmt.Errorf("account %q is missing url or token", name)
			}
			return a, nil
		}
	}
	return nil, fmt.Errorf("unknown account %q", name)
}

// AddAccount inserts or replaces an account by name.
func (c *Config) AddAccount(a Account, makeDefault bool) error {
	if a.Name == "" || a.URL == "" || a.Token == "" {
		return fmt.Errorf("account needs a name, url and token")
	}
	replaced := false
	for i := range c.Accounts {
		if c.Accounts[i].Name == a.Name {
			c.Accounts[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		c.Accounts = append(c.Accounts, a)
	}
	if makeDefault || c.DefaultAccount == "" {
		c.DefaultAccount = a.Name
	}
	return nil
}

// RemoveAccount deletes an account by name, clearing the default if it
// pointed there.
func (c *Config) RemoveAccount(name string) error {
	for i := range c.Accounts {
		if c.Accounts[i].Name == name {
			c.Accounts = append(c.Accounts[:i], c.Accounts[i+1:]...)
			if c.DefaultAccount == name {
				c.DefaultAccount = ""
			}
			return nil
		}
	}
	return fmt.Errorf("unknown account %q", name)
}

// CacheDir returns the effective cache directory.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}
