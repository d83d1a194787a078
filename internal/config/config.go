package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chmac/tag-summary/internal/domain"
)

const DefaultVaultPath = "~/Documents/vault"

// Config holds user settings: the vault location and the default decoration
// toggles for summary builds. Toggles are pointers so an absent key keeps
// its built-in default.
type Config struct {
	Vault string `yaml:"vault"`

	IncludeChildren *bool `yaml:"include_children"`
	IncludeLink     *bool `yaml:"include_link"`
	IncludeCallout  *bool `yaml:"include_callout"`
	RemoveTags      *bool `yaml:"remove_tags"`
	ListParagraph   *bool `yaml:"list_paragraph"`
}

// Load reads the config file at the default location. A missing file yields
// a zero Config; a malformed one is an error.
func Load() (Config, error) {
	return LoadFile(DefaultPath())
}

// LoadFile reads a config file from path.
func LoadFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tagsum", "config.yaml")
}

// VaultPath returns the vault path from the TAGSUM_VAULT env var, then the
// config file, then DefaultVaultPath.
func (c Config) VaultPath() string {
	if env := os.Getenv("TAGSUM_VAULT"); env != "" {
		return env
	}
	if c.Vault != "" {
		return c.Vault
	}
	return DefaultVaultPath
}

// Options applies the config's toggles over the built-in defaults.
func (c Config) Options() domain.Options {
	opts := domain.DefaultOptions()
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&opts.IncludeChildren, c.IncludeChildren)
	apply(&opts.IncludeLink, c.IncludeLink)
	apply(&opts.IncludeCallout, c.IncludeCallout)
	apply(&opts.RemoveTags, c.RemoveTags)
	apply(&opts.ListParagraph, c.ListParagraph)
	return opts
}
