// Package config loads, merges, and saves git-iris's TOML configuration:
// a personal file under the XDG config directory and an optional
// project-local override, merged personal-over-project.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jo-charles/git-iris/internal/provider"
)

// ProviderConfig mirrors provider.Config but with TOML tags for on-disk
// representation.
type ProviderConfig struct {
	APIKey            string            `toml:"api_key,omitempty"`
	Model             string            `toml:"model,omitempty"`
	FastModel         string            `toml:"fast_model,omitempty"`
	TokenLimit        int               `toml:"token_limit,omitempty"`
	AdditionalParams  map[string]string `toml:"additional_params,omitempty"`
}

// Performance holds tunables for the task executor.
type Performance struct {
	MaxConcurrentTasks  int  `toml:"max_concurrent_tasks,omitempty"`
	DefaultTimeoutSecs  int  `toml:"default_timeout_seconds,omitempty"`
	UseAgentFramework   bool `toml:"use_agent_framework,omitempty"`
}

// Config is the full decoded shape of config.toml/.irisconfig.
type Config struct {
	DefaultProvider    string                    `toml:"default_provider,omitempty"`
	Providers          map[string]ProviderConfig `toml:"providers,omitempty"`
	UseGitmoji         bool                      `toml:"use_gitmoji,omitempty"`
	Instructions       string                    `toml:"instructions,omitempty"`
	InstructionPreset  string                    `toml:"instruction_preset,omitempty"`
	Performance        Performance               `toml:"performance,omitempty"`
}

// PersonalPath returns the path of the personal config file, honoring
// XDG_CONFIG_HOME when set.
func PersonalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "git-iris", "config.toml")
}

// ProjectPath returns the project-local override path rooted at dir.
func ProjectPath(dir string) string {
	return filepath.Join(dir, ".irisconfig")
}

// Load reads and decodes path; a missing file decodes to a zero Config.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Merge combines personal over project: personal's api_key and any
// non-zero personal field wins per provider; project's model selection
// survives where personal leaves it unset.
func Merge(personal, project Config) Config {
	out := project
	if personal.DefaultProvider != "" {
		out.DefaultProvider = personal.DefaultProvider
	}
	if personal.UseGitmoji {
		out.UseGitmoji = personal.UseGitmoji
	}
	if personal.Instructions != "" {
		out.Instructions = personal.Instructions
	}
	if personal.InstructionPreset != "" {
		out.InstructionPreset = personal.InstructionPreset
	}
	if personal.Performance.MaxConcurrentTasks != 0 {
		out.Performance.MaxConcurrentTasks = personal.Performance.MaxConcurrentTasks
	}
	if personal.Performance.DefaultTimeoutSecs != 0 {
		out.Performance.DefaultTimeoutSecs = personal.Performance.DefaultTimeoutSecs
	}
	if personal.Performance.UseAgentFramework {
		out.Performance.UseAgentFramework = personal.Performance.UseAgentFramework
	}

	if out.Providers == nil {
		out.Providers = map[string]ProviderConfig{}
	}
	for name, p := range personal.Providers {
		merged := out.Providers[name]
		if p.APIKey != "" {
			merged.APIKey = p.APIKey
		}
		if p.Model != "" {
			merged.Model = p.Model
		}
		if p.FastModel != "" {
			merged.FastModel = p.FastModel
		}
		if p.TokenLimit != 0 {
			merged.TokenLimit = p.TokenLimit
		}
		if p.AdditionalParams != nil {
			merged.AdditionalParams = p.AdditionalParams
		}
		out.Providers[name] = merged
	}
	return out
}

// stripAPIKeys returns a copy of cfg with every provider's api_key cleared,
// for project-level saves that must never persist secrets.
func stripAPIKeys(cfg Config) Config {
	out := cfg
	out.Providers = make(map[string]ProviderConfig, len(cfg.Providers))
	for name, p := range cfg.Providers {
		p.APIKey = ""
		out.Providers[name] = p
	}
	return out
}

// Save writes cfg to path. If project is true, API keys are stripped first.
func Save(path string, cfg Config, project bool) error {
	if project {
		cfg = stripAPIKeys(cfg)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return nil
}

// ProviderParams converts a named provider's config into provider.Config.
// AdditionalParams is copied as strings; provider.Config.CoercedParams
// gives the typed form.
func (c Config) ProviderParams(name string) provider.Config {
	p := c.Providers[name]
	return provider.Config{
		APIKey:           p.APIKey,
		Model:            p.Model,
		FastModel:        p.FastModel,
		TokenLimit:       p.TokenLimit,
		AdditionalParams: p.AdditionalParams,
	}
}
