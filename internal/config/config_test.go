package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultProvider != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Config{
		DefaultProvider: "anthropic",
		UseGitmoji:      true,
		Providers: map[string]ProviderConfig{
			"anthropic": {APIKey: "sk-test", Model: "claude-opus"},
		},
	}
	if err := Save(path, cfg, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DefaultProvider != "anthropic" || !got.UseGitmoji {
		t.Errorf("got = %+v", got)
	}
	if got.Providers["anthropic"].APIKey != "sk-test" {
		t.Errorf("api key not round-tripped: %+v", got.Providers["anthropic"])
	}
}

func TestSaveProjectStripsAPIKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".irisconfig")
	cfg := Config{Providers: map[string]ProviderConfig{"openai": {APIKey: "secret", Model: "gpt-5"}}}
	if err := Save(path, cfg, true); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Providers["openai"].APIKey != "" {
		t.Errorf("expected api key stripped from project save, got %q", got.Providers["openai"].APIKey)
	}
	if got.Providers["openai"].Model != "gpt-5" {
		t.Errorf("expected model preserved, got %+v", got.Providers["openai"])
	}
}

func TestMergePersonalOverProject(t *testing.T) {
	personal := Config{
		DefaultProvider: "anthropic",
		Providers:       map[string]ProviderConfig{"anthropic": {APIKey: "sk-personal"}},
	}
	project := Config{
		DefaultProvider: "openai",
		Providers:       map[string]ProviderConfig{"anthropic": {Model: "claude-opus-project"}},
	}

	merged := Merge(personal, project)
	if merged.DefaultProvider != "anthropic" {
		t.Errorf("DefaultProvider = %q, want personal's value to win", merged.DefaultProvider)
	}
	p := merged.Providers["anthropic"]
	if p.APIKey != "sk-personal" {
		t.Errorf("APIKey = %q, want personal's key", p.APIKey)
	}
	if p.Model != "claude-opus-project" {
		t.Errorf("Model = %q, want project's model preserved", p.Model)
	}
}
