package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// builtin holds themes shipped with the binary, checked before any
// filesystem discovery path.
var builtin = map[string]File{
	"default": {
		Palette: map[string]string{
			"slate":  "#2e3440",
			"green":  "#a3be8c",
			"red":    "#bf616a",
			"yellow": "#ebcb8b",
			"blue":   "#81a1c1",
		},
		Tokens: map[string]string{
			"background": "slate",
			"success":    "green",
			"error":      "red",
			"warning":    "yellow",
			"accent":     "blue",
		},
		Styles: map[string]RawStyle{
			"title": {Fg: "accent", Bold: true},
			"error": {Fg: "error", Bold: true},
		},
		Gradients: map[string][]string{
			"status": {"success", "warning", "error"},
		},
	},
}

// DiscoveryPaths returns the directories searched for named theme files, in
// priority order: project-local, then XDG/user config.
func DiscoveryPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".iris", "themes"))
	}
	if cfg, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(cfg, "git-iris", "themes"))
	}
	return paths
}

// LoadThemeByName first consults the built-in set, then walks the
// discovery paths for "<name>.toml".
func LoadThemeByName(name string) (*Theme, error) {
	if f, ok := builtin[name]; ok {
		return Resolve(name, f)
	}
	for _, dir := range DiscoveryPaths() {
		path := filepath.Join(dir, name+".toml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var f File
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("theme: parsing %s: %w", path, err)
		}
		return Resolve(name, f)
	}
	return nil, fmt.Errorf("theme: %q not found", name)
}
