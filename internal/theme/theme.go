// Package theme resolves named color/style/gradient tokens shared by the
// CLI renderer and the TUI.
package theme

import (
	"fmt"
	"sync"
)

// Color is a resolved RGB color.
type Color struct {
	R, G, B uint8
}

// Fallback is returned for any reference that cannot be resolved, so a
// partial theme degrades gracefully instead of failing at render time.
var Fallback = Color{R: 128, G: 128, B: 128}

// Style is a resolved set of rendering attributes.
type Style struct {
	Fg, Bg                     Color
	HasFg, HasBg                bool
	Bold, Italic, Underline, Dim bool
}

// Gradient is an ordered list of resolved stops.
type Gradient struct {
	Stops []Color
}

// CircularReferenceError reports a token cycle discovered during resolution.
type CircularReferenceError struct {
	Token string
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("theme: circular reference resolving token %q: chain %v", e.Token, e.Chain)
}

// File is the raw, unresolved theme description as decoded from TOML.
type File struct {
	Palette   map[string]string           `toml:"palette"`
	Tokens    map[string]string           `toml:"tokens"`
	Styles    map[string]RawStyle         `toml:"styles"`
	Gradients map[string][]string         `toml:"gradients"`
}

// RawStyle is the on-disk shape of a style entry; color fields are any
// reference type (palette name, hex, or another token name).
type RawStyle struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Dim       bool   `toml:"dim"`
}

// Theme is a fully resolved theme: every token, style and gradient has been
// turned into concrete colors.
type Theme struct {
	Name      string
	colors    map[string]Color
	styles    map[string]Style
	gradients map[string]Gradient
}

// Resolve performs the two resolution passes described for theme loading:
// palette entries resolve to RGB first, then tokens resolve via
// depth-first traversal with cycle detection, then styles and gradients.
func Resolve(name string, f File) (*Theme, error) {
	palette := make(map[string]Color, len(f.Palette))
	for k, hex := range f.Palette {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, err
		}
		palette[k] = c
	}

	colors := make(map[string]Color, len(f.Tokens))
	resolving := make(map[string]bool)
	var resolveToken func(tok string, chain []string) Color
	resolveToken = func(tok string, chain []string) Color {
		if c, ok := colors[tok]; ok {
			return c
		}
		if c, ok := palette[tok]; ok {
			return c
		}
		if c, err := ParseHex(tok); err == nil {
			return c
		}
		ref, ok := f.Tokens[tok]
		if !ok {
			return Fallback
		}
		if resolving[tok] {
			return Fallback
		}
		resolving[tok] = true
		defer delete(resolving, tok)
		c := resolveToken(ref, append(chain, tok))
		colors[tok] = c
		return c
	}

	for tok := range f.Tokens {
		if _, done := colors[tok]; done {
			continue
		}
		if err := detectCycle(tok, f.Tokens, nil, map[string]bool{}); err != nil {
			return nil, err
		}
		colors[tok] = resolveToken(tok, nil)
	}
	for k, c := range palette {
		if _, ok := colors[k]; !ok {
			colors[k] = c
		}
	}

	lookup := func(ref string) Color {
		if ref == "" {
			return Fallback
		}
		if c, ok := colors[ref]; ok {
			return c
		}
		if c, ok := palette[ref]; ok {
			return c
		}
		if c, err := ParseHex(ref); err == nil {
			return c
		}
		return Fallback
	}

	styles := make(map[string]Style, len(f.Styles))
	for name, rs := range f.Styles {
		st := Style{Bold: rs.Bold, Italic: rs.Italic, Underline: rs.Underline, Dim: rs.Dim}
		if rs.Fg != "" {
			st.Fg, st.HasFg = lookup(rs.Fg), true
		}
		if rs.Bg != "" {
			st.Bg, st.HasBg = lookup(rs.Bg), true
		}
		styles[name] = st
	}

	gradients := make(map[string]Gradient, len(f.Gradients))
	for name, refs := range f.Gradients {
		g := Gradient{Stops: make([]Color, len(refs))}
		for i, r := range refs {
			g.Stops[i] = lookup(r)
		}
		gradients[name] = g
	}

	return &Theme{Name: name, colors: colors, styles: styles, gradients: gradients}, nil
}

// detectCycle walks the token graph from start and reports a
// CircularReferenceError if it revisits a node already on the current chain.
func detectCycle(start string, tokens map[string]string, chain []string, seen map[string]bool) error {
	if seen[start] {
		full := append(append([]string{}, chain...), start)
		return &CircularReferenceError{Token: start, Chain: full}
	}
	ref, ok := tokens[start]
	if !ok {
		return nil
	}
	seen[start] = true
	chain = append(chain, start)
	defer delete(seen, start)
	return detectCycle(ref, tokens, chain, seen)
}

// Color resolves a token to a concrete color, falling back to Fallback.
func (t *Theme) Color(token string) Color {
	if c, ok := t.colors[token]; ok {
		return c
	}
	if c, err := ParseHex(token); err == nil {
		return c
	}
	return Fallback
}

// Style resolves a named style.
func (t *Theme) Style(name string) Style {
	if s, ok := t.styles[name]; ok {
		return s
	}
	return Style{}
}

// Gradient resolves a point along a named gradient; t is clamped to [0,1]
// and interpolated linearly between adjacent stops.
func (t *Theme) Gradient(name string, at float64) Color {
	g, ok := t.gradients[name]
	if !ok || len(g.Stops) == 0 {
		return Fallback
	}
	if at < 0 {
		at = 0
	}
	if at > 1 {
		at = 1
	}
	if len(g.Stops) == 1 {
		return g.Stops[0]
	}
	segments := len(g.Stops) - 1
	pos := at * float64(segments)
	idx := int(pos)
	if idx >= segments {
		idx = segments - 1
	}
	frac := pos - float64(idx)
	return lerp(g.Stops[idx], g.Stops[idx+1], frac)
}

func lerp(a, b Color, frac float64) Color {
	l := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac)
	}
	return Color{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B)}
}

// Active theme, process-wide, behind a read-write lock.
var (
	activeMu sync.RWMutex
	active   *Theme
)

// SetTheme atomically swaps the process-wide active theme.
func SetTheme(t *Theme) {
	activeMu.Lock()
	defer activeMu.Unlock()
	active = t
}

// Active returns the current process-wide theme, or nil if unset.
func Active() *Theme {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}
