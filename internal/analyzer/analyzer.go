// Package analyzer provides per-path structural-change summaries: given a
// file's diff content, it returns human-readable strings describing what
// changed ("Added function: X", "Removed struct: Y"). A changed declaration
// is reported as a Removed and an Added entry; there is no single
// "Modified" entry.
//
// The registry is closed; callers dispatch by path and cannot add
// analyzers at runtime.
package analyzer

import (
	"path/filepath"
	"strings"
)

// FileAnalyzer describes structural changes for one file type.
type FileAnalyzer interface {
	FileType() string
	Analyze(diff string) []string
}

var registry = map[string]FileAnalyzer{
	".go":   goAnalyzer{},
	".js":   jsAnalyzer{},
	".jsx":  jsAnalyzer{},
	".ts":   jsAnalyzer{},
	".tsx":  jsAnalyzer{},
	".rs":   rustAnalyzer{},
	".py":   pythonAnalyzer{},
	".md":   markdownAnalyzer{},
	".mdx":  markdownAnalyzer{},
}

// For returns the analyzer registered for path's extension, or a generic
// analyzer for unknown extensions.
func For(path string) FileAnalyzer {
	ext := strings.ToLower(filepath.Ext(path))
	if a, ok := registry[ext]; ok {
		return a
	}
	return genericAnalyzer{}
}

type genericAnalyzer struct{}

func (genericAnalyzer) FileType() string        { return "Unknown" }
func (genericAnalyzer) Analyze(diff string) []string { return nil }

// scanDiff scans unified-diff lines for additions/deletions matching a
// set of keyword patterns, returning one descriptive string per match.
func scanDiff(diff string, matchers []diffMatcher) []string {
	var out []string
	for _, line := range strings.Split(diff, "\n") {
		var verb string
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			verb = "Added"
			line = line[1:]
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			verb = "Removed"
			line = line[1:]
		default:
			continue
		}
		trimmed := strings.TrimSpace(line)
		for _, m := range matchers {
			if name, ok := m.match(trimmed); ok {
				out = append(out, verb+" "+m.kind+": "+name)
			}
		}
	}
	return out
}

type diffMatcher struct {
	kind   string
	prefix string
}

// match extracts an identifier following the matcher's keyword prefix.
func (m diffMatcher) match(line string) (string, bool) {
	if !strings.HasPrefix(line, m.prefix) {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, m.prefix))
	name := firstIdentifier(rest)
	if name == "" {
		return "", false
	}
	return name, true
}

func firstIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '(' || r == '{' || r == ' ' || r == ':' || r == '[' {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
