package gitcontext

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExclusions are glob patterns excluded unless overridden.
var DefaultExclusions = []string{
	"package-lock.json",
	"*.min.js",
	".vscode/**",
}

// ExclusionPolicy decides whether a path's content may be inspected.
// A file matching a configured glob, or living under a gitignored
// directory, is excluded; excluded wins when both rules could apply.
type ExclusionPolicy struct {
	Globs     []string
	ignoreDir map[string]bool
}

// NewExclusionPolicy builds a policy from the default globs plus any
// additional user-configured globs, and loads .gitignore from repoDir.
func NewExclusionPolicy(repoDir string, extra []string) *ExclusionPolicy {
	p := &ExclusionPolicy{Globs: append(append([]string{}, DefaultExclusions...), extra...)}
	p.ignoreDir = loadGitignore(repoDir)
	return p
}

func loadGitignore(repoDir string) map[string]bool {
	dirs := map[string]bool{".git": true}
	f, err := os.Open(filepath.Join(repoDir, ".gitignore"))
	if err != nil {
		return dirs
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		dirs[line] = true
	}
	return dirs
}

// Excluded reports whether path should have its content excluded.
func (p *ExclusionPolicy) Excluded(path string) bool {
	for _, g := range p.Globs {
		if matchGlob(g, path) {
			return true
		}
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i := range parts {
		if p.ignoreDir[parts[i]] {
			return true
		}
	}
	return false
}

// matchGlob supports "**" as a path-spanning wildcard in addition to
// filepath.Match's single-segment "*"/"?".
func matchGlob(pattern, path string) bool {
	path = filepath.ToSlash(path)
	if strings.Contains(pattern, "**") {
		prefix := strings.SplitN(pattern, "**", 2)[0]
		return strings.HasPrefix(path, strings.TrimSuffix(prefix, "/"))
	}
	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	// also match against the basename, so "*.min.js" matches nested paths
	ok, _ := filepath.Match(pattern, filepath.Base(path))
	return ok
}
