// Package changelog assembles a ChangelogResponse/ReleaseNotesResponse
// into Markdown and inserts it into CHANGELOG.md above existing entries.
package changelog

import (
	"fmt"
	"os"
	"strings"

	"github.com/jo-charles/git-iris/internal/agent"
)

// sectionOrder fixes the rendering order of the closed ChangeKind enum,
// matching the Keep a Changelog convention.
var sectionOrder = []agent.ChangeKind{
	agent.ChangeAdded,
	agent.ChangeChanged,
	agent.ChangeDeprecated,
	agent.ChangeRemoved,
	agent.ChangeFixed,
	agent.ChangeSecurity,
	agent.ChangePerformance,
}

// RenderSections formats the closed section map in fixed order, skipping
// empty sections.
func RenderSections(sections map[agent.ChangeKind][]string) string {
	var b strings.Builder
	for _, kind := range sectionOrder {
		entries := sections[kind]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n", kind)
		for _, e := range entries {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderChangelog formats a full version heading and body for resp.
func RenderChangelog(version string, resp agent.ChangelogResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## [%s]\n\n", version)
	if len(resp.BreakingChanges) > 0 {
		b.WriteString("### BREAKING CHANGES\n")
		for _, c := range resp.BreakingChanges {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}
	b.WriteString(RenderSections(resp.Sections))
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderReleaseNotes formats release notes, prefixed by highlights.
func RenderReleaseNotes(version string, resp agent.ReleaseNotesResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## [%s]\n\n", version)
	if len(resp.Highlights) > 0 {
		b.WriteString("### Highlights\n")
		for _, h := range resp.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	}
	if len(resp.BreakingChanges) > 0 {
		b.WriteString("### BREAKING CHANGES\n")
		for _, c := range resp.BreakingChanges {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}
	b.WriteString(RenderSections(resp.Sections))
	return strings.TrimRight(b.String(), "\n") + "\n"
}

const changelogHeader = "# Changelog\n\nAll notable changes to this project will be documented in this file.\n\n"

// InsertEntry inserts entry (a rendered "## [version]\n..." block) above
// the first existing "## [" heading in path, or appends a fresh file with
// the standard header if path does not yet exist.
func InsertEntry(path, entry string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("changelog: reading %s: %w", path, err)
		}
		return os.WriteFile(path, []byte(changelogHeader+entry), 0o644)
	}

	existing := string(data)
	idx := strings.Index(existing, "\n## [")
	var out string
	switch {
	case strings.HasPrefix(existing, "## ["):
		out = entry + existing
	case idx == -1:
		out = strings.TrimRight(existing, "\n") + "\n\n" + entry
	default:
		out = existing[:idx+1] + entry + existing[idx+1:]
	}
	return os.WriteFile(path, []byte(out), 0o644)
}
