package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jo-charles/git-iris/internal/agent"
)

func TestRenderSectionsSkipsEmptyAndOrdersFixed(t *testing.T) {
	out := RenderSections(map[agent.ChangeKind][]string{
		agent.ChangeFixed: {"fixed a bug"},
		agent.ChangeAdded: {"new thing"},
	})
	addedIdx := strings.Index(out, "### Added")
	fixedIdx := strings.Index(out, "### Fixed")
	if addedIdx == -1 || fixedIdx == -1 || addedIdx > fixedIdx {
		t.Fatalf("expected Added before Fixed, got:\n%s", out)
	}
	if strings.Contains(out, "### Security") {
		t.Error("expected empty sections to be skipped")
	}
}

func TestInsertEntryCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	if err := InsertEntry(path, "## [1.0.0]\n\n### Added\n- first\n"); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Changelog") {
		t.Errorf("expected standard header, got:\n%s", data)
	}
	if !strings.Contains(string(data), "## [1.0.0]") {
		t.Error("expected entry to be present")
	}
}

func TestInsertEntryPlacesAboveExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	initial := "# Changelog\n\n## [1.0.0]\n\n### Added\n- first\n"
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := InsertEntry(path, "## [1.1.0]\n\n### Fixed\n- second\n"); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	newIdx := strings.Index(string(data), "## [1.1.0]")
	oldIdx := strings.Index(string(data), "## [1.0.0]")
	if newIdx == -1 || oldIdx == -1 || newIdx > oldIdx {
		t.Errorf("expected new entry above old, got:\n%s", data)
	}
}
