package analyzer

import "testing"

func TestForDispatchesByExtension(t *testing.T) {
	if got := For("main.go").FileType(); got != "Go" {
		t.Errorf("For(main.go).FileType() = %q, want Go", got)
	}
	if got := For("README.md").FileType(); got != "Markdown" {
		t.Errorf("For(README.md).FileType() = %q, want Markdown", got)
	}
}

func TestForUnknownExtensionIsGeneric(t *testing.T) {
	a := For("data.bin")
	if got := a.FileType(); got != "Unknown" {
		t.Errorf("FileType() = %q, want Unknown", got)
	}
	if got := a.Analyze("+anything"); got != nil {
		t.Errorf("Analyze() = %v, want nil", got)
	}
}

func TestGoAnalyzerDetectsAddedFunction(t *testing.T) {
	diff := "+func DoThing() error {\n+\treturn nil\n+}\n"
	got := For("main.go").Analyze(diff)
	found := false
	for _, s := range got {
		if s == "Added function: DoThing" {
			found = true
		}
	}
	if !found {
		t.Errorf("Analyze() = %v, want entry for DoThing", got)
	}
}
