package render

import (
	"strings"
	"testing"

	"github.com/jo-charles/git-iris/internal/theme"
	"github.com/jo-charles/git-iris/internal/tui/reducer"
)

func TestMain(m *testing.M) {
	th, err := theme.Resolve("default", theme.File{})
	if err == nil {
		theme.SetTheme(th)
	}
	m.Run()
}

func TestViewRendersWithoutPanicking(t *testing.T) {
	state := reducer.NewState()
	out := View(state, 100, 30)
	if out == "" {
		t.Error("expected non-empty frame")
	}
}

func TestViewShowsActiveModeLabel(t *testing.T) {
	state := reducer.NewState()
	state.ActiveMode = reducer.Commit
	out := View(state, 100, 30)
	if !strings.Contains(out, "Commit") {
		t.Error("expected the active mode's label in the rendered frame")
	}
}

func TestViewOverlaysModal(t *testing.T) {
	state := reducer.NewState()
	state.Modal = &reducer.Modal{Kind: reducer.ModalHelp, Title: "Help", Message: "press q to quit"}
	out := View(state, 100, 30)
	if !strings.Contains(out, "press q to quit") {
		t.Error("expected modal content to be rendered")
	}
}
