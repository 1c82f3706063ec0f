// Package render is a pure function of reducer.StudioState: it never
// mutates state and consults the theme resolver (internal/theme) for all
// colors and styles, matching the rest of the system's single active-theme
// convention.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/jo-charles/git-iris/internal/theme"
	"github.com/jo-charles/git-iris/internal/tui/reducer"
)

var sanitizer = bluemonday.StrictPolicy()

func lgColor(c theme.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func lgStyle(s theme.Style) lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.HasFg {
		style = style.Foreground(lgColor(s.Fg))
	}
	if s.HasBg {
		style = style.Background(lgColor(s.Bg))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Dim {
		style = style.Faint(true)
	}
	return style
}

func modeLabel(m reducer.Mode) string {
	switch m {
	case reducer.Commit:
		return "Commit"
	case reducer.Review:
		return "Review"
	case reducer.PR:
		return "PR"
	case reducer.Changelog:
		return "Changelog"
	case reducer.ReleaseNotes:
		return "Release Notes"
	default:
		return "Explore"
	}
}

// View renders the complete frame for width x height.
func View(state reducer.StudioState, width, height int) string {
	th := theme.Active()

	header := renderHeader(state, th, width)
	tabs := renderModeTabs(state, th, width)
	status := renderStatusBar(state, th, width)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := renderPanels(state, th, width, bodyHeight)

	frame := strings.Join([]string{header, tabs, body, status}, "\n")

	if state.Modal != nil {
		return overlayModal(frame, renderModal(state.Modal, th), width, height)
	}
	return frame
}

func renderHeader(state reducer.StudioState, th *theme.Theme, width int) string {
	style := lgStyle(th.Style("header"))
	return style.Width(width).Render("git-iris studio")
}

func renderModeTabs(state reducer.StudioState, th *theme.Theme, width int) string {
	modes := []reducer.Mode{reducer.Explore, reducer.Commit, reducer.Review, reducer.PR, reducer.Changelog, reducer.ReleaseNotes}
	var parts []string
	for _, m := range modes {
		label := fmt.Sprintf(" %s ", modeLabel(m))
		if m == state.ActiveMode {
			parts = append(parts, lgStyle(th.Style("tab.active")).Render(label))
		} else {
			parts = append(parts, lgStyle(th.Style("tab.inactive")).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderStatusBar(state reducer.StudioState, th *theme.Theme, width int) string {
	var statusText string
	switch state.IrisStatus.Kind {
	case reducer.Thinking:
		statusText = "thinking: " + state.IrisStatus.Message
	case reducer.ErrorStatus:
		statusText = "error: " + state.IrisStatus.Message
	default:
		statusText = fmt.Sprintf("%s @ %s", state.GitStatus.Branch, modeLabel(state.ActiveMode))
	}
	if n := len(state.Notifications); n > 0 {
		last := state.Notifications[n-1]
		statusText = statusText + " | " + last.Message
	}
	return lgStyle(th.Style("status")).Width(width).Render(statusText)
}

func renderPanels(state reducer.StudioState, th *theme.Theme, width, height int) string {
	leftW := width * 25 / 100
	rightW := width * 35 / 100
	centerW := width - leftW - rightW
	if centerW < 1 {
		centerW = 1
	}

	left := panelStyle(th, state.FocusedPanel == reducer.PanelLeft).Width(leftW).Height(height).Render(leftPanelContent(state))
	center := panelStyle(th, state.FocusedPanel == reducer.PanelCenter).Width(centerW).Height(height).Render(centerPanelContent(state))
	right := panelStyle(th, state.FocusedPanel == reducer.PanelRight).Width(rightW).Height(height).Render(rightPanelContent(state))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, center, right)
}

func panelStyle(th *theme.Theme, focused bool) lipgloss.Style {
	if focused {
		return lgStyle(th.Style("panel.focused"))
	}
	return lgStyle(th.Style("panel.unfocused"))
}

func leftPanelContent(state reducer.StudioState) string {
	switch state.ActiveMode {
	case reducer.PR:
		return "commits"
	default:
		return "file tree"
	}
}

func centerPanelContent(state reducer.StudioState) string {
	ms := state.Modes.Get(state.ActiveMode)
	if state.ActiveMode == reducer.Commit {
		if ms.Editing {
			return "edit: " + ms.EditBuffer
		}
		return "message: " + ms.GeneratedContent
	}
	if ms.Generating {
		return "generating..." + ms.StreamingContent
	}
	return renderMarkdown(ms.GeneratedContent)
}

func rightPanelContent(state reducer.StudioState) string {
	return "diff view"
}

func renderMarkdown(content string) string {
	if content == "" {
		return ""
	}
	clean := sanitizer.Sanitize(content)
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return clean
	}
	out, err := r.Render(clean)
	if err != nil {
		return clean
	}
	return out
}

func renderModal(m *reducer.Modal, th *theme.Theme) string {
	width := 40
	if m.Kind == reducer.ModalChat {
		width = 80
	}
	style := lgStyle(th.Style("modal")).Width(width)
	return style.Render(m.Title + "\n\n" + m.Message)
}

func overlayModal(base, modal string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
