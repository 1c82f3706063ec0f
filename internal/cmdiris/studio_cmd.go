package cmdiris

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/companion"
	"github.com/jo-charles/git-iris/internal/tui"
	"github.com/jo-charles/git-iris/internal/tui/effects"
)

func init() {
	rootCmd.AddCommand(studioCmd)
}

var studioCmd = &cobra.Command{
	Use:     "studio",
	GroupID: GroupSystem,
	Short:   "Launch the interactive Studio TUI",
	Long: `studio opens a full-screen Explore/Commit/Review/PR/Changelog/
ReleaseNotes workspace over the current repository, watching the
working tree for changes in the background.`,
	RunE: runStudio,
}

func runStudio(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("studio: %w", err)
	}

	providerName := resolveProvider(cfg)
	agents, err := buildStudioAgents(cfg, repo, gitCfg, runTaskOptions(cfg, ""))
	if err != nil {
		return fmt.Errorf("studio: %w", err)
	}

	watcher, err := companion.NewWatcher(repo.Dir, 500*time.Millisecond)
	if err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	defer watcher.Close()

	// No clipboard library is wired in; Studio's copy-to-clipboard effect
	// becomes a no-op rather than shelling out to a platform-specific tool.
	exec := effects.New(repo, gitCfg, agents, nil)
	model := tui.New(exec, watcher)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("studio: running TUI for provider %s: %w", providerName, err)
	}
	return nil
}
