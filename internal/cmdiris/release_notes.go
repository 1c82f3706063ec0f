package cmdiris

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/changelog"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

var (
	releaseNotesFrom    string
	releaseNotesTo      string
	releaseNotesVersion string
)

func init() {
	rootCmd.AddCommand(releaseNotesCmd)
	releaseNotesCmd.Flags().StringVar(&releaseNotesFrom, "from", "", "Start of the commit range (required)")
	releaseNotesCmd.Flags().StringVar(&releaseNotesTo, "to", "", "End of the commit range (default \"HEAD\")")
	releaseNotesCmd.Flags().StringVar(&releaseNotesVersion, "version", "Unreleased", "Version heading for the notes")
}

var releaseNotesCmd = &cobra.Command{
	Use:     "release-notes",
	GroupID: GroupGenerate,
	Short:   "Generate release notes for a commit range",
	Long: `release-notes asks the configured provider to summarize the most
user-visible changes between --from and --to (default "HEAD"), followed
by the full categorized list, and prints them to stdout.`,
	RunE: runReleaseNotes,
}

func runReleaseNotes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var toPtr *string
	if releaseNotesTo != "" {
		toPtr = &releaseNotesTo
	}
	tc, err := taskcontext.ForChangelog(releaseNotesFrom, toPtr)
	if err != nil {
		return fmt.Errorf("release-notes: %w", err)
	}

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("release-notes: %w", err)
	}
	commitCtx, err := repo.GetGitInfoForCommitRange(ctx, gitCfg, tc.From(), tc.To())
	if err != nil {
		return fmt.Errorf("release-notes: %w", err)
	}

	res, err := runTask(ctx, cfg, repo, gitCfg, agent.TaskReleaseNotes, commitCtx, "")
	if err != nil {
		return fmt.Errorf("release-notes: %w", err)
	}
	resp, ok := res.Data.(agent.ReleaseNotesResponse)
	if !ok {
		return fmt.Errorf("release-notes: unexpected result shape")
	}

	fmt.Fprintln(cmd.OutOrStdout(), changelog.RenderReleaseNotes(releaseNotesVersion, resp))
	return nil
}
