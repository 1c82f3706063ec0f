package cmdiris

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/changelog"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

var (
	changelogFrom    string
	changelogTo      string
	changelogVersion string
	changelogWrite   bool
)

func init() {
	rootCmd.AddCommand(changelogCmd)
	changelogCmd.Flags().StringVar(&changelogFrom, "from", "", "Start of the commit range (required)")
	changelogCmd.Flags().StringVar(&changelogTo, "to", "", "End of the commit range (default \"HEAD\")")
	changelogCmd.Flags().StringVar(&changelogVersion, "version", "Unreleased", "Version heading for the new entry")
	changelogCmd.Flags().BoolVar(&changelogWrite, "write", false, "Insert the entry into CHANGELOG.md instead of printing it")
}

var changelogCmd = &cobra.Command{
	Use:     "changelog",
	GroupID: GroupGenerate,
	Short:   "Generate a changelog entry for a commit range",
	Long: `changelog asks the configured provider to categorize the commits between
--from and --to (default "HEAD") into Keep-a-Changelog sections. With
--write, the entry is inserted into CHANGELOG.md above any existing
entries instead of being printed.`,
	RunE: runChangelog,
}

func runChangelog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var toPtr *string
	if changelogTo != "" {
		toPtr = &changelogTo
	}
	tc, err := taskcontext.ForChangelog(changelogFrom, toPtr)
	if err != nil {
		return fmt.Errorf("changelog: %w", err)
	}

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("changelog: %w", err)
	}
	commitCtx, err := repo.GetGitInfoForCommitRange(ctx, gitCfg, tc.From(), tc.To())
	if err != nil {
		return fmt.Errorf("changelog: %w", err)
	}

	res, err := runTask(ctx, cfg, repo, gitCfg, agent.TaskChangelog, commitCtx, "")
	if err != nil {
		return fmt.Errorf("changelog: %w", err)
	}
	resp, ok := res.Data.(agent.ChangelogResponse)
	if !ok {
		return fmt.Errorf("changelog: unexpected result shape")
	}

	rendered := changelog.RenderChangelog(changelogVersion, resp)
	if !changelogWrite {
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	}

	path := filepath.Join(repo.Dir, "CHANGELOG.md")
	if err := changelog.InsertEntry(path, rendered); err != nil {
		return fmt.Errorf("changelog: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", path)
	return nil
}
