package cmdiris

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

var (
	prFrom string
	prTo   string
)

func init() {
	rootCmd.AddCommand(prCmd)
	prCmd.Flags().StringVar(&prFrom, "from", "", "Base branch or ref (default \"main\")")
	prCmd.Flags().StringVar(&prTo, "to", "", "Head branch or ref (default \"HEAD\")")
}

var prCmd = &cobra.Command{
	Use:     "pr",
	GroupID: GroupGenerate,
	Short:   "Generate a pull request description",
	Long: `pr compares --from..--to (defaulting to main..HEAD) and asks the
configured provider for a pull request title, summary, and description,
including any breaking changes and suggested testing notes.`,
	RunE: runPR,
}

func runPR(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var fromPtr, toPtr *string
	if prFrom != "" {
		fromPtr = &prFrom
	}
	if prTo != "" {
		toPtr = &prTo
	}
	tc := taskcontext.ForPR(fromPtr, toPtr)

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("pr: %w", err)
	}
	commitCtx, err := repo.GetGitInfoForBranchDiff(ctx, gitCfg, tc.From(), tc.To())
	if err != nil {
		return fmt.Errorf("pr: %w", err)
	}

	text, err := runGeneration(ctx, cfg, repo, gitCfg, agent.TaskPullRequest, commitCtx)
	if err != nil {
		return fmt.Errorf("pr: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
