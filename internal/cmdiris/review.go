package cmdiris

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

var (
	reviewCommit          string
	reviewFrom            string
	reviewTo              string
	reviewIncludeUnstaged bool
)

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVar(&reviewCommit, "commit", "", "Review a single commit's diff")
	reviewCmd.Flags().StringVar(&reviewFrom, "from", "", "Start of a commit range to review")
	reviewCmd.Flags().StringVar(&reviewTo, "to", "", "End of a commit range to review")
	reviewCmd.Flags().BoolVar(&reviewIncludeUnstaged, "include-unstaged", false, "Also consider unstaged changes")
}

var reviewCmd = &cobra.Command{
	Use:     "review",
	GroupID: GroupGenerate,
	Short:   "Review staged changes, a commit, or a commit range",
	Long: `review asks the configured provider to evaluate a diff across several
dimensions (complexity, security, style, testing, and more). By default it
reviews the staged diff; --commit reviews one commit's diff; --from/--to
review a commit range. --commit and --from/--to are mutually exclusive,
and --include-unstaged cannot be combined with a range.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var fromPtr, toPtr, commitPtr *string
	if reviewFrom != "" {
		fromPtr = &reviewFrom
	}
	if reviewTo != "" {
		toPtr = &reviewTo
	}
	if reviewCommit != "" {
		commitPtr = &reviewCommit
	}

	tc, err := taskcontext.ForReview(commitPtr, fromPtr, toPtr, reviewIncludeUnstaged)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}

	commitCtx, err := commitContextForReview(ctx, repo, gitCfg, tc)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}

	text, err := runGeneration(ctx, cfg, repo, gitCfg, agent.TaskReview, commitCtx)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func commitContextForReview(ctx context.Context, repo *gitcontext.Repo, cfg gitcontext.Config, tc *taskcontext.TaskContext) (*gitcontext.CommitContext, error) {
	switch tc.Kind() {
	case taskcontext.Commit:
		return repo.GetGitInfoForCommit(ctx, cfg, tc.CommitID())
	case taskcontext.Range:
		return repo.GetGitInfoForCommitRange(ctx, cfg, tc.From(), tc.To())
	default:
		return repo.GetGitInfoWorkingTree(ctx, cfg, tc.IncludesUnstaged())
	}
}
