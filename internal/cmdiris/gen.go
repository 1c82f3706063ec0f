package cmdiris

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/agent"
)

func init() {
	rootCmd.AddCommand(genCmd)
}

var genCmd = &cobra.Command{
	Use:     "gen",
	GroupID: GroupGenerate,
	Short:   "Generate a commit message for staged changes",
	Long: `gen inspects the staged diff and recent commit history and asks the
configured provider for a conventional commit message. The result is
printed to stdout; it is not committed.`,
	RunE: runGen,
}

func runGen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	commitCtx, err := repo.GetGitInfo(ctx, gitCfg)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	text, err := runGeneration(ctx, cfg, repo, gitCfg, agent.TaskCommitMessage, commitCtx)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
