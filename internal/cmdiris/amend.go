package cmdiris

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

var amendMessage string

func init() {
	rootCmd.AddCommand(amendCmd)
	amendCmd.Flags().StringVar(&amendMessage, "message", "", "The existing commit message being rewritten")
}

var amendCmd = &cobra.Command{
	Use:     "amend",
	GroupID: GroupGenerate,
	Short:   "Rewrite an existing commit message against the staged diff",
	Long: `amend regenerates a commit message for the currently staged diff, given
the message it is replacing via --message. The original is passed to the
provider as context so the new message can correct or improve it rather
than starting over blind.`,
	RunE: runAmend,
}

func runAmend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tc := taskcontext.ForAmend(amendMessage)

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("amend: %w", err)
	}
	commitCtx, err := repo.GetGitInfo(ctx, gitCfg)
	if err != nil {
		return fmt.Errorf("amend: %w", err)
	}

	var note string
	if tc.OriginalMessage() != "" {
		note = fmt.Sprintf("The commit message being amended reads:\n%s\nImprove or correct it; do not just repeat it.", tc.OriginalMessage())
	}

	text, err := runGenerationWithInstructions(ctx, cfg, repo, gitCfg, agent.TaskCommitMessage, commitCtx, note)
	if err != nil {
		return fmt.Errorf("amend: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
