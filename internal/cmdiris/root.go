// Package cmdiris is the CLI entry point's command tree: gen, amend,
// review, pr, changelog, release-notes, studio, and config, wired over
// cobra in the same package-var-and-init idiom the rest of this codebase
// uses for its commands.
package cmdiris

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/provider"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

// Exit codes, fixed by the CLI contract.
const (
	ExitSuccess       = 0
	ExitGenericFailure = 1
	ExitInvalidArgs   = 2
	ExitProviderError = 3
	ExitGitError      = 4
)

const (
	GroupGenerate = "generate"
	GroupSystem   = "system"
)

var rootCmd = &cobra.Command{
	Use:   "iris",
	Short: "git-iris: LLM-assisted Git workflows",
	Long: `git-iris augments everyday Git workflows with LLM reasoning: commit
messages, PR descriptions, code reviews, changelogs, and release notes,
plus an interactive Studio and an MCP tool surface for editor integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Common flags shared across the generation commands.
var (
	flagProvider     string
	flagInstructions string
	flagPreset       string
	flagGitmoji      bool
	flagNoGitmoji    bool
	flagDetailLevel  string
	flagRepository   string
)

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGenerate, Title: "Generation commands:"},
		&cobra.Group{ID: GroupSystem, Title: "System commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "LLM provider to use (openai, anthropic, google)")
	rootCmd.PersistentFlags().StringVar(&flagInstructions, "instructions", "", "Extra custom instructions appended to the prompt")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Instruction preset name")
	rootCmd.PersistentFlags().BoolVar(&flagGitmoji, "gitmoji", false, "Prefix generated commit titles with a gitmoji")
	rootCmd.PersistentFlags().BoolVar(&flagNoGitmoji, "no-gitmoji", false, "Never prefix generated commit titles with a gitmoji")
	rootCmd.PersistentFlags().StringVar(&flagDetailLevel, "detail-level", "standard", "Review detail level: minimal, standard, detailed")
	rootCmd.PersistentFlags().StringVar(&flagRepository, "repository", "", "Operate against a remote repository URL instead of the working tree")
}

// Execute runs the command tree and maps the resulting error, if any, onto
// the CLI's fixed exit code scheme.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func exitCodeFor(err error) int {
	var userErr *taskcontext.UserInputError
	if errors.As(err, &userErr) {
		return ExitInvalidArgs
	}
	var gitErr *gitcontext.GitError
	if errors.As(err, &gitErr) {
		return ExitGitError
	}
	var provErr *provider.Error
	if errors.As(err, &provErr) {
		return ExitProviderError
	}
	return ExitGenericFailure
}
