package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/tools"
)

// defaultCharBudget truncates diffs longer than this many characters,
// attaching an explicit truncation marker.
const defaultCharBudget = 12_000

const truncationMarker = "\n... [diff truncated] ...\n"

// BuildSystemPrompt assembles the task-specific system prompt, augmented
// by the user's preset and custom instructions, and documents the
// tool-calling envelope the model must reply in.
func BuildSystemPrompt(task TaskType, opts Options, registry *tools.Registry) string {
	var b strings.Builder

	switch task {
	case TaskCommitMessage:
		b.WriteString("You are git-iris, an expert at writing conventional commit messages from a Git diff.\n")
		b.WriteString("Produce a concise title (<=72 chars) and an optional body explaining the why, not the what.\n")
		if opts.Gitmoji {
			b.WriteString("Set \"emoji\" to a single gitmoji (e.g. \\u2728, \\ud83d\\udc1b) matching the change's nature. Otherwise leave it null.\n")
		} else {
			b.WriteString("Leave \"emoji\" null; this project does not use gitmoji.\n")
		}
	case TaskPullRequest:
		b.WriteString("You are git-iris, an expert at writing pull request descriptions from a set of commits and diffs.\n")
		b.WriteString("Summarize the change, list breaking changes, and suggest testing notes.\n")
		if opts.Gitmoji {
			b.WriteString("Set \"emoji\" to a single gitmoji matching the change's nature. Otherwise leave it null.\n")
		}
	case TaskReview:
		b.WriteString("You are git-iris, a careful code reviewer.\n")
		b.WriteString("Evaluate complexity, abstraction, deletions, hallucinated APIs, style, security, performance, duplication, error handling, testing, and best practices.\n")
		switch opts.DetailLevel {
		case "minimal":
			b.WriteString("Keep it to the highest-severity issues only; skip dimensions with nothing notable.\n")
		case "detailed":
			b.WriteString("Cover every dimension explicitly, even ones with no issues found.\n")
		}
	case TaskChangelog:
		b.WriteString("You are git-iris, assembling a changelog from a commit range.\n")
		b.WriteString("Group entries under Added/Changed/Deprecated/Removed/Fixed/Security/Performance.\n")
	case TaskReleaseNotes:
		b.WriteString("You are git-iris, writing release notes from a commit range.\n")
		b.WriteString("Highlight the most user-visible changes first, then the full categorized list.\n")
	}

	if opts.Preset != "" {
		b.WriteString("\nStyle preset: " + opts.Preset + "\n")
	}
	if opts.Instructions != "" {
		b.WriteString("\nAdditional instructions: " + opts.Instructions + "\n")
	}

	b.WriteString("\nOUTPUT FORMAT:\n")
	b.WriteString("Reply with exactly one JSON object per turn. To call a tool: ")
	b.WriteString(`{"tool_call": {"id": "<tool id>", "params": {...}}}`)
	b.WriteString(". To give your final answer: ")
	b.WriteString(`{"final": <the structured result>}`)
	b.WriteString(".\n\nAvailable tools:\n")
	for _, t := range registry.All() {
		fmt.Fprintf(&b, "- %s: %s\n", t.ID(), t.Description())
	}

	return b.String()
}

// BuildUserPrompt carries the structured CommitContext, truncating diffs
// that exceed the configured character budget.
func BuildUserPrompt(ctx *gitcontext.CommitContext, opts Options) string {
	budget := opts.CharBudget
	if budget <= 0 {
		budget = defaultCharBudget
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Branch: %s\n", ctx.Branch)
	if ctx.ProjectMetadata.Language != nil {
		fmt.Fprintf(&b, "Language: %s\n", *ctx.ProjectMetadata.Language)
	}

	b.WriteString("\nRecent commits:\n")
	for _, c := range ctx.RecentCommits {
		fmt.Fprintf(&b, "- %s %s\n", c.Hash, c.Message)
	}

	b.WriteString("\nChanged files:\n")
	for _, f := range ctx.StagedFiles {
		fmt.Fprintf(&b, "\n--- %s (%s) ---\n", f.Path, f.ChangeType)
		b.WriteString(truncate(f.Diff, budget))
		if len(f.Analysis) > 0 {
			b.WriteString("\nAnalysis: " + strings.Join(f.Analysis, "; ") + "\n")
		}
	}

	return b.String()
}

func truncate(diff string, budget int) string {
	if len(diff) <= budget {
		return diff
	}
	return diff[:budget] + truncationMarker
}

// NewParallelRunner returns a SubAgentRunner that spawns a fresh Agent
// sharing this agent's provider and schema, but with the tool registry
// minus parallel_analyze itself, preventing unbounded recursion. commitCtx
// is nil when the agent is built ahead of knowing which context a later
// Run call will supply (Studio, which reuses one Agent per task across a
// session); the sub-agent then starts from an empty context plus prompt.
func (a *Agent) NewParallelRunner(task TaskType, commitCtx *gitcontext.CommitContext, opts Options) tools.SubAgentRunner {
	subTools := a.Tools.WithoutID("parallel_analyze")
	return func(ctx context.Context, prompt string) (json.RawMessage, error) {
		sub := &Agent{Provider: a.Provider, Tools: subTools, Schema: a.Schema}
		var subCtx gitcontext.CommitContext
		if commitCtx != nil {
			subCtx = *commitCtx
		}
		summary := prompt
		subCtx.Summary = &summary
		result := sub.Run(ctx, task, &subCtx, opts, nil)
		if !result.Success {
			return nil, fmt.Errorf("sub-agent: %s", result.Message)
		}
		return json.Marshal(result.Data)
	}
}
