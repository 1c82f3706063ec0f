package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jo-charles/git-iris/internal/gitcontext"
)

// GitTool exposes diff/status/log/files operations to the agent.
type GitTool struct {
	Repo *gitcontext.Repo
	Cfg  gitcontext.Config
}

func (t *GitTool) ID() string          { return "git" }
func (t *GitTool) DisplayName() string  { return "Git" }
func (t *GitTool) Description() string  { return "Inspect repository diffs, status, and log history" }
func (t *GitTool) Capabilities() []string {
	return []string{"git.diff", "git.status", "git.log", "git.files"}
}

func (t *GitTool) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{"type": "string", "enum": []string{"diff", "status", "log", "files"}},
			"from":      map[string]any{"type": "string"},
			"to":        map[string]any{"type": "string"},
		},
		"required": []string{"operation"},
	}
}

func (t *GitTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	op, _ := params["operation"].(string)
	switch op {
	case "diff", "files":
		from, _ := params["from"].(string)
		to, _ := params["to"].(string)
		if to == "" {
			to = "HEAD"
		}
		files, err := t.Repo.GetCommitRangeFiles(ctx, t.Cfg, from, to)
		if err != nil {
			return nil, err
		}
		return json.Marshal(files)
	case "status":
		info, err := t.Repo.GetGitInfo(ctx, t.Cfg)
		if err != nil {
			return nil, err
		}
		return json.Marshal(info)
	case "log":
		from, _ := params["from"].(string)
		to, _ := params["to"].(string)
		if to == "" {
			to = "HEAD"
		}
		msgs, err := t.Repo.GetCommitsForPR(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return json.Marshal(msgs)
	default:
		return nil, fmt.Errorf("git tool: unknown operation %q", op)
	}
}
