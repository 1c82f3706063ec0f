package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// CodeSearchTool greps the working tree, shelling out to git grep, which
// already honors .gitignore exclusions.
type CodeSearchTool struct {
	RepoDir string
}

func (t *CodeSearchTool) ID() string            { return "code_search" }
func (t *CodeSearchTool) DisplayName() string   { return "Code Search" }
func (t *CodeSearchTool) Description() string   { return "Search tracked files for a pattern" }
func (t *CodeSearchTool) Capabilities() []string { return []string{"search.code"} }

func (t *CodeSearchTool) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pattern": map[string]any{"type": "string"},
		},
		"required": []string{"pattern"},
	}
}

func (t *CodeSearchTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	pattern, _ := params["pattern"].(string)
	if pattern == "" {
		return nil, fmt.Errorf("code_search tool: missing pattern")
	}
	cmd := exec.CommandContext(ctx, "git", "-C", t.RepoDir, "grep", "-n", "-I", "--", pattern)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return json.Marshal([]string{})
		}
		return nil, fmt.Errorf("code_search: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	return json.Marshal(lines)
}
