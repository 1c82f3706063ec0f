package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// maxSubAgents bounds parallel_analyze fan-out, matching the agent core's
// "up to 10 sub-tasks" rule.
const maxSubAgents = 10

// SubAgentRunner runs one sub-task and returns its result or a failure.
// The agent core supplies this so the tools package never imports the
// agent package back (which owns the tool-calling loop itself).
type SubAgentRunner func(ctx context.Context, prompt string) (json.RawMessage, error)

// ParallelAnalyzeTool spawns bounded sub-agents, each in its own context
// window, and joins their results. Per-subtask failures are captured as
// failed entries, not a fatal error for the whole call.
type ParallelAnalyzeTool struct {
	Run SubAgentRunner
}

func (*ParallelAnalyzeTool) ID() string          { return "parallel_analyze" }
func (*ParallelAnalyzeTool) DisplayName() string { return "Parallel Analyze" }
func (*ParallelAnalyzeTool) Description() string {
	return "Fan out up to 10 independent sub-agent analyses and join their results"
}
func (*ParallelAnalyzeTool) Capabilities() []string { return []string{"analysis.parallel"} }

func (*ParallelAnalyzeTool) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompts": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"prompts"},
	}
}

type subResult struct {
	Prompt  string          `json:"prompt"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (t *ParallelAnalyzeTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	raw, _ := params["prompts"].([]any)
	if len(raw) == 0 {
		return nil, fmt.Errorf("parallel_analyze tool: missing prompts")
	}
	if len(raw) > maxSubAgents {
		raw = raw[:maxSubAgents]
	}

	results := make([]subResult, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range raw {
		i, prompt := i, fmt.Sprint(p)
		g.Go(func() error {
			out, err := t.Run(gctx, prompt)
			if err != nil {
				results[i] = subResult{Prompt: prompt, Success: false, Error: err.Error()}
				return nil
			}
			results[i] = subResult{Prompt: prompt, Success: true, Result: out}
			return nil
		})
	}
	_ = g.Wait()

	return json.Marshal(results)
}
