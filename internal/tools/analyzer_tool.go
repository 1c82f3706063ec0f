package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jo-charles/git-iris/internal/analyzer"
)

// AnalyzerTool exposes the file analyzer registry to the agent.
type AnalyzerTool struct{}

func (AnalyzerTool) ID() string            { return "file_analyzer" }
func (AnalyzerTool) DisplayName() string   { return "File Analyzer" }
func (AnalyzerTool) Description() string   { return "Summarize structural changes in a file's diff" }
func (AnalyzerTool) Capabilities() []string { return []string{"analysis.structural"} }

func (AnalyzerTool) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{"type": "string"},
			"diff": map[string]any{"type": "string"},
		},
		"required": []string{"path", "diff"},
	}
}

func (AnalyzerTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	path, _ := params["path"].(string)
	diff, _ := params["diff"].(string)
	if path == "" {
		return nil, fmt.Errorf("file_analyzer tool: missing path")
	}
	a := analyzer.For(path)
	return json.Marshal(map[string]any{
		"file_type": a.FileType(),
		"analysis":  a.Analyze(diff),
	})
}
