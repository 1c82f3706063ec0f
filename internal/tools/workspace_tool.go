package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// WorkspaceTool gives the agent a scratch area for notes and tasks across
// a single invocation. State is confined to one WorkspaceTool instance per
// built agent; parallel_analyze sub-agents share their parent's instance,
// and the mutex serializes their calls.
type WorkspaceTool struct {
	mu    sync.Mutex
	notes []string
	tasks []string
}

func (*WorkspaceTool) ID() string            { return "workspace" }
func (*WorkspaceTool) DisplayName() string   { return "Workspace" }
func (*WorkspaceTool) Description() string   { return "Scratch notes and task list for this invocation" }
func (*WorkspaceTool) Capabilities() []string { return []string{"workspace.notes"} }

func (*WorkspaceTool) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action":  map[string]any{"type": "string", "enum": []string{"add_note", "add_task", "list"}},
			"content": map[string]any{"type": "string"},
		},
		"required": []string{"action"},
	}
}

func (w *WorkspaceTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	action, _ := params["action"].(string)
	content, _ := params["content"].(string)

	w.mu.Lock()
	defer w.mu.Unlock()

	switch action {
	case "add_note":
		w.notes = append(w.notes, content)
	case "add_task":
		w.tasks = append(w.tasks, content)
	case "list":
		// no mutation
	default:
		return nil, fmt.Errorf("workspace tool: unknown action %q", action)
	}
	return json.Marshal(map[string]any{"notes": w.notes, "tasks": w.tasks})
}
