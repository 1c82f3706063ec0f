package tools

import (
	"context"
	"encoding/json"
	"testing"
)

type stubTool struct {
	id   string
	caps []string
}

func (s stubTool) ID() string                 { return s.id }
func (s stubTool) DisplayName() string        { return s.id }
func (s stubTool) Description() string        { return "" }
func (s stubTool) Capabilities() []string     { return s.caps }
func (s stubTool) ParameterSchema() map[string]any { return map[string]any{} }
func (s stubTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return json.Marshal(map[string]string{"tool": s.id})
}

func TestRegisterIsIdempotentOnID(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{id: "a", caps: []string{"x"}})
	r.Register(stubTool{id: "a", caps: []string{"x"}})

	ids := r.ByCapability("x")
	if len(ids) != 1 {
		t.Fatalf("ByCapability(x) = %v, want 1 entry", ids)
	}
}

func TestByCapabilityNoRanking(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{id: "first", caps: []string{"shared"}})
	r.Register(stubTool{id: "second", caps: []string{"shared"}})

	ids := r.ByCapability("shared")
	if len(ids) != 2 || ids[0] != "first" || ids[1] != "second" {
		t.Errorf("ByCapability(shared) = %v, want [first second]", ids)
	}
}

func TestExecuteDispatchesByID(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{id: "a"})
	out, err := r.Execute(context.Background(), "a", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(out) != `{"tool":"a"}` {
		t.Errorf("Execute() = %s", out)
	}
}

func TestExecuteUnknownID(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Execute(context.Background(), "missing", nil); err != ErrNoTool {
		t.Errorf("err = %v, want ErrNoTool", err)
	}
}

func TestWithoutIDExcludesOneTool(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool{id: "a"})
	r.Register(stubTool{id: "parallel_analyze"})

	sub := r.WithoutID("parallel_analyze")
	if _, ok := sub.ByID("parallel_analyze"); ok {
		t.Error("sub-registry should not contain parallel_analyze")
	}
	if _, ok := sub.ByID("a"); !ok {
		t.Error("sub-registry should still contain a")
	}
}
