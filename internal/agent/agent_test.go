package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/tools"
	"github.com/jo-charles/git-iris/internal/validator"
)

type stubProvider struct {
	responses []string
	i         int
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-model" }
func (s *stubProvider) GenerateMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	r := s.responses[s.i]
	if s.i < len(s.responses)-1 {
		s.i++
	}
	return r, nil
}
func (s *stubProvider) GenerateStream(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error) {
	chunks := make(chan string, 1)
	errc := make(chan error, 1)
	msg, _ := s.GenerateMessage(ctx, systemPrompt, userPrompt)
	chunks <- msg
	close(chunks)
	close(errc)
	return chunks, errc
}

func testCommitContext() *gitcontext.CommitContext {
	return &gitcontext.CommitContext{
		Branch: "main",
		StagedFiles: []gitcontext.StagedFile{
			{Path: "src/main.rs", ChangeType: gitcontext.Modified, Diff: "-x\n+y"},
		},
	}
}

func TestRunFinalizesPlainText(t *testing.T) {
	p := &stubProvider{responses: []string{`{"final":{"title":"Update main logic","message":""}}`}}
	a := &Agent{Provider: p, Tools: tools.NewRegistry()}
	result := a.Run(context.Background(), TaskCommitMessage, testCommitContext(), Options{}, nil)
	if !result.Success {
		t.Fatalf("Run failed: %s", result.Message)
	}
}

func TestRunDispatchesToolCallThenFinal(t *testing.T) {
	reg := tools.NewRegistry()
	reg.Register(stubRegistryTool{})
	p := &stubProvider{responses: []string{
		`{"tool_call":{"id":"echo","params":{"x":"1"}}}`,
		`{"final":{"title":"Done","message":""}}`,
	}}
	a := &Agent{Provider: p, Tools: reg}
	result := a.Run(context.Background(), TaskCommitMessage, testCommitContext(), Options{}, nil)
	if !result.Success {
		t.Fatalf("Run failed: %s", result.Message)
	}
}

func TestRunExceedsMaxTurns(t *testing.T) {
	p := &stubProvider{responses: []string{`{"tool_call":{"id":"echo","params":{}}}`}}
	reg := tools.NewRegistry()
	reg.Register(stubRegistryTool{})
	a := &Agent{Provider: p, Tools: reg}
	result := a.Run(context.Background(), TaskCommitMessage, testCommitContext(), Options{MaxTurns: 2}, nil)
	if result.Success {
		t.Fatal("expected failure after exceeding max turns")
	}
	if result.Message != "max turns exceeded" {
		t.Errorf("Message = %q, want %q", result.Message, "max turns exceeded")
	}
}

func TestRunRecoversViaValidator(t *testing.T) {
	schema := validator.Schema{Fields: []validator.Field{
		{Name: "title", Type: validator.TString, Required: true},
	}}
	p := &stubProvider{responses: []string{`{"final":{"message":"no title here"}}`}}
	a := &Agent{Provider: p, Tools: tools.NewRegistry(), Schema: &schema}
	result := a.Run(context.Background(), TaskCommitMessage, testCommitContext(), Options{}, nil)
	if !result.Success {
		t.Fatalf("Run failed: %s", result.Message)
	}
	if result.Confidence >= 1.0 {
		t.Errorf("Confidence = %v, want < 1.0 for a recovered result", result.Confidence)
	}
}

func TestRunDecodesDataIntoConcreteType(t *testing.T) {
	schema := validator.Schema{Fields: []validator.Field{
		{Name: "title", Type: validator.TString, Required: true},
		{Name: "message", Type: validator.TString},
	}}
	p := &stubProvider{responses: []string{`{"final":{"title":"Fix parser bug","message":"details"}}`}}
	a := &Agent{Provider: p, Tools: tools.NewRegistry(), Schema: &schema}
	result := a.Run(context.Background(), TaskCommitMessage, testCommitContext(), Options{}, nil)
	if !result.Success {
		t.Fatalf("Run failed: %s", result.Message)
	}
	msg, ok := result.Data.(GeneratedMessage)
	if !ok {
		t.Fatalf("Data = %T, want GeneratedMessage", result.Data)
	}
	if msg.Title != "Fix parser bug" {
		t.Errorf("Title = %q, want %q", msg.Title, "Fix parser bug")
	}
}

type stubRegistryTool struct{}

func (stubRegistryTool) ID() string             { return "echo" }
func (stubRegistryTool) DisplayName() string    { return "Echo" }
func (stubRegistryTool) Description() string    { return "echoes params" }
func (stubRegistryTool) Capabilities() []string { return nil }
func (stubRegistryTool) ParameterSchema() map[string]any { return map[string]any{} }
func (stubRegistryTool) Execute(ctx context.Context, params map[string]any) (json.RawMessage, error) {
	return json.RawMessage(`{"ok":true}`), nil
}
