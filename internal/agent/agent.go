package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/provider"
	"github.com/jo-charles/git-iris/internal/tools"
	"github.com/jo-charles/git-iris/internal/validator"
)

// maxTurns bounds the tool-calling loop; exceeding it is a task failure,
// not a panic.
const defaultMaxTurns = 12

// defaultAnalyzeMax is the value Options.analyzeMax falls back to. Run does
// not apply it: the Git context extractor runs the file analyzer on every
// changed file.
const defaultAnalyzeMax = 10

// Options configures one agent invocation.
type Options struct {
	MaxTurns    int
	AnalyzeMax  int
	CharBudget  int // diff truncation budget; 0 or less means defaultCharBudget (12,000 characters)
	Preset      string
	Instructions string
	Stream      bool
	Gitmoji     bool
	DetailLevel string // review depth: "minimal", "standard" (default), or "detailed"
}

func (o Options) maxTurns() int {
	if o.MaxTurns > 0 {
		return o.MaxTurns
	}
	return defaultMaxTurns
}

func (o Options) analyzeMax() int {
	if o.AnalyzeMax > 0 {
		return o.AnalyzeMax
	}
	return defaultAnalyzeMax
}

// StreamEvent is forwarded over Agent.Run's stream channel as chunks
// arrive; the final aggregated string is still parsed before completion.
type StreamEvent struct {
	Chunk    string
	Done     bool
	Err      error
}

// Agent drives one tool-calling loop against a provider.
type Agent struct {
	Provider provider.Provider
	Tools    *tools.Registry
	Schema   *validator.Schema // nil when the task does not expect structured output
}

// toolEnvelope is the JSON protocol instructing the model either to invoke
// a tool or to produce its final answer. The system prompt documents this
// shape; see BuildSystemPrompt.
type toolEnvelope struct {
	ToolCall *toolCall       `json:"tool_call,omitempty"`
	Final    json.RawMessage `json:"final,omitempty"`
}

type toolCall struct {
	ID     string         `json:"id"`
	Params map[string]any `json:"params"`
}

// Run executes the full context-gathering -> prompt-assembly ->
// tool-calling-loop -> parsing pipeline described for the agent core, and
// returns a TaskResult.
func (a *Agent) Run(ctx context.Context, task TaskType, commitCtx *gitcontext.CommitContext, opts Options, stream chan<- StreamEvent) *TaskResult {
	if stream != nil {
		defer close(stream)
	}

	systemPrompt := BuildSystemPrompt(task, opts, a.Tools)
	userPrompt := BuildUserPrompt(commitCtx, opts)

	var transcript []string
	for turn := 0; turn < opts.maxTurns(); turn++ {
		full := userPrompt
		if len(transcript) > 0 {
			full = userPrompt + "\n\n---\nTool results so far:\n" + joinTranscript(transcript)
		}

		raw, err := a.generate(ctx, systemPrompt, full, stream)
		if err != nil {
			return failure(fmt.Sprintf("provider error: %v", err))
		}

		env, ok := parseEnvelope(raw)
		if !ok {
			return a.finalize(task, raw)
		}

		if env.ToolCall != nil {
			result, err := a.Tools.Execute(ctx, env.ToolCall.ID, env.ToolCall.Params)
			entry := fmt.Sprintf("tool %q -> %s", env.ToolCall.ID, string(result))
			if err != nil {
				entry = fmt.Sprintf("tool %q -> error: %v", env.ToolCall.ID, err)
			}
			transcript = append(transcript, entry)
			continue
		}

		return a.finalize(task, string(env.Final))
	}

	return failure("max turns exceeded")
}

func (a *Agent) generate(ctx context.Context, systemPrompt, userPrompt string, stream chan<- StreamEvent) (string, error) {
	if stream == nil {
		return a.Provider.GenerateMessage(ctx, systemPrompt, userPrompt)
	}

	chunks, errc := a.Provider.GenerateStream(ctx, systemPrompt, userPrompt)
	var full string
	for chunk := range chunks {
		full += chunk
		stream <- StreamEvent{Chunk: chunk}
	}
	if err := <-errc; err != nil {
		stream <- StreamEvent{Err: err}
		return "", err
	}
	stream <- StreamEvent{Done: true}
	return full, nil
}

func (a *Agent) finalize(task TaskType, raw string) *TaskResult {
	if a.Schema == nil {
		return &TaskResult{Success: true, Message: raw, Confidence: 1.0}
	}

	res := validator.ValidateAndParse(raw, *a.Schema)
	switch res.Outcome {
	case validator.Success:
		return &TaskResult{Success: true, Data: decodeData(task, res.Value), Confidence: 1.0}
	case validator.Recovered:
		meta := map[string]string{}
		for i, w := range res.Warnings {
			meta[fmt.Sprintf("warning_%d", i)] = w
		}
		return &TaskResult{Success: true, Data: decodeData(task, res.Value), Confidence: 0.7, Metadata: meta}
	default:
		return failure(res.Err.Error())
	}
}

// decodeData re-marshals the validator's recovered map into the concrete
// response type for task, so callers can type-assert on agent.GeneratedMessage
// and friends instead of a bare map[string]any. A marshal/unmarshal failure
// here would mean the validator already accepted a shape its own schema
// disagrees with; fall back to the raw map rather than lose the result.
func decodeData(task TaskType, value map[string]any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}

	var target any
	switch task {
	case TaskCommitMessage:
		target = &GeneratedMessage{}
	case TaskPullRequest:
		target = &GeneratedPullRequest{}
	case TaskChangelog:
		target = &ChangelogResponse{}
	case TaskReleaseNotes:
		target = &ReleaseNotesResponse{}
	default:
		return value
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return value
	}

	switch t := target.(type) {
	case *GeneratedMessage:
		return *t
	case *GeneratedPullRequest:
		return *t
	case *ChangelogResponse:
		return *t
	case *ReleaseNotesResponse:
		return *t
	default:
		return value
	}
}

func parseEnvelope(raw string) (*toolEnvelope, bool) {
	var env toolEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false
	}
	if env.ToolCall == nil && env.Final == nil {
		return nil, false
	}
	return &env, true
}

func joinTranscript(entries []string) string {
	out := ""
	for _, e := range entries {
		out += "- " + e + "\n"
	}
	return out
}
