package effects

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/tui/reducer"
)

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "a@b.c")
	run("config", "user.name", "tester")
	return dir
}

type stubAgentRunner struct {
	result *agent.TaskResult
}

func (s stubAgentRunner) Run(ctx context.Context, task agent.TaskType, commitCtx *gitcontext.CommitContext, opts agent.Options, stream chan<- agent.StreamEvent) *agent.TaskResult {
	if stream != nil {
		stream <- agent.StreamEvent{Chunk: "partial"}
		stream <- agent.StreamEvent{Done: true}
	}
	return s.result
}

type stubClipboard struct {
	written string
	err     error
}

func (c *stubClipboard) Write(s string) error {
	c.written = s
	return c.err
}

func TestRunGitStagePostsRefChanged(t *testing.T) {
	dir := initTestRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := gitcontext.Open(dir)
	ex := New(repo, gitcontext.Config{}, nil, nil)

	go ex.Run(context.Background(), reducer.SideEffect{Kind: reducer.GitStage, Path: "a.txt"})

	ev := <-ex.Events
	if ev.Kind != reducer.GitRefChanged {
		t.Errorf("event kind = %v, want GitRefChanged", ev.Kind)
	}
}

func TestRunSpawnAgentPostsStartedThenComplete(t *testing.T) {
	dir := initTestRepo(t)
	repo := gitcontext.Open(dir)
	runner := stubAgentRunner{result: &agent.TaskResult{Success: true, Message: "ok", Data: "feat: x"}}
	ex := New(repo, gitcontext.Config{}, runner, nil)

	go ex.Run(context.Background(), reducer.SideEffect{Kind: reducer.SpawnAgent, TaskType: agent.TaskCommitMessage, Mode: reducer.Commit})

	started := <-ex.Events
	if started.Kind != reducer.AgentStarted {
		t.Fatalf("first event = %v, want AgentStarted", started.Kind)
	}

	var sawComplete bool
	for i := 0; i < 5; i++ {
		ev := <-ex.Events
		if ev.Kind == reducer.AgentComplete {
			sawComplete = true
			break
		}
	}
	if !sawComplete {
		t.Error("expected an AgentComplete event")
	}
}

func TestRunCopyToClipboard(t *testing.T) {
	clip := &stubClipboard{}
	ex := &Executor{Clipboard: clip, Events: make(chan reducer.Event, 4)}
	ex.Run(context.Background(), reducer.SideEffect{Kind: reducer.CopyToClipboard, Text: "hello"})
	if clip.written != "hello" {
		t.Errorf("clipboard written = %q, want %q", clip.written, "hello")
	}
}
