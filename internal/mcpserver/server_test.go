package mcpserver

import (
	"context"
	"os/exec"
	"testing"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/gitcontext"
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

type stubRunner struct {
	result *agent.TaskResult
}

func (s stubRunner) Run(ctx context.Context, task agent.TaskType, commitCtx *gitcontext.CommitContext, opts agent.Options, stream chan<- agent.StreamEvent) *agent.TaskResult {
	return s.result
}

func TestCommitToolReturnsFormattedMessage(t *testing.T) {
	dir := initTestRepo(t)
	srv := &Server{
		Repo: gitcontext.Open(dir),
		Agent: stubRunner{result: &agent.TaskResult{
			Success: true,
			Data:    agent.GeneratedMessage{Title: "feat: thing", Message: "does a thing"},
		}},
	}

	_, out, err := srv.commit(context.Background(), nil, ToolInput{})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if out.Text == "" {
		t.Error("expected non-empty formatted commit message")
	}
}

func TestChangelogToolRequiresFrom(t *testing.T) {
	dir := initTestRepo(t)
	srv := &Server{Repo: gitcontext.Open(dir), Agent: stubRunner{}}

	_, _, err := srv.changelogTool(context.Background(), nil, ToolInput{})
	if err == nil {
		t.Fatal("expected an error when from is missing")
	}
}
