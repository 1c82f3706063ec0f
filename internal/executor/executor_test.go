package executor

import (
	"context"
	"testing"
	"time"
)

func TestRunSyncReturnsResult(t *testing.T) {
	e := New(2)
	defer e.Shutdown()

	result, err := e.RunSync(context.Background(), TaskRequest{
		Priority: Normal,
		Run: func(ctx context.Context) (*ExecutionResult, error) {
			return &ExecutionResult{Success: true, Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if !result.Success || result.Message != "ok" {
		t.Errorf("result = %+v", result)
	}
}

func TestPriorityQueueServesHigherFirst(t *testing.T) {
	var q priorityQueue
	now := time.Now()
	low := &queuedTask{req: TaskRequest{Priority: Low}, createdAt: now}
	high := &queuedTask{req: TaskRequest{Priority: High}, createdAt: now.Add(time.Millisecond)}
	q = append(q, low, high)
	if !q.Less(1, 0) {
		t.Error("expected High to sort before Low regardless of creation order")
	}
}

func TestPriorityQueueFIFOWithinPriority(t *testing.T) {
	var q priorityQueue
	first := &queuedTask{req: TaskRequest{Priority: Normal}, createdAt: time.Now()}
	second := &queuedTask{req: TaskRequest{Priority: Normal}, createdAt: first.createdAt.Add(time.Millisecond)}
	q = append(q, second, first)
	if !q.Less(1, 0) {
		t.Error("expected earlier-created task to sort first within the same priority")
	}
}

func TestSubmitAfterShutdownFails(t *testing.T) {
	e := New(1)
	e.Shutdown()
	if err := e.Submit(TaskRequest{Run: func(ctx context.Context) (*ExecutionResult, error) {
		return &ExecutionResult{Success: true}, nil
	}}); err != ErrShuttingDown {
		t.Errorf("err = %v, want ErrShuttingDown", err)
	}
}

func TestFindAgentForTaskPicksHighestPriorityThenRegistrationOrder(t *testing.T) {
	reg := NewAgentRegistry()
	reg.Register(fakeAgent{handles: "commit", priority: Low})
	reg.Register(fakeAgent{handles: "commit", priority: High, name: "winner"})
	reg.Register(fakeAgent{handles: "commit", priority: High, name: "loser"})

	a, ok := reg.FindAgentForTask("commit")
	if !ok {
		t.Fatal("expected an agent to be found")
	}
	if a.(fakeAgent).name != "winner" {
		t.Errorf("got %q, want winner (first-registered at the top priority)", a.(fakeAgent).name)
	}
}

type fakeAgent struct {
	handles  string
	priority Priority
	name     string
}

func (f fakeAgent) CanHandleTask(taskType string) bool  { return taskType == f.handles }
func (f fakeAgent) TaskPriority(taskType string) Priority { return f.priority }
