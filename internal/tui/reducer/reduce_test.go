package reducer

import (
	"testing"

	"github.com/jo-charles/git-iris/internal/agent"
)

func TestSwitchModeLoadsDataOnce(t *testing.T) {
	state := NewState()
	state, effects := Reduce(state, Event{Kind: SwitchMode, Mode: Commit})

	if len(effects) != 1 || effects[0].Kind != LoadData {
		t.Fatalf("effects = %+v, want one LoadData effect", effects)
	}
	if state.ActiveMode != Commit {
		t.Errorf("ActiveMode = %v, want Commit", state.ActiveMode)
	}

	state.Modes.Commit.Loaded = true
	_, effects = Reduce(state, Event{Kind: SwitchMode, Mode: Commit})
	if len(effects) != 0 {
		t.Errorf("expected no LoadData once loaded, got %+v", effects)
	}
}

func TestAgentCompleteRoutesByTaskType(t *testing.T) {
	state := NewState()
	state.Modes.Commit.Generating = true

	state, _ = Reduce(state, Event{
		Kind:     AgentComplete,
		TaskType: agent.TaskCommitMessage,
		Result:   &agent.TaskResult{Success: true, Message: "ok", Data: "feat: add thing"},
	})

	if state.Modes.Commit.Generating {
		t.Error("expected Generating cleared")
	}
	if state.Modes.Commit.GeneratedContent != "feat: add thing" {
		t.Errorf("GeneratedContent = %q", state.Modes.Commit.GeneratedContent)
	}
}

func TestAgentErrorClearsGeneratingAndNotifies(t *testing.T) {
	state := NewState()
	state.Modes.Review.Generating = true

	state, _ = Reduce(state, Event{Kind: AgentError, TaskType: agent.TaskReview, ErrMsg: "boom"})

	if state.Modes.Review.Generating {
		t.Error("expected Generating cleared on error")
	}
	if len(state.Notifications) != 1 || state.Notifications[0].Message != "boom" {
		t.Errorf("Notifications = %+v", state.Notifications)
	}
}

func TestOpenModalReplacesCurrent(t *testing.T) {
	state := NewState()
	state, _ = Reduce(state, Event{Kind: OpenModal, Modal: &Modal{Kind: ModalHelp, Title: "help"}})
	state, _ = Reduce(state, Event{Kind: OpenModal, Modal: &Modal{Kind: ModalChat, Title: "chat"}})

	if state.Modal == nil || state.Modal.Kind != ModalChat {
		t.Errorf("Modal = %+v, want replaced by chat modal", state.Modal)
	}
}

func TestEscapeClosesModal(t *testing.T) {
	state := NewState()
	state.Modal = &Modal{Kind: ModalHelp}
	state, _ = Reduce(state, Event{Kind: KeyPressed, Key: "esc"})
	if state.Modal != nil {
		t.Error("expected modal closed by Escape")
	}
}

func TestCommitEditorStateMachine(t *testing.T) {
	state := NewState()
	state.ActiveMode = Commit
	state.Modes.Commit.GeneratedContent = "fix: bug"

	state, _ = Reduce(state, Event{Kind: KeyPressed, Key: "e"})
	if !state.Modes.Commit.Editing {
		t.Fatal("expected Editing after 'e'")
	}

	state, _ = Reduce(state, Event{Kind: KeyPressed, Key: "!"})
	if state.Modes.Commit.EditBuffer != "fix: bug!" {
		t.Errorf("EditBuffer = %q", state.Modes.Commit.EditBuffer)
	}

	state, _ = Reduce(state, Event{Kind: KeyPressed, Key: "esc"})
	if state.Modes.Commit.Editing {
		t.Error("expected Editing cleared by Esc")
	}
	if state.Modes.Commit.GeneratedContent != "fix: bug!" {
		t.Errorf("GeneratedContent = %q, want edit buffer committed", state.Modes.Commit.GeneratedContent)
	}
}

func TestQuitEmitsQuitEffect(t *testing.T) {
	state := NewState()
	state, effects := Reduce(state, Event{Kind: KeyPressed, Key: "q"})
	if !state.Quitting {
		t.Error("expected Quitting set")
	}
	if len(effects) != 1 || effects[0].Kind != QuitEffect {
		t.Errorf("effects = %+v, want one QuitEffect", effects)
	}
}

func TestChatStateDropsOldestMessages(t *testing.T) {
	var chat ChatState
	for i := 0; i < maxChatMessages+10; i++ {
		chat.appendMessage(ChatMessage{Role: "user", Content: "x"})
	}
	if len(chat.Messages) != maxChatMessages {
		t.Errorf("len(Messages) = %d, want %d", len(chat.Messages), maxChatMessages)
	}
}

func TestChatStateDropsOldestToolCalls(t *testing.T) {
	var chat ChatState
	for i := 0; i < maxChatToolCalls+5; i++ {
		chat.appendToolCall(ChatToolCall{ToolID: "t"})
	}
	if len(chat.ToolCalls) != maxChatToolCalls {
		t.Errorf("len(ToolCalls) = %d, want %d", len(chat.ToolCalls), maxChatToolCalls)
	}
}
