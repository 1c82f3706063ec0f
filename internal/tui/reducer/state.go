// Package reducer implements the Studio TUI's pure event reducer: all
// state transitions go through Reduce, which never performs I/O, reads
// a clock, or consults randomness.
package reducer

import "time"

// Mode is a top-level Studio view.
type Mode int

const (
	Explore Mode = iota
	Commit
	Review
	PR
	Changelog
	ReleaseNotes
)

// Panel identifies which of the three panels has focus.
type Panel int

const (
	PanelLeft Panel = iota
	PanelCenter
	PanelRight
)

// IrisStatus summarizes what the agent is currently doing.
type IrisStatusKind int

const (
	Idle IrisStatusKind = iota
	Thinking
	ErrorStatus
)

// IrisStatus pairs a status kind with an optional message.
type IrisStatus struct {
	Kind    IrisStatusKind
	Message string
}

const (
	maxChatMessages  = 500
	maxChatToolCalls = 20
	maxNotifications = 50
)

// ChatMessage is one turn in the chat modal's history.
type ChatMessage struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatToolCall records one tool invocation shown in the chat transcript.
type ChatToolCall struct {
	ToolID string
	Params map[string]any
	Result string
}

// ChatState bounds its own history: drop-oldest at 500 messages, drop-oldest
// at 20 tool calls.
type ChatState struct {
	Messages  []ChatMessage
	ToolCalls []ChatToolCall
	Input     string
}

func (c *ChatState) appendMessage(m ChatMessage) {
	c.Messages = append(c.Messages, m)
	if len(c.Messages) > maxChatMessages {
		c.Messages = c.Messages[len(c.Messages)-maxChatMessages:]
	}
}

func (c *ChatState) appendToolCall(tc ChatToolCall) {
	c.ToolCalls = append(c.ToolCalls, tc)
	if len(c.ToolCalls) > maxChatToolCalls {
		c.ToolCalls = c.ToolCalls[len(c.ToolCalls)-maxChatToolCalls:]
	}
}

// ModalKind distinguishes the single modal the stack may hold.
type ModalKind int

const (
	ModalChat ModalKind = iota
	ModalRefSelector
	ModalHelp
	ModalConfirm
)

// Modal is the one floating overlay Studio may show at a time.
type Modal struct {
	Kind    ModalKind
	Title   string
	Message string
}

// ModeState is the per-mode substate: scroll offset, selection, generated
// content, a generating flag, and the ref pair used for data loading.
type ModeState struct {
	ScrollOffset     int
	Selection        int
	GeneratedContent string
	StreamingContent string
	Generating       bool
	Loaded           bool
	FromRef          string
	ToRef            string
	Variants         []string
	VariantIndex     int
	Editing          bool // commit message editor: View <-> Edit
	EditBuffer       string
}

// ModeStates holds one ModeState per Mode.
type ModeStates struct {
	Explore      ModeState
	Commit       ModeState
	Review       ModeState
	PR           ModeState
	Changelog    ModeState
	ReleaseNotes ModeState
}

func (m *ModeStates) Get(mode Mode) *ModeState {
	switch mode {
	case Commit:
		return &m.Commit
	case Review:
		return &m.Review
	case PR:
		return &m.PR
	case Changelog:
		return &m.Changelog
	case ReleaseNotes:
		return &m.ReleaseNotes
	default:
		return &m.Explore
	}
}

// GitStatusSummary is a rendering-ready snapshot of repo state.
type GitStatusSummary struct {
	Branch        string
	StagedCount   int
	UnstagedCount int
	UntrackedCount int
}

// Notification is a transient, queued status line.
type Notification struct {
	Message  string
	IsError  bool
	ShownAt  time.Time
}

// StudioState is the entire TUI application state, owned exclusively by
// the reducer.
type StudioState struct {
	ActiveMode    Mode
	FocusedPanel  Panel
	Modes         ModeStates
	Modal         *Modal
	Chat          ChatState
	GitStatus     GitStatusSummary
	IrisStatus    IrisStatus
	Dirty         bool
	Notifications []Notification
	Quitting      bool
}

// NewState returns a Studio state with no mode data loaded.
func NewState() StudioState {
	return StudioState{ActiveMode: Explore, FocusedPanel: PanelLeft}
}

func (s *StudioState) pushNotification(n Notification) {
	s.Notifications = append(s.Notifications, n)
	if len(s.Notifications) > maxNotifications {
		s.Notifications = s.Notifications[len(s.Notifications)-maxNotifications:]
	}
}
