package reducer

import "github.com/jo-charles/git-iris/internal/agent"

// EventKind identifies the shape of an Event's payload.
type EventKind int

const (
	KeyPressed EventKind = iota
	AgentStarted
	AgentProgress
	AgentComplete
	AgentError
	StreamingChunk
	StreamingComplete
	UpdateContent
	StageFile
	UnstageFile
	Scroll
	OpenModal
	CloseModal
	Notify
	SwitchMode
	FocusPanel
	GitRefChanged
	WatcherFileEvent
	Tick
	Quit
)

// Event is the single input type the reducer consumes. Only the fields
// relevant to Kind are populated.
type Event struct {
	Kind EventKind

	// KeyPressed
	Key string

	// AgentStarted / AgentComplete / AgentError / AgentProgress
	TaskType agent.TaskType
	Result   *agent.TaskResult
	ErrMsg   string

	// StreamingChunk
	Chunk string

	// UpdateContent
	Content string

	// StageFile / UnstageFile
	Path string

	// Scroll
	Delta int

	// OpenModal
	Modal *Modal

	// Notify
	Notification Notification

	// SwitchMode
	Mode Mode

	// FocusPanel
	Panel Panel
}
