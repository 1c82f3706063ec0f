package reducer

import "github.com/jo-charles/git-iris/internal/agent"

// SideEffectKind identifies the I/O a SideEffect asks the executor to
// perform. All side effects are idempotent or carry enough identity to be
// safely replayed after a crash; the executor does not dedupe.
type SideEffectKind int

const (
	SpawnAgent SideEffectKind = iota
	LoadData
	GitStage
	GitUnstage
	GitStageAll
	GitUnstageAll
	ExecuteCommit
	CopyToClipboard
	SaveSettings
	RefreshGitStatus
	ShowNotification
	Redraw
	QuitEffect
)

// SideEffect is a value describing I/O the reducer wants performed,
// executed outside the reducer to keep it pure.
type SideEffect struct {
	Kind SideEffectKind

	// SpawnAgent
	TaskType agent.TaskType
	Mode     Mode

	// LoadData
	FromRef string
	ToRef   string

	// GitStage / GitUnstage
	Path string

	// ExecuteCommit
	Message string

	// CopyToClipboard
	Text string

	// ShowNotification
	Notification Notification
}
