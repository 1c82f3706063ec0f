package reducer

import "github.com/jo-charles/git-iris/internal/agent"

// Reduce applies event to state and returns the new state plus the side
// effects the caller should execute. Reduce never performs I/O, reads a
// clock, or consults randomness; callers pass in any time-dependent value
// (e.g. Notification.ShownAt) as part of the event.
func Reduce(state StudioState, ev Event) (StudioState, []SideEffect) {
	var effects []SideEffect

	switch ev.Kind {
	case KeyPressed:
		state, effects = reduceKey(state, ev)

	case SwitchMode:
		state.ActiveMode = ev.Mode
		ms := state.Modes.Get(ev.Mode)
		if !ms.Loaded && ev.Mode != Explore {
			effects = append(effects, SideEffect{
				Kind:    LoadData,
				Mode:    ev.Mode,
				FromRef: ms.FromRef,
				ToRef:   ms.ToRef,
			})
		}
		state.Dirty = true

	case FocusPanel:
		state.FocusedPanel = ev.Panel
		state.Dirty = true

	case AgentStarted:
		ms := state.Modes.Get(modeForTask(ev.TaskType))
		ms.Generating = true
		state.IrisStatus = IrisStatus{Kind: Thinking, Message: string(ev.TaskType)}
		state.Dirty = true

	case AgentProgress:
		state.Dirty = true

	case AgentComplete:
		ms := state.Modes.Get(modeForTask(ev.TaskType))
		ms.Generating = false
		ms.Loaded = true
		ms.StreamingContent = ""
		if ev.Result != nil {
			ms.GeneratedContent = formatResult(ev.Result)
		}
		state.IrisStatus = IrisStatus{Kind: Idle}
		state.Dirty = true

	case AgentError:
		ms := state.Modes.Get(modeForTask(ev.TaskType))
		ms.Generating = false
		state.IrisStatus = IrisStatus{Kind: ErrorStatus, Message: ev.ErrMsg}
		state.pushNotification(Notification{Message: ev.ErrMsg, IsError: true})
		state.Dirty = true

	case StreamingChunk:
		ms := state.Modes.Get(state.ActiveMode)
		ms.StreamingContent += ev.Chunk
		state.Dirty = true

	case StreamingComplete:
		ms := state.Modes.Get(state.ActiveMode)
		ms.StreamingContent = ""
		state.Dirty = true

	case UpdateContent:
		ms := state.Modes.Get(state.ActiveMode)
		ms.GeneratedContent = ev.Content
		state.Dirty = true

	case StageFile:
		effects = append(effects, SideEffect{Kind: GitStage, Path: ev.Path})

	case UnstageFile:
		effects = append(effects, SideEffect{Kind: GitUnstage, Path: ev.Path})

	case Scroll:
		ms := state.Modes.Get(state.ActiveMode)
		ms.ScrollOffset += ev.Delta
		if ms.ScrollOffset < 0 {
			ms.ScrollOffset = 0
		}
		state.Dirty = true

	case OpenModal:
		state.Modal = ev.Modal
		state.Dirty = true

	case CloseModal:
		state.Modal = nil
		state.Dirty = true

	case Notify:
		state.pushNotification(ev.Notification)
		state.Dirty = true

	case GitRefChanged, WatcherFileEvent:
		effects = append(effects, SideEffect{Kind: RefreshGitStatus})

	case Tick:
		// no-op placeholder for a periodic redraw trigger

	case Quit:
		state.Quitting = true
		effects = append(effects, SideEffect{Kind: QuitEffect})
	}

	return state, effects
}

func modeForTask(tt agent.TaskType) Mode {
	switch tt {
	case agent.TaskCommitMessage:
		return Commit
	case agent.TaskPullRequest:
		return PR
	case agent.TaskReview:
		return Review
	case agent.TaskChangelog:
		return Changelog
	case agent.TaskReleaseNotes:
		return ReleaseNotes
	default:
		return Explore
	}
}

func formatResult(r *agent.TaskResult) string {
	type formatter interface{ Format() string }
	if f, ok := r.Data.(formatter); ok {
		return f.Format()
	}
	if s, ok := r.Data.(string); ok {
		return s
	}
	return r.Message
}
