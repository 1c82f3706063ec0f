// Package tui wires the pure reducer, the side-effect executor, and the
// rendering layer into a Bubble Tea Model. Within internal/tui only this
// file touches bubbletea directly (internal/cmdiris starts the program);
// reducer, effects, and render stay independently testable.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jo-charles/git-iris/internal/companion"
	"github.com/jo-charles/git-iris/internal/tui/effects"
	"github.com/jo-charles/git-iris/internal/tui/reducer"
	"github.com/jo-charles/git-iris/internal/tui/render"
)

// effectEventMsg wraps an Event posted back by the effects.Executor.
type effectEventMsg reducer.Event

// watcherEventMsg wraps a companion.Event promoted from the filesystem
// watcher into the reducer's event space.
type watcherEventMsg companion.Event

// Model is the Bubble Tea model driving Studio.
type Model struct {
	state    reducer.StudioState
	executor *effects.Executor
	watcher  *companion.Watcher
	width    int
	height   int
}

// New returns a Studio model with no mode data loaded yet.
func New(executor *effects.Executor, watcher *companion.Watcher) *Model {
	return &Model{state: reducer.NewState(), executor: executor, watcher: watcher}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEffectEvents(), m.listenForWatcherEvents())
}

func (m *Model) listenForEffectEvents() tea.Cmd {
	ch := m.executor.Events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return effectEventMsg(ev)
	}
}

func (m *Model) listenForWatcherEvents() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return watcherEventMsg(ev)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.dispatch(reducer.Event{Kind: reducer.KeyPressed, Key: msg.String()})

	case effectEventMsg:
		next, cmd := m.dispatch(reducer.Event(msg))
		return next, tea.Batch(cmd, m.listenForEffectEvents())

	case watcherEventMsg:
		ev := promoteWatcherEvent(companion.Event(msg))
		next, cmd := m.dispatch(ev)
		return next, tea.Batch(cmd, m.listenForWatcherEvents())
	}
	return m, nil
}

func (m *Model) dispatch(ev reducer.Event) (tea.Model, tea.Cmd) {
	state, sideEffects := reducer.Reduce(m.state, ev)
	m.state = state

	if len(sideEffects) == 0 {
		return m, nil
	}
	return m, m.runEffects(sideEffects)
}

func (m *Model) runEffects(sideEffects []reducer.SideEffect) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		for _, eff := range sideEffects {
			if eff.Kind == reducer.QuitEffect {
				return tea.Quit()
			}
			m.executor.Run(ctx, eff)
		}
		return nil
	}
}

func (m *Model) View() string {
	return render.View(m.state, m.width, m.height)
}

func promoteWatcherEvent(ev companion.Event) reducer.Event {
	switch ev.Kind {
	case companion.GitRefChanged:
		return reducer.Event{Kind: reducer.GitRefChanged}
	case companion.WatcherError:
		return reducer.Event{Kind: reducer.Notify, Notification: reducer.Notification{Message: ev.Message, IsError: true}}
	default:
		return reducer.Event{Kind: reducer.WatcherFileEvent, Path: ev.Path}
	}
}
