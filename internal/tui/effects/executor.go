// Package effects runs the SideEffect values the reducer emits. It is the
// only place in the TUI runtime that performs I/O: git mutations, agent
// dispatch, and clipboard access all happen here, off the reducer's pure
// call path. Settings are not persisted.
package effects

import (
	"context"
	"fmt"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/tui/reducer"
)

// Clipboard abstracts the system clipboard so tests don't touch the OS one.
type Clipboard interface {
	Write(s string) error
}

// AgentRunner abstracts the agent core so the executor doesn't depend on
// a concrete provider/tool wiring.
type AgentRunner interface {
	Run(ctx context.Context, task agent.TaskType, commitCtx *gitcontext.CommitContext, opts agent.Options, stream chan<- agent.StreamEvent) *agent.TaskResult
}

// Executor consumes SideEffect values and posts the resulting Events back
// onto Events for the host loop to feed through reducer.Reduce.
type Executor struct {
	Repo      *gitcontext.Repo
	Cfg       gitcontext.Config
	Agent     AgentRunner
	Clipboard Clipboard

	Events chan reducer.Event
}

// New returns an Executor posting results to an internally buffered
// channel the host loop drains.
func New(repo *gitcontext.Repo, cfg gitcontext.Config, ag AgentRunner, clip Clipboard) *Executor {
	return &Executor{Repo: repo, Cfg: cfg, Agent: ag, Clipboard: clip, Events: make(chan reducer.Event, 256)}
}

func (e *Executor) post(ev reducer.Event) {
	e.Events <- ev
}

// Run executes one SideEffect. Side effects are idempotent or carry
// enough identity to be safely replayed after a crash; Run does not dedupe.
func (e *Executor) Run(ctx context.Context, eff reducer.SideEffect) {
	switch eff.Kind {
	case reducer.SpawnAgent:
		e.runSpawnAgent(ctx, eff)

	case reducer.LoadData:
		e.runLoadData(ctx, eff)

	case reducer.GitStage:
		if err := e.Repo.Stage(ctx, eff.Path); err != nil {
			e.notifyError(err)
			return
		}
		e.post(reducer.Event{Kind: reducer.GitRefChanged})

	case reducer.GitUnstage:
		if err := e.Repo.Unstage(ctx, eff.Path); err != nil {
			e.notifyError(err)
			return
		}
		e.post(reducer.Event{Kind: reducer.GitRefChanged})

	case reducer.GitStageAll:
		if err := e.Repo.StageAll(ctx); err != nil {
			e.notifyError(err)
			return
		}
		e.post(reducer.Event{Kind: reducer.GitRefChanged})

	case reducer.GitUnstageAll:
		if err := e.Repo.UnstageAll(ctx); err != nil {
			e.notifyError(err)
			return
		}
		e.post(reducer.Event{Kind: reducer.GitRefChanged})

	case reducer.ExecuteCommit:
		if _, err := e.Repo.CommitAndVerify(ctx, eff.Message); err != nil {
			e.notifyError(err)
			return
		}
		e.post(reducer.Event{Kind: reducer.Notify, Notification: reducer.Notification{Message: "committed"}})

	case reducer.CopyToClipboard:
		if e.Clipboard == nil {
			return
		}
		if err := e.Clipboard.Write(eff.Text); err != nil {
			e.notifyError(err)
		}

	case reducer.SaveSettings, reducer.RefreshGitStatus, reducer.ShowNotification, reducer.Redraw:
		// accepted and dropped: neither the executor nor the host loop acts
		// on these effects.

	case reducer.QuitEffect:
		close(e.Events)
	}
}

func (e *Executor) notifyError(err error) {
	e.post(reducer.Event{Kind: reducer.Notify, Notification: reducer.Notification{Message: err.Error(), IsError: true}})
}

func (e *Executor) runSpawnAgent(ctx context.Context, eff reducer.SideEffect) {
	e.post(reducer.Event{Kind: reducer.AgentStarted, TaskType: eff.TaskType})

	commitCtx, err := e.loadContextForMode(ctx, eff.Mode, eff.FromRef, eff.ToRef)
	if err != nil {
		e.post(reducer.Event{Kind: reducer.AgentError, TaskType: eff.TaskType, ErrMsg: err.Error()})
		return
	}

	stream := make(chan agent.StreamEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range stream {
			if ev.Err != nil {
				continue
			}
			if ev.Chunk != "" {
				e.post(reducer.Event{Kind: reducer.StreamingChunk, Chunk: ev.Chunk})
			}
			if ev.Done {
				e.post(reducer.Event{Kind: reducer.StreamingComplete})
			}
		}
	}()

	result := e.Agent.Run(ctx, eff.TaskType, commitCtx, agent.Options{Stream: true}, stream)
	close(stream)
	<-done

	if result == nil || !result.Success {
		msg := "agent task failed"
		if result != nil {
			msg = result.Message
		}
		e.post(reducer.Event{Kind: reducer.AgentError, TaskType: eff.TaskType, ErrMsg: msg})
		return
	}
	e.post(reducer.Event{Kind: reducer.AgentComplete, TaskType: eff.TaskType, Result: result})
}

func (e *Executor) runLoadData(ctx context.Context, eff reducer.SideEffect) {
	_, err := e.loadContextForMode(ctx, eff.Mode, eff.FromRef, eff.ToRef)
	if err != nil {
		e.notifyError(err)
		return
	}
	e.post(reducer.Event{Kind: reducer.UpdateContent})
}

func (e *Executor) loadContextForMode(ctx context.Context, mode reducer.Mode, from, to string) (*gitcontext.CommitContext, error) {
	switch mode {
	case reducer.Commit, reducer.Review:
		return e.Repo.GetGitInfo(ctx, e.Cfg)
	case reducer.PR:
		if from == "" {
			from = "main"
		}
		if to == "" {
			to = "HEAD"
		}
		return e.Repo.GetGitInfoForBranchDiff(ctx, e.Cfg, from, to)
	case reducer.Changelog, reducer.ReleaseNotes:
		if from == "" {
			return nil, fmt.Errorf("effects: changelog/release-notes requires a from ref")
		}
		return e.Repo.GetGitInfoForCommitRange(ctx, e.Cfg, from, to)
	default:
		return e.Repo.GetGitInfo(ctx, e.Cfg)
	}
}
