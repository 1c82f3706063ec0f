// Package mcpserver exposes git-iris's four artifact-generating tasks
// (commit, code review, changelog, release notes) as an MCP tool surface
// over github.com/modelcontextprotocol/go-sdk/mcp.
package mcpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/changelog"
	"github.com/jo-charles/git-iris/internal/gitcontext"
)

// AgentRunner is the subset of internal/agent.Agent the MCP tools depend on.
type AgentRunner interface {
	Run(ctx context.Context, task agent.TaskType, commitCtx *gitcontext.CommitContext, opts agent.Options, stream chan<- agent.StreamEvent) *agent.TaskResult
}

// Server wires a Repo handle and an AgentRunner into the four MCP tools.
type Server struct {
	Repo  *gitcontext.Repo
	Agent AgentRunner
	Cfg   gitcontext.Config
}

// ToolInput is the common parameter shape across all four tools.
type ToolInput struct {
	From               string `json:"from,omitempty"`
	To                 string `json:"to,omitempty"`
	DetailLevel        string `json:"detail_level,omitempty"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
	Repository         string `json:"repository,omitempty"`
	VersionName        string `json:"version_name,omitempty"`
}

// ToolOutput is the common result shape: a single text payload.
type ToolOutput struct {
	Text string `json:"text"`
}

// NewMCPServer builds the *mcp.Server with all four tools registered.
func NewMCPServer(s *Server) *mcp.Server {
	impl := &mcp.Implementation{
		Name:    "git-iris",
		Title:   "git-iris",
		Version: "0.1.0",
	}
	server := mcp.NewServer(impl, &mcp.ServerOptions{HasTools: true})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_iris_commit",
		Description: "Generate a commit message for the currently staged changes.",
	}, s.commit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_iris_code_review",
		Description: "Review the currently staged changes, or a from/to commit range.",
	}, s.codeReview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_iris_changelog",
		Description: "Generate a changelog entry for a commit range.",
	}, s.changelogTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_iris_release_notes",
		Description: "Generate release notes for a commit range.",
	}, s.releaseNotes)

	return server
}

// NewHandler returns an http.Handler serving the MCP surface over
// streamable HTTP, grounded on mcp.NewStreamableHTTPHandler.
func NewHandler(s *Server) http.Handler {
	server := NewMCPServer(s)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (s *Server) repoFor(ctx context.Context, in ToolInput) (*gitcontext.Repo, error) {
	if in.Repository == "" {
		return s.Repo, nil
	}
	return gitcontext.CloneRemote(ctx, in.Repository)
}

func (s *Server) commit(ctx context.Context, _ *mcp.CallToolRequest, in ToolInput) (*mcp.CallToolResult, ToolOutput, error) {
	repo, err := s.repoFor(ctx, in)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	commitCtx, err := repo.GetGitInfo(ctx, s.Cfg)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	result := s.Agent.Run(ctx, agent.TaskCommitMessage, commitCtx, agent.Options{Instructions: in.CustomInstructions}, nil)
	if !result.Success {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_commit: %s", result.Message)
	}
	msg, ok := result.Data.(agent.GeneratedMessage)
	if !ok {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_commit: unexpected result shape")
	}
	return nil, ToolOutput{Text: msg.Format()}, nil
}

func (s *Server) codeReview(ctx context.Context, _ *mcp.CallToolRequest, in ToolInput) (*mcp.CallToolResult, ToolOutput, error) {
	repo, err := s.repoFor(ctx, in)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	commitCtx, err := s.contextForRange(ctx, repo, in)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	result := s.Agent.Run(ctx, agent.TaskReview, commitCtx, agent.Options{DetailLevel: in.DetailLevel, Instructions: in.CustomInstructions}, nil)
	if !result.Success {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_code_review: %s", result.Message)
	}
	return nil, ToolOutput{Text: result.Message}, nil
}

func (s *Server) changelogTool(ctx context.Context, _ *mcp.CallToolRequest, in ToolInput) (*mcp.CallToolResult, ToolOutput, error) {
	repo, err := s.repoFor(ctx, in)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	if in.From == "" {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_changelog: from is required")
	}
	commitCtx, err := repo.GetGitInfoForCommitRange(ctx, s.Cfg, in.From, in.To)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	result := s.Agent.Run(ctx, agent.TaskChangelog, commitCtx, agent.Options{Instructions: in.CustomInstructions}, nil)
	if !result.Success {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_changelog: %s", result.Message)
	}
	resp, ok := result.Data.(agent.ChangelogResponse)
	if !ok {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_changelog: unexpected result shape")
	}
	version := in.VersionName
	if version == "" {
		version = "Unreleased"
	}
	return nil, ToolOutput{Text: changelog.RenderChangelog(version, resp)}, nil
}

func (s *Server) releaseNotes(ctx context.Context, _ *mcp.CallToolRequest, in ToolInput) (*mcp.CallToolResult, ToolOutput, error) {
	repo, err := s.repoFor(ctx, in)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	if in.From == "" {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_release_notes: from is required")
	}
	commitCtx, err := repo.GetGitInfoForCommitRange(ctx, s.Cfg, in.From, in.To)
	if err != nil {
		return nil, ToolOutput{}, err
	}
	result := s.Agent.Run(ctx, agent.TaskReleaseNotes, commitCtx, agent.Options{Instructions: in.CustomInstructions}, nil)
	if !result.Success {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_release_notes: %s", result.Message)
	}
	resp, ok := result.Data.(agent.ReleaseNotesResponse)
	if !ok {
		return nil, ToolOutput{}, fmt.Errorf("git_iris_release_notes: unexpected result shape")
	}
	version := in.VersionName
	if version == "" {
		version = "Unreleased"
	}
	return nil, ToolOutput{Text: changelog.RenderReleaseNotes(version, resp)}, nil
}

func (s *Server) contextForRange(ctx context.Context, repo *gitcontext.Repo, in ToolInput) (*gitcontext.CommitContext, error) {
	if in.From != "" {
		to := in.To
		if to == "" {
			to = "HEAD"
		}
		return repo.GetGitInfoForCommitRange(ctx, s.Cfg, in.From, to)
	}
	return repo.GetGitInfo(ctx, s.Cfg)
}
