// Package agent is the tool-calling loop that drives an LLM to produce a
// structured artifact: prompt assembly, tool dispatch, streaming
// aggregation, and JSON-recovery via the validator.
package agent

import (
	"sync"

	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/provider"
)

// TaskType is the closed set of artifacts the agent core can produce.
type TaskType string

const (
	TaskCommitMessage  TaskType = "commit_message"
	TaskPullRequest    TaskType = "pull_request"
	TaskReview         TaskType = "review"
	TaskChangelog      TaskType = "changelog"
	TaskReleaseNotes   TaskType = "release_notes"
)

// GeneratedMessage is a generated commit message.
type GeneratedMessage struct {
	Emoji   *string `json:"emoji,omitempty"`
	Title   string  `json:"title"`
	Message string  `json:"message"`
}

// Format renders a GeneratedMessage as "emoji title\n\nbody", or just
// title when emoji is absent and body is empty.
func (m GeneratedMessage) Format() string {
	title := m.Title
	if m.Emoji != nil && *m.Emoji != "" {
		title = *m.Emoji + " " + m.Title
	}
	if m.Message == "" {
		return title
	}
	return title + "\n\n" + m.Message
}

// GeneratedPullRequest is a generated PR description.
type GeneratedPullRequest struct {
	Emoji           *string  `json:"emoji,omitempty"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	Commits         []string `json:"commits"`
	BreakingChanges []string `json:"breaking_changes"`
	TestingNotes    *string  `json:"testing_notes,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// Format renders the PR as Markdown with the headings exercised by the PR
// end-to-end scenario.
func (pr GeneratedPullRequest) Format() string {
	title := pr.Title
	if pr.Emoji != nil && *pr.Emoji != "" {
		title = *pr.Emoji + " " + pr.Title
	}
	out := "# " + title + "\n\n## Summary\n\n" + pr.Summary + "\n\n## Commits\n\n"
	for _, c := range pr.Commits {
		out += "- " + c + "\n"
	}
	if len(pr.BreakingChanges) > 0 {
		out += "\n## Breaking Changes\n\n"
		for _, b := range pr.BreakingChanges {
			out += "- " + b + "\n"
		}
	}
	return out
}

// Severity is the closed set of code-issue severities.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// CodeIssue is one concrete finding within a review dimension.
type CodeIssue struct {
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	Location       string   `json:"location"`
	Explanation    string   `json:"explanation"`
	Recommendation string   `json:"recommendation"`
}

// DimensionAnalysis is the per-dimension slot in a GeneratedReview.
type DimensionAnalysis struct {
	IssuesFound bool        `json:"issues_found"`
	Issues      []CodeIssue `json:"issues"`
}

// GeneratedReview is a generated code review, with a fixed set of
// dimension slots.
type GeneratedReview struct {
	Summary          string  `json:"summary"`
	CodeQuality      string  `json:"code_quality"`
	Suggestions      []string `json:"suggestions"`
	Issues           []string `json:"issues"`
	PositiveAspects  []string `json:"positive_aspects"`

	Complexity     *DimensionAnalysis `json:"complexity,omitempty"`
	Abstraction    *DimensionAnalysis `json:"abstraction,omitempty"`
	Deletion       *DimensionAnalysis `json:"deletion,omitempty"`
	Hallucination  *DimensionAnalysis `json:"hallucination,omitempty"`
	Style          *DimensionAnalysis `json:"style,omitempty"`
	Security       *DimensionAnalysis `json:"security,omitempty"`
	Performance    *DimensionAnalysis `json:"performance,omitempty"`
	Duplication    *DimensionAnalysis `json:"duplication,omitempty"`
	ErrorHandling  *DimensionAnalysis `json:"error_handling,omitempty"`
	Testing        *DimensionAnalysis `json:"testing,omitempty"`
	BestPractices  *DimensionAnalysis `json:"best_practices,omitempty"`
}

// ChangeKind is the closed enum keying changelog/release-notes sections.
type ChangeKind string

const (
	ChangeAdded      ChangeKind = "Added"
	ChangeChanged    ChangeKind = "Changed"
	ChangeDeprecated ChangeKind = "Deprecated"
	ChangeRemoved    ChangeKind = "Removed"
	ChangeFixed      ChangeKind = "Fixed"
	ChangeSecurity   ChangeKind = "Security"
	ChangePerformance ChangeKind = "Performance"
)

// ChangeMetrics summarizes the size of a change range.
type ChangeMetrics struct {
	TotalCommits      int `json:"total_commits"`
	FilesChanged      int `json:"files_changed"`
	Insertions        int `json:"insertions"`
	Deletions         int `json:"deletions"`
	TotalLinesChanged int `json:"total_lines_changed"`
}

// ChangelogResponse is a generated changelog entry.
type ChangelogResponse struct {
	Sections        map[ChangeKind][]string `json:"sections"`
	BreakingChanges []string                `json:"breaking_changes"`
	Metrics         ChangeMetrics           `json:"metrics"`
}

// ReleaseNotesResponse is a generated release-notes entry.
type ReleaseNotesResponse struct {
	Sections        map[ChangeKind][]string `json:"sections"`
	BreakingChanges []string                `json:"breaking_changes"`
	Metrics         ChangeMetrics           `json:"metrics"`
	Highlights      []string                `json:"highlights"`
}

// AgentContext is the handle-sharing context passed through one agent
// invocation: a provider config, a Git repo handle, and mutable session
// data reached only through SetSession/GetSession.
type AgentContext struct {
	Config  provider.Config
	GitRepo *gitcontext.Repo

	mu      sync.Mutex
	session map[string]any
}

// NewAgentContext builds a fresh AgentContext; session data starts empty.
func NewAgentContext(cfg provider.Config, repo *gitcontext.Repo) *AgentContext {
	return &AgentContext{Config: cfg, GitRepo: repo, session: map[string]any{}}
}

// SetSession stores a session-data value under key.
func (c *AgentContext) SetSession(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session[key] = value
}

// GetSession retrieves a session-data value, if present.
func (c *AgentContext) GetSession(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.session[key]
	return v, ok
}

// TaskResult is the outcome of one agent invocation.
type TaskResult struct {
	Success    bool
	Message    string
	Data       any
	Confidence float64
	Metadata   map[string]string
}

func failure(message string) *TaskResult {
	return &TaskResult{Success: false, Message: message}
}

func (t TaskType) String() string { return string(t) }
