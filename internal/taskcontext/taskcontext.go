// Package taskcontext is the small typed model that validates CLI flag
// combinations, chooses which Git operation to invoke, and tells the
// agent core what it is looking at.
package taskcontext

import "fmt"

// Kind tags the variant held by a TaskContext.
type Kind int

const (
	Staged Kind = iota
	Commit
	Range
	Amend
	Discover
)

// TaskContext is a tagged variant over the five modes.
type TaskContext struct {
	kind Kind

	includeUnstaged bool
	commitID        string
	from, to        string
	originalMessage string
}

// UserInputError is a bad flag combination, surfaced verbatim to the CLI.
type UserInputError struct {
	Message string
}

func (e *UserInputError) Error() string { return e.Message }

func userErr(format string, args ...any) error {
	return &UserInputError{Message: fmt.Sprintf(format, args...)}
}

// ForGen always succeeds: the plain "generate a commit message" mode.
func ForGen() *TaskContext {
	return &TaskContext{kind: Staged, includeUnstaged: false}
}

// ForAmend builds the mode for rewriting an existing commit message.
func ForAmend(original string) *TaskContext {
	return &TaskContext{kind: Amend, originalMessage: original}
}

// ForReview validates the mutually-exclusive --commit/--from/--to/
// --include-unstaged flag combinations used by the review command.
func ForReview(commit, from, to *string, includeUnstaged bool) (*TaskContext, error) {
	hasFrom := from != nil && *from != ""
	hasTo := to != nil && *to != ""
	hasCommit := commit != nil && *commit != ""

	if hasFrom && !hasTo {
		return nil, userErr("When using --from, you must also specify --to")
	}
	if hasCommit && (hasFrom || hasTo) {
		return nil, userErr("Cannot use --commit with --from/--to. These are mutually exclusive")
	}
	if includeUnstaged && (hasFrom || hasTo) {
		return nil, userErr("Cannot use --include-unstaged with --from/--to…")
	}

	switch {
	case hasCommit:
		return &TaskContext{kind: Commit, commitID: *commit}, nil
	case hasFrom && hasTo:
		return &TaskContext{kind: Range, from: *from, to: *to}, nil
	default:
		return &TaskContext{kind: Staged, includeUnstaged: includeUnstaged}, nil
	}
}

// ForPR always succeeds; missing from/to default to "main"/"HEAD"
// independently.
func ForPR(from, to *string) *TaskContext {
	f, t := "main", "HEAD"
	if from != nil && *from != "" {
		f = *from
	}
	if to != nil && *to != "" {
		t = *to
	}
	return &TaskContext{kind: Range, from: f, to: t}
}

// ForChangelog requires from; to defaults to "HEAD".
func ForChangelog(from string, to *string) (*TaskContext, error) {
	if from == "" {
		return nil, userErr("changelog requires --from")
	}
	t := "HEAD"
	if to != nil && *to != "" {
		t = *to
	}
	return &TaskContext{kind: Range, from: from, to: t}, nil
}

// ForDiscover builds the mode that lets the agent decide what to look at.
func ForDiscover() *TaskContext { return &TaskContext{kind: Discover} }

func (tc *TaskContext) Kind() Kind              { return tc.kind }
func (tc *TaskContext) IsRange() bool           { return tc.kind == Range }
func (tc *TaskContext) IsAmend() bool           { return tc.kind == Amend }
func (tc *TaskContext) IncludesUnstaged() bool  { return tc.kind == Staged && tc.includeUnstaged }
func (tc *TaskContext) OriginalMessage() string { return tc.originalMessage }
func (tc *TaskContext) CommitID() string        { return tc.commitID }
func (tc *TaskContext) From() string             { return tc.from }
func (tc *TaskContext) To() string               { return tc.to }

// DiffHint returns a short string telling the agent which Git operation to
// invoke.
func (tc *TaskContext) DiffHint() string {
	switch tc.kind {
	case Staged:
		if tc.includeUnstaged {
			return "git_diff(staged=true, unstaged=true)"
		}
		return "git_diff(staged=true)"
	case Commit:
		return fmt.Sprintf("git_diff(from=%q, to=%q)", tc.commitID+"^1", tc.commitID)
	case Range:
		return fmt.Sprintf("git_diff(from=%q, to=%q)", tc.from, tc.to)
	case Amend:
		return "git_diff(staged=true) # amending: " + tc.originalMessage
	case Discover:
		return "git_diff(discover=true)"
	default:
		return ""
	}
}
