package gitcontext

import "fmt"

// GitError wraps a failure from the extractor, a commit, or a hook.
type GitError struct {
	Cause error
}

func (e *GitError) Error() string { return fmt.Sprintf("git: %v", e.Cause) }
func (e *GitError) Unwrap() error { return e.Cause }

func gitErrf(format string, args ...any) error {
	return &GitError{Cause: fmt.Errorf(format, args...)}
}

// ErrCannotCommitRemote is a specific GitError for the remote read-only
// rule: commit-writing operations are refused against a cloned remote.
var ErrCannotCommitRemote = &GitError{Cause: fmt.Errorf("cannot commit: repository handle is a read-only remote clone")}
