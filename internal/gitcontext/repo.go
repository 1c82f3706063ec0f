package gitcontext

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a handle onto a local working copy or a read-only clone of a
// remote repository. All Git operations shell out to the git(1) binary,
// matching the rest of this codebase's exec-the-real-tool idiom rather
// than binding libgit2 or go-git.
type Repo struct {
	Dir      string
	ReadOnly bool
}

// Open returns a handle onto an existing local working copy.
func Open(dir string) *Repo {
	return &Repo{Dir: dir}
}

// CloneRemote performs a shallow, read-only clone of url into a fresh
// temporary directory.
func CloneRemote(ctx context.Context, url string) (*Repo, error) {
	dir, err := os.MkdirTemp("", "git-iris-clone-*")
	if err != nil {
		return nil, gitErrf("creating clone dir: %w", err)
	}
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "50", url, dir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		return nil, gitErrf("cloning %s: %s: %w", url, strings.TrimSpace(stderr.String()), err)
	}
	return &Repo{Dir: dir, ReadOnly: true}, nil
}

// run executes "git <args...>" rooted at the repo directory and returns
// trimmed stdout.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-C", r.Dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", gitErrf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *Repo) currentBranch(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

func (r *Repo) userName(ctx context.Context) string {
	v, _ := r.run(ctx, "config", "user.name")
	return v
}

func (r *Repo) userEmail(ctx context.Context) string {
	v, _ := r.run(ctx, "config", "user.email")
	return v
}

// hookPath returns the path to a hook script if it exists and is
// executable.
func (r *Repo) hookPath(name string) (string, bool) {
	p := filepath.Join(r.Dir, ".git", "hooks", name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	if info.Mode()&0o111 == 0 {
		return "", false
	}
	return p, true
}

// ExecuteHook runs a hook script by name; a nonzero exit is an error.
func (r *Repo) ExecuteHook(ctx context.Context, name string) error {
	path, ok := r.hookPath(name)
	if !ok {
		return nil
	}
	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return gitErrf("hook %s: %s: %w", name, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

// CommitAndVerify runs the pre-commit hook (failure aborts with the hook's
// stderr), creates the commit, then runs the post-commit hook (failure is
// reported as a warning but does not undo the commit).
func (r *Repo) CommitAndVerify(ctx context.Context, message string) (*CommitResult, error) {
	if r.ReadOnly {
		return nil, ErrCannotCommitRemote
	}
	if err := r.ExecuteHook(ctx, "pre-commit"); err != nil {
		return nil, err
	}
	if _, err := r.run(ctx, "commit", "-m", message); err != nil {
		return nil, err
	}
	hash, err := r.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}
	result := &CommitResult{Hash: hash}
	if err := r.ExecuteHook(ctx, "post-commit"); err != nil {
		result.PostCommitWarn = err.Error()
	}
	return result, nil
}

// Stage stages a path.
func (r *Repo) Stage(ctx context.Context, path string) error {
	_, err := r.run(ctx, "add", "--", path)
	return err
}

// Unstage unstages a path.
func (r *Repo) Unstage(ctx context.Context, path string) error {
	_, err := r.run(ctx, "restore", "--staged", "--", path)
	return err
}

// StageAll stages the whole working tree.
func (r *Repo) StageAll(ctx context.Context) error {
	_, err := r.run(ctx, "add", "-A")
	return err
}

// UnstageAll unstages everything.
func (r *Repo) UnstageAll(ctx context.Context) error {
	_, err := r.run(ctx, "restore", "--staged", ".")
	return err
}
