package gitcontext

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jo-charles/git-iris/internal/analyzer"
)

// Config carries the options the extractor needs beyond the Repo handle
// itself: how many recent commits to include and the exclusion policy.
type Config struct {
	RecentCommitCount int
	Exclusions        []string
	AnalyzeMax        int
}

func (c Config) recentCount() int {
	if c.RecentCommitCount > 0 {
		return c.RecentCommitCount
	}
	return 10
}

// GetGitInfo returns the context for the current working tree: current
// branch, staged files with per-file diffs, project metadata, and the most
// recent commits (default 10).
func (r *Repo) GetGitInfo(ctx context.Context, cfg Config) (*CommitContext, error) {
	return r.GetGitInfoWorkingTree(ctx, cfg, false)
}

// GetGitInfoWorkingTree is GetGitInfo with control over whether unstaged
// changes are folded into the diff alongside the index.
func (r *Repo) GetGitInfoWorkingTree(ctx context.Context, cfg Config, includeUnstaged bool) (*CommitContext, error) {
	branch, err := r.currentBranch(ctx)
	unborn := err != nil
	if unborn {
		// No commits yet: rev-parse cannot name HEAD but symbolic-ref can,
		// and there are no recent commits to list.
		if branch, err = r.run(ctx, "symbolic-ref", "--short", "HEAD"); err != nil {
			return nil, err
		}
	}
	staged, err := r.workingTreeStagedFiles(ctx, cfg, includeUnstaged)
	if err != nil {
		return nil, err
	}
	commits, err := r.recentCommits(ctx, cfg.recentCount())
	if err != nil && !unborn {
		return nil, err
	}
	meta, err := r.projectMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return &CommitContext{
		Branch:          branch,
		RecentCommits:   commits,
		StagedFiles:     staged,
		ProjectMetadata: meta,
		UserName:        r.userName(ctx),
		UserEmail:       r.userEmail(ctx),
	}, nil
}

// GetGitInfoForBranchDiff returns the context comparing base..head: branch
// is formatted "<base> -> <head>", staged_files holds the tree diff, and
// commits holds only those reachable from head but not base.
func (r *Repo) GetGitInfoForBranchDiff(ctx context.Context, cfg Config, base, head string) (*CommitContext, error) {
	staged, err := r.refDiffStagedFiles(ctx, cfg, base, head)
	if err != nil {
		return nil, err
	}
	commits, err := r.commitsBetween(ctx, base, head)
	if err != nil {
		return nil, err
	}
	meta, err := r.projectMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return &CommitContext{
		Branch:          fmt.Sprintf("%s -> %s", base, head),
		RecentCommits:   commits,
		StagedFiles:     staged,
		ProjectMetadata: meta,
		UserName:        r.userName(ctx),
		UserEmail:       r.userEmail(ctx),
	}, nil
}

// GetGitInfoForCommit returns the context for a single commit's diff
// (commitish^1..commitish).
func (r *Repo) GetGitInfoForCommit(ctx context.Context, cfg Config, commitish string) (*CommitContext, error) {
	from := commitish + "^1"
	staged, err := r.refDiffStagedFiles(ctx, cfg, from, commitish)
	if err != nil {
		return nil, err
	}
	meta, err := r.projectMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return &CommitContext{
		Branch:          commitish,
		StagedFiles:     staged,
		ProjectMetadata: meta,
		UserName:        r.userName(ctx),
		UserEmail:       r.userEmail(ctx),
	}, nil
}

// GetGitInfoForCommitRange returns the context for from..to with branch
// field "<from>..<to>".
func (r *Repo) GetGitInfoForCommitRange(ctx context.Context, cfg Config, from, to string) (*CommitContext, error) {
	staged, err := r.refDiffStagedFiles(ctx, cfg, from, to)
	if err != nil {
		return nil, err
	}
	commits, err := r.commitsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	meta, err := r.projectMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return &CommitContext{
		Branch:          fmt.Sprintf("%s..%s", from, to),
		RecentCommits:   commits,
		StagedFiles:     staged,
		ProjectMetadata: meta,
		UserName:        r.userName(ctx),
		UserEmail:       r.userEmail(ctx),
	}, nil
}

// GetCommitsForPR returns human-readable commit messages, most-recent-first.
func (r *Repo) GetCommitsForPR(ctx context.Context, from, to string) ([]string, error) {
	out, err := r.run(ctx, "log", "--pretty=format:%s", fmt.Sprintf("%s..%s", from, to))
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// GetCommitRangeFiles returns the StagedFiles changed between from and to.
func (r *Repo) GetCommitRangeFiles(ctx context.Context, cfg Config, from, to string) ([]StagedFile, error) {
	return r.refDiffStagedFiles(ctx, cfg, from, to)
}

func (r *Repo) recentCommits(ctx context.Context, n int) ([]CommitSummary, error) {
	out, err := r.run(ctx, "log", fmt.Sprintf("-%d", n), "--pretty=format:%H\x1f%an\x1f%ae\x1f%at\x1f%s")
	if err != nil {
		return nil, err
	}
	return parseCommitSummaries(out), nil
}

func (r *Repo) commitsBetween(ctx context.Context, base, head string) ([]CommitSummary, error) {
	out, err := r.run(ctx, "log", "--pretty=format:%H\x1f%an\x1f%ae\x1f%at\x1f%s", fmt.Sprintf("%s..%s", base, head))
	if err != nil {
		return nil, err
	}
	return parseCommitSummaries(out), nil
}

func parseCommitSummaries(out string) []CommitSummary {
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	summaries := make([]CommitSummary, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, "\x1f")
		if len(fields) != 5 {
			continue
		}
		ts, _ := strconv.ParseInt(fields[3], 10, 64)
		summaries = append(summaries, CommitSummary{
			Hash:      fields[0],
			Author:    fields[1],
			Email:     fields[2],
			Timestamp: ts,
			Message:   fields[4],
		})
	}
	return summaries
}

func (r *Repo) projectMetadata(ctx context.Context) (ProjectMetadata, error) {
	meta := ProjectMetadata{}
	if _, err := r.statFile("go.mod"); err == nil {
		lang := "Go"
		meta.Language = &lang
	} else if _, err := r.statFile("package.json"); err == nil {
		lang := "JavaScript/TypeScript"
		meta.Language = &lang
	} else if _, err := r.statFile("Cargo.toml"); err == nil {
		lang := "Rust"
		meta.Language = &lang
	}
	return meta, nil
}

func (r *Repo) statFile(rel string) (string, error) {
	return r.run(context.Background(), "cat-file", "-e", "HEAD:"+rel)
}

func nameStatusType(code string) ChangeType {
	switch {
	case strings.HasPrefix(code, "A"):
		return Added
	case strings.HasPrefix(code, "D"):
		return Deleted
	case strings.HasPrefix(code, "R"):
		return Renamed
	default:
		return Modified
	}
}

func analyzeLines(path, diff string, excluded bool) []string {
	if excluded {
		return []string{ExcludedAnalysis}
	}
	a := analyzer.For(path)
	return a.Analyze(diff)
}
