package gitcontext

import (
	"context"
	"strings"
)

// workingTreeStagedFiles returns StagedFiles for the index (staged changes),
// optionally widened to include unstaged changes too.
func (r *Repo) workingTreeStagedFiles(ctx context.Context, cfg Config, includeUnstaged bool) ([]StagedFile, error) {
	nameStatusArgs := []string{"diff", "--name-status", "--cached"}
	out, err := r.run(ctx, nameStatusArgs...)
	if err != nil {
		return nil, err
	}
	entries := parseNameStatus(out)

	if includeUnstaged {
		unstagedOut, err := r.run(ctx, "diff", "--name-status")
		if err != nil {
			return nil, err
		}
		for path, ct := range parseNameStatus(unstagedOut) {
			if _, ok := entries[path]; !ok {
				entries[path] = ct
			}
		}
	}

	policy := NewExclusionPolicy(r.Dir, cfg.Exclusions)
	files := make([]StagedFile, 0, len(entries))
	for path, ct := range entries {
		sf, err := r.buildStagedFile(ctx, path, ct, policy, "--cached")
		if err != nil {
			return nil, err
		}
		files = append(files, sf)
	}
	return files, nil
}

// refDiffStagedFiles returns StagedFiles for the tree diff from..to.
func (r *Repo) refDiffStagedFiles(ctx context.Context, cfg Config, from, to string) ([]StagedFile, error) {
	out, err := r.run(ctx, "diff", "--name-status", from, to)
	if err != nil {
		return nil, err
	}
	entries := parseNameStatus(out)
	policy := NewExclusionPolicy(r.Dir, cfg.Exclusions)
	files := make([]StagedFile, 0, len(entries))
	for path, ct := range entries {
		sf, err := r.buildStagedFile(ctx, path, ct, policy, from, to)
		if err != nil {
			return nil, err
		}
		files = append(files, sf)
	}
	return files, nil
}

// parseNameStatus parses "git diff --name-status" output into path->ChangeType.
func parseNameStatus(out string) map[string]ChangeType {
	entries := map[string]ChangeType{}
	if out == "" {
		return entries
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		code := fields[0]
		path := fields[len(fields)-1]
		entries[path] = nameStatusType(code)
	}
	return entries
}

func (r *Repo) buildStagedFile(ctx context.Context, path string, ct ChangeType, policy *ExclusionPolicy, diffArgs ...string) (StagedFile, error) {
	sf := StagedFile{Path: path, ChangeType: ct}

	if policy.Excluded(path) {
		sf.ContentExcluded = true
		sf.Diff = ExcludedDiff
		sf.Analysis = []string{ExcludedAnalysis}
		return sf, nil
	}

	args := append(append([]string{"diff"}, diffArgs...), "--", path)
	diff, err := r.run(ctx, args...)
	if err != nil {
		return sf, err
	}

	if looksBinaryDiff(diff) {
		sf.Diff = BinaryDiff
		sf.Analysis = nil
		return sf, nil
	}

	sf.Diff = diff
	sf.Analysis = analyzeLines(path, diff, false)
	if ct != Deleted {
		content, err := r.fileContentAt(ctx, path, diffArgs)
		if err == nil {
			sf.Content = &content
		}
	}
	return sf, nil
}

func looksBinaryDiff(diff string) bool {
	return strings.Contains(diff, "Binary files") || IsBinary([]byte(diff))
}

// fileContentAt returns the file content at the "to" side of the diff: HEAD
// or a ref when comparing two refs, the index content when comparing HEAD
// to the index (diffArgs == ["--cached"]).
func (r *Repo) fileContentAt(ctx context.Context, path string, diffArgs []string) (string, error) {
	if len(diffArgs) == 1 && diffArgs[0] == "--cached" {
		return r.run(ctx, "show", ":"+path)
	}
	ref := diffArgs[len(diffArgs)-1]
	return r.run(ctx, "show", ref+":"+path)
}
