// Package gitcontext turns an on-disk repository (or a freshly cloned
// remote one) into the typed inputs the agent core consumes.
package gitcontext

// ChangeType classifies how a path changed.
type ChangeType int

const (
	Added ChangeType = iota
	Modified
	Deleted
	Renamed
)

func (c ChangeType) String() string {
	switch c {
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	case Renamed:
		return "Renamed"
	default:
		return "Unknown"
	}
}

// StagedFile is a single changed path with its diff and analysis.
//
// Invariant: if ContentExcluded then Diff == ExcludedDiff and
// Analysis == []string{ExcludedAnalysis}; binary files carry
// Diff == BinaryDiff and no Content.
type StagedFile struct {
	Path            string
	ChangeType      ChangeType
	Diff            string
	Analysis        []string
	Content         *string
	ContentExcluded bool
}

const (
	ExcludedDiff     = "[Content excluded]"
	ExcludedAnalysis = "[Analysis excluded]"
	BinaryDiff       = "[Binary file changed]"
)

// CommitSummary is one commit's identifying metadata.
type CommitSummary struct {
	Hash      string
	Author    string
	Email     string
	Timestamp int64
	Message   string
}

// ProjectMetadata summarizes the repository as a project.
type ProjectMetadata struct {
	Language      *string
	Framework     *string
	Dependencies  []string
	ReadmeSummary *string
}

// CommitContext is the typed input an agent task consumes.
type CommitContext struct {
	Branch          string
	RecentCommits   []CommitSummary
	StagedFiles     []StagedFile
	ProjectMetadata ProjectMetadata
	UserName        string
	UserEmail       string
	DiffStat        *string
	Summary         *string
}

// CommitResult is the outcome of a verified commit.
type CommitResult struct {
	Hash           string
	PostCommitWarn string
}
