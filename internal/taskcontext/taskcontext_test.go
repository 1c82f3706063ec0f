package taskcontext

import "testing"

func strp(s string) *string { return &s }

func TestForGenAlwaysStaged(t *testing.T) {
	tc := ForGen()
	if tc.Kind() != Staged || tc.IncludesUnstaged() {
		t.Errorf("ForGen() = %+v, want Staged{false}", tc)
	}
}

func TestForReviewMutuallyExclusiveErrors(t *testing.T) {
	_, err := ForReview(strp("abc123"), strp("main"), strp("dev"), false)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); !contains(got, "mutually exclusive") {
		t.Errorf("error = %q, want it to contain %q", got, "mutually exclusive")
	}
}

func TestForReviewFromWithoutToErrors(t *testing.T) {
	_, err := ForReview(nil, strp("main"), nil, false)
	if err == nil || !contains(err.Error(), "--from") {
		t.Fatalf("err = %v, want mention of --from", err)
	}
}

func TestForReviewIncludeUnstagedWithRangeErrors(t *testing.T) {
	_, err := ForReview(nil, strp("main"), strp("dev"), true)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestForReviewDispatchesByFlagSet(t *testing.T) {
	tc, err := ForReview(strp("abc123"), nil, nil, false)
	if err != nil || tc.Kind() != Commit || tc.CommitID() != "abc123" {
		t.Fatalf("got %+v, %v", tc, err)
	}

	tc, err = ForReview(nil, strp("main"), strp("dev"), false)
	if err != nil || tc.Kind() != Range || tc.From() != "main" || tc.To() != "dev" {
		t.Fatalf("got %+v, %v", tc, err)
	}

	tc, err = ForReview(nil, nil, nil, true)
	if err != nil || tc.Kind() != Staged || !tc.IncludesUnstaged() {
		t.Fatalf("got %+v, %v", tc, err)
	}
}

func TestForPRDefaults(t *testing.T) {
	tc := ForPR(nil, nil)
	if tc.From() != "main" || tc.To() != "HEAD" {
		t.Errorf("ForPR defaults = %q..%q, want main..HEAD", tc.From(), tc.To())
	}
	tc = ForPR(strp("release"), nil)
	if tc.From() != "release" || tc.To() != "HEAD" {
		t.Errorf("ForPR partial = %q..%q", tc.From(), tc.To())
	}
}

func TestForChangelogRequiresFrom(t *testing.T) {
	if _, err := ForChangelog("", nil); err == nil {
		t.Fatal("expected error when from is empty")
	}
	tc, err := ForChangelog("v1.0.0", nil)
	if err != nil || tc.To() != "HEAD" {
		t.Fatalf("got %+v, %v", tc, err)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
