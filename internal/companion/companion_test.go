package companion

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeBranchName(t *testing.T) {
	got := SanitizeBranchName(`feature/foo:bar*baz?"<>|`)
	want := "feature_foo_bar_baz_____"
	if got != want {
		t.Errorf("SanitizeBranchName = %q, want %q", got, want)
	}
}

func TestHashRepoPathIsStableAndDistinguishing(t *testing.T) {
	a := HashRepoPath("/home/user/repo-a")
	b := HashRepoPath("/home/user/repo-b")
	if a == b {
		t.Fatal("expected distinct hashes for distinct paths")
	}
	if a != HashRepoPath("/home/user/repo-a") {
		t.Fatal("expected stable hash for the same path")
	}
	if len(a) != 16 {
		t.Errorf("len(hash) = %d, want 16", len(a))
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	home := t.TempDir()
	s := NewStore(home, "/some/repo")

	if got, err := s.LoadSession(); err != nil || got != nil {
		t.Fatalf("LoadSession on missing file = (%v, %v), want (nil, nil)", got, err)
	}

	sess := &SessionState{
		SessionID:    "abc",
		RepoPath:     "/some/repo",
		Branch:       "main",
		StartedAt:    time.Now(),
		LastActivity: time.Now(),
		FilesTouched: map[string]FileActivity{"a.go": {Edits: 2}},
	}
	if err := s.SaveSession(sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got.SessionID != "abc" || got.FilesTouched["a.go"].Edits != 2 {
		t.Errorf("loaded session = %+v", got)
	}

	if _, err := os.Stat(filepath.Join(home, ".iris", "repos", HashRepoPath("/some/repo"), "session.json")); err != nil {
		t.Errorf("expected session.json on disk: %v", err)
	}
}

func TestStoreBranchRoundTripSanitizesName(t *testing.T) {
	home := t.TempDir()
	s := NewStore(home, "/some/repo")

	mem := &BranchMemory{BranchName: "feature/x", Notes: []string{"note one"}}
	if err := s.SaveBranch(mem); err != nil {
		t.Fatalf("SaveBranch: %v", err)
	}

	got, err := s.LoadBranch("feature/x")
	if err != nil {
		t.Fatalf("LoadBranch: %v", err)
	}
	if got.BranchName != "feature/x" || len(got.Notes) != 1 {
		t.Errorf("loaded branch = %+v", got)
	}

	path := filepath.Join(home, ".iris", "repos", HashRepoPath("/some/repo"), "branches", "feature_x.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected sanitized branch file on disk: %v", err)
	}
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "f.txt")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case ev := <-w.Events():
		if ev.Kind != FileCreated && ev.Kind != FileModified {
			t.Errorf("event kind = %v, want Created or Modified", ev.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced event")
	}
}
