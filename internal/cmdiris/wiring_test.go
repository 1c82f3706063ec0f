package cmdiris

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jo-charles/git-iris/internal/config"
	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/provider"
	"github.com/jo-charles/git-iris/internal/taskcontext"
)

func TestExitCodeForMapsSentinelTypes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), ExitGenericFailure},
		{"user input", &taskcontext.UserInputError{Message: "bad flags"}, ExitInvalidArgs},
		{"git error", &gitcontext.GitError{Cause: errors.New("not a repo")}, ExitGitError},
		{"provider error", &provider.Error{Provider: "anthropic", Status: 500}, ExitProviderError},
		{"wrapped user input", fmt.Errorf("review: %w", &taskcontext.UserInputError{Message: "bad flags"}), ExitInvalidArgs},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := exitCodeFor(c.err); got != c.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", c.err, got, c.want)
			}
		})
	}
}

func TestResolveGitmojiNoGitmojiWins(t *testing.T) {
	flagGitmoji, flagNoGitmoji = true, true
	defer func() { flagGitmoji, flagNoGitmoji = false, false }()

	if resolveGitmoji(config.Config{UseGitmoji: true}) {
		t.Error("expected --no-gitmoji to win when both flags are set")
	}
}

func TestResolveGitmojiFallsBackToConfig(t *testing.T) {
	flagGitmoji, flagNoGitmoji = false, false
	if !resolveGitmoji(config.Config{UseGitmoji: true}) {
		t.Error("expected config default to apply when neither flag is set")
	}
}

func TestResolveProviderPrefersFlagOverConfig(t *testing.T) {
	flagProvider = "openai"
	defer func() { flagProvider = "" }()

	if got := resolveProvider(config.Config{DefaultProvider: "anthropic"}); got != "openai" {
		t.Errorf("resolveProvider = %q, want %q", got, "openai")
	}
}

func TestResolveProviderDefaultsToAnthropic(t *testing.T) {
	flagProvider = ""
	if got := resolveProvider(config.Config{}); got != "anthropic" {
		t.Errorf("resolveProvider = %q, want %q", got, "anthropic")
	}
}

func TestApplyConfigKeyRejectsUnknownKey(t *testing.T) {
	cfg := config.Config{}
	if err := applyConfigKey(&cfg, "nonsense", "value"); err == nil {
		t.Error("expected an error for an unrecognized key")
	}
}

func TestApplyConfigKeySetsProviderField(t *testing.T) {
	cfg := config.Config{}
	if err := applyConfigKey(&cfg, "providers.anthropic.model", "claude-opus-4"); err != nil {
		t.Fatalf("applyConfigKey: %v", err)
	}
	if got := cfg.Providers["anthropic"].Model; got != "claude-opus-4" {
		t.Errorf("Providers[anthropic].Model = %q, want %q", got, "claude-opus-4")
	}
}

func TestApplyConfigKeyRejectsBadBool(t *testing.T) {
	cfg := config.Config{}
	if err := applyConfigKey(&cfg, "use_gitmoji", "not-a-bool"); err == nil {
		t.Error("expected an error for a non-boolean use_gitmoji value")
	}
}
