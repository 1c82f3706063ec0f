package cmdiris

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jo-charles/git-iris/internal/agent"
	"github.com/jo-charles/git-iris/internal/config"
	"github.com/jo-charles/git-iris/internal/executor"
	"github.com/jo-charles/git-iris/internal/gitcontext"
	"github.com/jo-charles/git-iris/internal/provider"
	"github.com/jo-charles/git-iris/internal/tools"
)

// loadMergedConfig reads the personal config and, if present in the
// working directory, a project-local override, merged personal-over-project.
func loadMergedConfig() (config.Config, error) {
	personal, err := config.Load(config.PersonalPath())
	if err != nil {
		return config.Config{}, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	project, err := config.Load(config.ProjectPath(wd))
	if err != nil {
		return config.Config{}, err
	}
	return config.Merge(personal, project), nil
}

// resolveProvider picks the provider name from the --provider flag, falling
// back to the merged config's default_provider.
func resolveProvider(cfg config.Config) string {
	if flagProvider != "" {
		return flagProvider
	}
	if cfg.DefaultProvider != "" {
		return cfg.DefaultProvider
	}
	return "anthropic"
}

// buildAgent wires a provider, tool registry, and task schema into an
// *agent.Agent, the way the task executor and MCP server both do. The
// parallel-analyze tool's sub-agent runner is wired back onto the agent
// itself once constructed, since NewParallelRunner needs the very *Agent
// it will be a tool of.
func buildAgent(cfg config.Config, repo *gitcontext.Repo, gitCfg gitcontext.Config, task agent.TaskType, commitCtx *gitcontext.CommitContext, opts agent.Options) (*agent.Agent, error) {
	providerName := resolveProvider(cfg)
	kind, err := provider.ParseKind(providerName)
	if err != nil {
		return nil, err
	}
	p, err := provider.New(kind, cfg.ProviderParams(providerName))
	if err != nil {
		return nil, err
	}

	parallelTool := &tools.ParallelAnalyzeTool{}
	registry := tools.NewRegistry()
	registry.Register(&tools.GitTool{Repo: repo, Cfg: gitCfg})
	registry.Register(tools.AnalyzerTool{})
	registry.Register(&tools.CodeSearchTool{RepoDir: repo.Dir})
	registry.Register(&tools.WorkspaceTool{})
	registry.Register(parallelTool)

	ag := &agent.Agent{Provider: p, Tools: registry, Schema: schemaFor(task)}
	parallelTool.Run = ag.NewParallelRunner(task, commitCtx, opts)
	return ag, nil
}

// studioAgents dispatches each task type to its own *agent.Agent, since an
// Agent's Schema is fixed at construction but Studio cycles through every
// task type in one session.
type studioAgents struct {
	byTask map[agent.TaskType]*agent.Agent
}

func (s *studioAgents) Run(ctx context.Context, task agent.TaskType, commitCtx *gitcontext.CommitContext, opts agent.Options, stream chan<- agent.StreamEvent) *agent.TaskResult {
	ag, ok := s.byTask[task]
	if !ok {
		return &agent.TaskResult{Success: false, Message: fmt.Sprintf("studio: no agent wired for task %q", task)}
	}
	return ag.Run(ctx, task, commitCtx, opts, stream)
}

// buildStudioAgents wires one Agent per task type sharing nothing but the
// resolved provider and repo; Studio's SpawnAgent effect carries the task's
// own CommitContext and never needs NewParallelRunner's seeded context, so
// commitCtx is nil at construction here.
func buildStudioAgents(cfg config.Config, repo *gitcontext.Repo, gitCfg gitcontext.Config, opts agent.Options) (*studioAgents, error) {
	tasks := []agent.TaskType{agent.TaskCommitMessage, agent.TaskPullRequest, agent.TaskReview, agent.TaskChangelog, agent.TaskReleaseNotes}
	byTask := make(map[agent.TaskType]*agent.Agent, len(tasks))
	for _, task := range tasks {
		ag, err := buildAgent(cfg, repo, gitCfg, task, nil, opts)
		if err != nil {
			return nil, err
		}
		byTask[task] = ag
	}
	return &studioAgents{byTask: byTask}, nil
}

// runTaskOptions builds agent.Options from the common flags. extra, when
// non-empty, is prepended to the instructions (used by amend to carry the
// original message being rewritten).
func runTaskOptions(cfg config.Config, extra string) agent.Options {
	instructions := flagInstructions
	if instructions == "" {
		instructions = cfg.Instructions
	}
	if extra != "" {
		if instructions != "" {
			instructions = extra + "\n\n" + instructions
		} else {
			instructions = extra
		}
	}
	preset := flagPreset
	if preset == "" {
		preset = cfg.InstructionPreset
	}
	return agent.Options{Preset: preset, Instructions: instructions, Gitmoji: resolveGitmoji(cfg), DetailLevel: flagDetailLevel}
}

// resolveGitmoji applies --gitmoji/--no-gitmoji over the config default;
// --no-gitmoji always wins when both are set (a user override beats a stale
// config on disk).
func resolveGitmoji(cfg config.Config) bool {
	if flagNoGitmoji {
		return false
	}
	if flagGitmoji {
		return true
	}
	return cfg.UseGitmoji
}

// gitConfigFromPerformance converts the performance knobs that matter to
// the extractor; most of Config.Performance governs the executor instead.
func gitConfigFromPerformance(cfg config.Config) gitcontext.Config {
	analyzeMax := cfg.Performance.MaxConcurrentTasks
	if analyzeMax <= 0 {
		analyzeMax = 10
	}
	return gitcontext.Config{AnalyzeMax: analyzeMax}
}

// sharedExecutor is the process-wide task executor used by one-shot CLI
// commands; its queue/timeout/retry plumbing is exercised via RunSync even
// though a single CLI invocation only ever submits one task at a time.
var sharedExecutor = executor.New(4)

func timeoutFor(cfg config.Config) time.Duration {
	secs := cfg.Performance.DefaultTimeoutSecs
	if secs <= 0 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}

// prepareRun loads the merged config and resolves the repo handle once, so
// a command that also needs the repo to build its CommitContext doesn't
// pay for a second clone of --repository.
func prepareRun(ctx context.Context, repoURL string) (config.Config, *gitcontext.Repo, gitcontext.Config, error) {
	cfg, err := loadMergedConfig()
	if err != nil {
		return config.Config{}, nil, gitcontext.Config{}, err
	}
	repo, gitCfg, err := resolveRepo(ctx, repoURL, cfg)
	return cfg, repo, gitCfg, err
}

// runGeneration runs task through the shared executor against an
// already-resolved repo and config, and returns the formatted text.
func runGeneration(ctx context.Context, cfg config.Config, repo *gitcontext.Repo, gitCfg gitcontext.Config, task agent.TaskType, commitCtx *gitcontext.CommitContext) (string, error) {
	return runGenerationWithInstructions(ctx, cfg, repo, gitCfg, task, commitCtx, "")
}

// runGenerationWithInstructions is runGeneration plus a caller-supplied
// instructions prefix, used by amend to surface the original message.
func runGenerationWithInstructions(ctx context.Context, cfg config.Config, repo *gitcontext.Repo, gitCfg gitcontext.Config, task agent.TaskType, commitCtx *gitcontext.CommitContext, extraInstructions string) (string, error) {
	res, err := runTask(ctx, cfg, repo, gitCfg, task, commitCtx, extraInstructions)
	if err != nil {
		return "", err
	}
	return formatTaskData(res), nil
}

// runTask submits one agent invocation through the shared executor and
// returns its raw result, for callers (changelog, release-notes) that need
// the typed Data rather than a Format()-rendered string.
func runTask(ctx context.Context, cfg config.Config, repo *gitcontext.Repo, gitCfg gitcontext.Config, task agent.TaskType, commitCtx *gitcontext.CommitContext, extraInstructions string) (*executor.ExecutionResult, error) {
	opts := runTaskOptions(cfg, extraInstructions)
	ag, err := buildAgent(cfg, repo, gitCfg, task, commitCtx, opts)
	if err != nil {
		return nil, err
	}

	req := executor.TaskRequest{
		ID:       fmt.Sprintf("%s-%d", task, time.Now().UnixNano()),
		Priority: executor.Normal,
		Timeout:  timeoutFor(cfg),
		Run: func(ctx context.Context) (*executor.ExecutionResult, error) {
			result := ag.Run(ctx, task, commitCtx, opts, nil)
			if !result.Success {
				return nil, fmt.Errorf("%s", result.Message)
			}
			return &executor.ExecutionResult{Success: true, Message: result.Message, Data: result.Data}, nil
		},
	}

	return sharedExecutor.RunSync(ctx, req)
}

// formatTaskData renders the typed result of a generation task as text,
// falling back to the raw message for free-form tasks like review.
func formatTaskData(res *executor.ExecutionResult) string {
	type formatter interface{ Format() string }
	if f, ok := res.Data.(formatter); ok {
		return f.Format()
	}
	return res.Message
}

// resolveRepo opens the working-tree repo, or clones repoURL read-only
// when one was given via --repository.
func resolveRepo(ctx context.Context, repoURL string, cfg config.Config) (*gitcontext.Repo, gitcontext.Config, error) {
	gitCfg := gitConfigFromPerformance(cfg)
	if repoURL != "" {
		repo, err := gitcontext.CloneRemote(ctx, repoURL)
		return repo, gitCfg, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, gitCfg, err
	}
	return gitcontext.Open(wd), gitCfg, nil
}
