package cmdiris

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/config"
)

var configProject bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.PersistentFlags().BoolVar(&configProject, "project", false, "Operate on the project-local .irisconfig instead of the personal config")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: GroupSystem,
	Short:   "View or modify the git-iris configuration",
	Long: `config shows or edits the TOML configuration at
~/.config/git-iris/config.toml, or, with --project, the project-local
.irisconfig override. Project config never stores API keys; they are
stripped before the file is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single configuration key",
	Long: `set writes one key, e.g.:

  iris config set default_provider anthropic
  iris config set use_gitmoji true
  iris config set providers.anthropic.model claude-opus-4
  iris config set performance.max_concurrent_tasks 8`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func configPath() string {
	if configProject {
		wd, err := os.Getwd()
		if err != nil {
			return config.ProjectPath(".")
		}
		return config.ProjectPath(wd)
	}
	return config.PersonalPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "default_provider = %q\n", cfg.DefaultProvider)
	fmt.Fprintf(cmd.OutOrStdout(), "use_gitmoji = %v\n", cfg.UseGitmoji)
	fmt.Fprintf(cmd.OutOrStdout(), "instruction_preset = %q\n", cfg.InstructionPreset)
	for name, p := range cfg.Providers {
		fmt.Fprintf(cmd.OutOrStdout(), "[providers.%s]\n  model = %q\n  fast_model = %q\n", name, p.Model, p.FastModel)
	}
	return nil
}

// runConfigSet applies one dotted key against the loaded config and saves
// it back, stripping API keys first when --project is set.
func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	key, value := args[0], args[1]
	if err := applyConfigKey(&cfg, key, value); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := config.Save(path, cfg, configProject); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "set %s = %s in %s\n", key, value, path)
	return nil
}

func applyConfigKey(cfg *config.Config, key, value string) error {
	switch {
	case key == "default_provider":
		cfg.DefaultProvider = value
	case key == "use_gitmoji":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("use_gitmoji must be true/false: %w", err)
		}
		cfg.UseGitmoji = b
	case key == "instructions":
		cfg.Instructions = value
	case key == "instruction_preset":
		cfg.InstructionPreset = value
	case key == "performance.max_concurrent_tasks":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("performance.max_concurrent_tasks must be an integer: %w", err)
		}
		cfg.Performance.MaxConcurrentTasks = n
	case key == "performance.default_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("performance.default_timeout_seconds must be an integer: %w", err)
		}
		cfg.Performance.DefaultTimeoutSecs = n
	case key == "performance.use_agent_framework":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("performance.use_agent_framework must be true/false: %w", err)
		}
		cfg.Performance.UseAgentFramework = b
	case strings.HasPrefix(key, "providers."):
		return applyProviderKey(cfg, strings.TrimPrefix(key, "providers."), value)
	default:
		return fmt.Errorf("unrecognized key %q", key)
	}
	return nil
}

func applyProviderKey(cfg *config.Config, rest, value string) error {
	parts := strings.SplitN(rest, ".", 2)
	if len(parts) != 2 {
		return fmt.Errorf("provider key must look like providers.<name>.<field>")
	}
	name, field := parts[0], parts[1]
	if cfg.Providers == nil {
		cfg.Providers = map[string]config.ProviderConfig{}
	}
	p := cfg.Providers[name]
	switch field {
	case "api_key":
		p.APIKey = value
	case "model":
		p.Model = value
	case "fast_model":
		p.FastModel = value
	case "token_limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("token_limit must be an integer: %w", err)
		}
		p.TokenLimit = n
	default:
		return fmt.Errorf("unrecognized provider field %q", field)
	}
	cfg.Providers[name] = p
	return nil
}
