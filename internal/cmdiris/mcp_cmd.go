package cmdiris

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jo-charles/git-iris/internal/mcpserver"
)

var mcpPort int

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().IntVar(&mcpPort, "port", 8765, "HTTP port to serve the MCP tool surface on")
}

var mcpCmd = &cobra.Command{
	Use:     "mcp",
	GroupID: GroupSystem,
	Short:   "Serve git-iris's tasks as an MCP tool surface",
	Long: `mcp starts a streamable-HTTP MCP server exposing commit, code review,
changelog, and release-notes generation as tools, for editor integrations
that speak the Model Context Protocol.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, repo, gitCfg, err := prepareRun(ctx, flagRepository)
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	agents, err := buildStudioAgents(cfg, repo, gitCfg, runTaskOptions(cfg, ""))
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}

	handler := mcpserver.NewHandler(&mcpserver.Server{Repo: repo, Agent: agents, Cfg: gitCfg})
	addr := fmt.Sprintf(":%d", mcpPort)
	fmt.Fprintf(cmd.OutOrStdout(), "serving MCP tools on http://localhost%s\n", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}
