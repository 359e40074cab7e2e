package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"snipref/internal/config"
	"snipref/internal/mcp"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		debug      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes snippet consistency checking as tools that AI
agents can discover and invoke:
  - snipref_check: Check inline documentation text
  - snipref_check_path: Check a documentation file on disk`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := mcpLogger(debug)

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:        logger,
				CheckerConfig: cfg.CheckerConfig(),
			})

			logger.Info("starting mcp server", "tools", srv.ListToolNames())

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: .snipref.yaml)")

	return cmd
}

// mcpLogger builds a stderr logger. Stdout stays reserved for the MCP
// stdio transport.
func mcpLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
