package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zlovtnik/gshell/internal/config"
)

// newRootCmd builds the gshell command tree.
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "gshell",
		Short: "Terminal application shell with routed pages",
		Long: `gshell is a terminal front end for the workspace API. It has a header
with navigation links and an account menu, routed pages with back/forward
history, and can be served to remote users over SSH.

Available commands:
  gshell       - run the shell in this terminal
  gshell ssh   - serve the shell over SSH`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger, closeLog, err := newFileLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()

			m, err := newModel(cfg, logger, "")
			if err != nil {
				return err
			}
			logger.Info("starting shell", "api", cfg.BaseURL(), "env", cfg.Env)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("running program: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or TOML)")

	root.AddCommand(&cobra.Command{
		Use:   "ssh",
		Short: "Serve the shell over SSH",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			return serveSSH(cmd.Context(), cfg, newStderrLogger(cfg.Log))
		},
	})
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
