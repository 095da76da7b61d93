package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sytelus/claude-sessions/internal/config"
	"github.com/sytelus/claude-sessions/internal/logging"
)

var (
	cfg     config.Config
	flagDir string
)

var rootCmd = &cobra.Command{
	Use:           "claude-sessions",
	Short:         "Search and browse local Claude Code conversation transcripts",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagDir != "" {
			cfg.ProjectsDir = config.DetectProjectsDir(flagDir)
		}
		logging.Init(cfg.LogDir, cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "transcript directory (default: ~/.claude/projects)")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(showCmd)
}
