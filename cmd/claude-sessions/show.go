package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sytelus/claude-sessions/internal/export"
)

var (
	flagTools    bool
	flagThinking bool
	flagOut      string
)

var showCmd = &cobra.Command{
	Use:   "show <transcript.jsonl>",
	Short: "Extract a transcript to markdown and render it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTranscript(args[0])
	},
}

func init() {
	showCmd.Flags().BoolVar(&flagTools, "tools", false, "include tool calls and results")
	showCmd.Flags().BoolVar(&flagThinking, "thinking", false, "include thinking blocks")
	showCmd.Flags().StringVar(&flagOut, "out", "", "export directory (default from config)")
}

func showTranscript(jsonlPath string) error {
	outDir := flagOut
	if outDir == "" {
		outDir = cfg.ExportDir
	}

	path, err := export.Extract(jsonlPath, outDir, export.Options{
		IncludeTools:    flagTools,
		IncludeThinking: flagThinking,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Extracted to %s\n", path)

	md, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read extracted markdown: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(string(md))
		return nil
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || width > 120 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Print(string(md))
		return nil
	}
	rendered, err := r.Render(string(md))
	if err != nil {
		fmt.Print(string(md))
		return nil
	}
	fmt.Print(rendered)
	return nil
}
