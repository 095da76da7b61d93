package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sytelus/claude-sessions/internal/logging"
	"github.com/sytelus/claude-sessions/internal/search"
)

var (
	flagMode          string
	flagSpeaker       string
	flagSince         string
	flagUntil         string
	flagMax           int
	flagCaseSensitive bool
)

var (
	headerColor    = color.New(color.FgCyan, color.Bold)
	fileColor      = color.New(color.FgGreen)
	speakerColor   = color.New(color.FgYellow)
	relevanceColor = color.New(color.FgMagenta)
	matchColor     = color.New(color.FgHiYellow, color.Bold)
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search transcripts and print ranked matches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		opts := search.Options{
			Mode:          search.Mode(flagMode),
			Speaker:       flagSpeaker,
			MaxResults:    flagMax,
			CaseSensitive: flagCaseSensitive,
		}
		var err error
		if opts.From, err = parseDateFlag(flagSince); err != nil {
			return err
		}
		if opts.To, err = parseDateFlag(flagUntil); err != nil {
			return err
		}

		searcher := search.New(search.Stemmer{}, logging.L())
		results, err := searcher.Search(query, cfg.ProjectsDir, opts)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Printf("No results found for %q\n", query)
			return nil
		}

		fmt.Printf("Found %d result(s) for %q\n", len(results), query)
		for _, r := range results {
			printResult(r)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&flagMode, "mode", "smart", "search mode: smart, exact, regex, semantic")
	searchCmd.Flags().StringVar(&flagSpeaker, "speaker", "", "filter by speaker: human or assistant")
	searchCmd.Flags().StringVar(&flagSince, "since", "", "only files modified on/after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&flagUntil, "until", "", "only files modified on/before this date (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&flagMax, "max", search.DefaultMaxResults, "maximum number of results")
	searchCmd.Flags().BoolVar(&flagCaseSensitive, "case-sensitive", false, "match case exactly")
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func printResult(r search.Result) {
	sep := strings.Repeat("=", 60)
	headerColor.Println("\n" + sep)
	fmt.Printf("%s %s\n", fileColor.Sprint("File:"), r.Path)
	fmt.Printf("%s %s", speakerColor.Sprint("Speaker:"), titleCase(r.Speaker))
	if r.HasTime {
		fmt.Printf("  (%s)", r.Timestamp.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Printf("%s %.0f%%\n", relevanceColor.Sprint("Relevance:"), r.Relevance*100)
	headerColor.Println(sep)
	fmt.Println(colorizeMarkers(r.Context))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// colorizeMarkers replaces the **…** highlight markers the engine produces
// with terminal emphasis.
func colorizeMarkers(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "**")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.Index(s[start+2:], "**")
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		b.WriteString(matchColor.Sprint(s[start+2 : start+2+end]))
		s = s[start+2+end+2:]
	}
}
