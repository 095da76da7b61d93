package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sytelus/claude-sessions/internal/keyboard"
	"github.com/sytelus/claude-sessions/internal/logging"
	"github.com/sytelus/claude-sessions/internal/realtime"
	"github.com/sytelus/claude-sessions/internal/search"
)

var flagShowSelected bool

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search live while typing and open the selected transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.L()

		state := realtime.NewState()
		searcher := search.New(search.Stemmer{}, log)
		sched := realtime.NewScheduler(state, searcher, cfg.ProjectsDir, search.Options{
			Mode:       search.ModeSmart,
			MaxResults: cfg.MaxResults,
		}, log)
		sched.SetTiming(
			time.Duration(cfg.DebounceMS)*time.Millisecond,
			time.Duration(cfg.PollMS)*time.Millisecond,
		)

		controller := realtime.NewController(
			keyboard.New(),
			state,
			sched,
			realtime.NewDisplay(os.Stdout),
		)

		selected, err := controller.Run()

		// The controller has torn down raw mode by now; start output on a
		// fresh line regardless of where the cursor was parked.
		fmt.Print("\x1b[2J\x1b[H")

		if errors.Is(err, realtime.ErrInterrupted) {
			fmt.Println("Search interrupted")
			return nil
		}
		if err != nil {
			return err
		}
		if selected == "" {
			fmt.Println("Search cancelled")
			return nil
		}

		fmt.Printf("Selected: %s\n", selected)
		if flagShowSelected {
			return showTranscript(selected)
		}
		return nil
	},
}

func init() {
	interactiveCmd.Flags().BoolVar(&flagShowSelected, "show", false, "render the selected transcript after exit")
}
