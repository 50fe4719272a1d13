package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashrif/openai-log-visualizer-custom/internal/config"
	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
	"github.com/yashrif/openai-log-visualizer-custom/internal/render"
	"golang.org/x/term"
)

func timelineCmd() *cobra.Command {
	var sessionID string
	var width, rate int

	cmd := &cobra.Command{
		Use:   "timeline <file>",
		Short: "Render the grouped event timeline of a log file",
		Long: `Parses the log, segments it into sessions and renders each session's
timeline: phase transitions, response cycles with token usage, aggregated
streaming runs with reconstructed text, and audio durations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := parse.SegmentReader(f)
			if err != nil {
				return err
			}

			if width == 0 {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}
			rate = resolveRate(rate)

			shown := 0
			for _, s := range result.Sessions {
				if sessionID != "" && s.ID != sessionID {
					continue
				}
				groups := group.GroupEvents(s.Events)
				content, _ := render.RenderSession(s, groups, render.Options{
					HitLine:    -1,
					Width:      width,
					SampleRate: rate,
				})
				fmt.Print(content)
				fmt.Println()
				shown++
			}

			if shown == 0 {
				if sessionID != "" {
					return fmt.Errorf("session %s not found (run 'olv parse %s')", sessionID, args[0])
				}
				fmt.Fprintln(os.Stderr, "No sessions found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Render only this session (e.g. session-1)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = terminal width)")
	cmd.Flags().IntVar(&rate, "rate", 0, "Audio sample rate for durations (0 = config sample_rate)")

	return cmd
}

// resolveRate falls back to the configured sample rate when no --rate flag
// was given.
func resolveRate(rate int) int {
	if rate != 0 {
		return rate
	}
	if cfg, err := config.Load(); err == nil {
		return cfg.SampleRate
	}
	return 0
}
