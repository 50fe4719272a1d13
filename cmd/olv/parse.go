package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

func parseCmd() *cobra.Command {
	var showWarnings bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a realtime event log and report its sessions",
		Args:  cobra.ExactArgs(1),
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

			for _, s := range result.Sessions {
				model := s.Model
				if model == "" {
					model = "-"
				}
				voice := s.Voice
				if voice == "" {
					voice = "-"
				}
				start := s.StartTime
				if start == "" {
					start = "-"
				}
				fmt.Printf("%-12s  start=%-24s  model=%-24s  voice=%-10s  events=%d\n",
					s.ID, start, model, voice, len(s.Events))
			}

			fmt.Printf("\n%d sessions, %d warnings\n", len(result.Sessions), len(result.Warnings))

			if showWarnings {
				for _, w := range result.Warnings {
					fmt.Fprintf(os.Stderr, "  line %d: %s: %q\n", w.LineNumber, w.Message, w.Content)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showWarnings, "warnings", false, "Print per-line decode warnings")

	return cmd
}
