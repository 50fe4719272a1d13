package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashrif/openai-log-visualizer-custom/internal/audio"
	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

func audioCmd() *cobra.Command {
	var sessionID, responseID, outPath string
	var rate int

	cmd := &cobra.Command{
		Use:   "audio <file>",
		Short: "Extract streamed audio from a log into a WAV file",
		Long: `Collects the base64 PCM16 fragments of every audio delta run in the
selected session (optionally narrowed to one response), decodes and
concatenates them in log order, and writes a playable WAV file.`,
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

			session := findSession(result, sessionID)
			if session == nil {
				return fmt.Errorf("session %q not found (run 'olv parse %s')", sessionID, args[0])
			}

			rate = resolveRate(rate)
			runs := audioRuns(group.GroupEvents(session.Events), responseID)

			var buffers [][]float32
			for _, run := range runs {
				samples, skipped, err := audio.ExtractFromRun(run.Events)
				for _, ce := range skipped {
					fmt.Fprintf(os.Stderr, "  WARN: skip chunk: %v\n", ce)
				}
				if err != nil {
					continue
				}
				buffers = append(buffers, samples)
			}

			combined := audio.Combine(buffers...)
			if len(combined) == 0 {
				return audio.ErrNoAudioData
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			if err := audio.WriteWAV(out, combined, rate); err != nil {
				return err
			}

			fmt.Printf("Wrote %s: %d samples, %.1fs\n",
				outPath, len(combined), audio.Duration(combined, rate))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "session-1", "Session to extract (e.g. session-1)")
	cmd.Flags().StringVar(&responseID, "response", "", "Restrict to one response id")
	cmd.Flags().StringVarP(&outPath, "out", "o", "out.wav", "Output WAV path")
	cmd.Flags().IntVar(&rate, "rate", 0, "Sample rate (0 = config sample_rate)")

	return cmd
}

func findSession(result *parse.ParseResult, id string) *parse.Session {
	for _, s := range result.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// audioRuns walks a grouped timeline and returns the audio delta runs in
// order, scoped to one response cycle when responseID is set.
func audioRuns(groups []group.Group, responseID string) []*group.DeltaGroup {
	var runs []*group.DeltaGroup
	for _, g := range groups {
		cycle, ok := g.(*group.ResponseCycle)
		if !ok {
			continue
		}
		if responseID != "" && cycle.ResponseID != responseID {
			continue
		}
		for _, it := range cycle.Items {
			if run, ok := it.(*group.DeltaGroup); ok && run.EventType == event.TypeAudioDelta {
				runs = append(runs, run)
			}
		}
	}
	return runs
}
