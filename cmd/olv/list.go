package main

import (
	"github.com/spf13/cobra"
	"github.com/yashrif/openai-log-visualizer-custom/internal/config"
	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
	"github.com/yashrif/openai-log-visualizer-custom/internal/search"
	"github.com/yashrif/openai-log-visualizer-custom/internal/tui"
)

func listCmd() *cobra.Command {
	var model, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all sessions sorted by start time",
		Long:  `Opens a TUI panel showing all indexed sessions sorted by start time (newest first). Type to filter by summary, model or file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			index.IndexAll(db, cfg.LogsRoot)

			opts := search.Options{
				Model: model,
				Since: since,
				Limit: limit,
			}

			return tui.RunList(db, opts, cfg.SampleRate)
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Filter by model substring")
	cmd.Flags().StringVar(&since, "since", "", "Filter sessions started since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
