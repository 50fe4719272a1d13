package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yashrif/openai-log-visualizer-custom/internal/config"
	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
	"github.com/yashrif/openai-log-visualizer-custom/internal/search"
	"github.com/yashrif/openai-log-visualizer-custom/internal/tui"
	"golang.org/x/term"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeRole(role string) string {
	switch role {
	case "user":
		return sColorBlue + role + sColorReset
	case "assistant":
		return sColorGreen + role + sColorReset
	default:
		return role
	}
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var role, model, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across indexed transcripts",
		Long: `Search reconstructed transcripts using FTS5. Output is TSV for fzf
integration when piped:
  sessionKey, chunkId, startedAt, role, model, summary, snippet

Recommended shell function (add to .zshrc):
  olvf() {
    olv search "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --bind 'enter:execute(olv open {1} --hit {2})'
  }`,
		Args: cobra.ExactArgs(1),
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

			// Auto-update index before searching
			index.IndexAll(db, cfg.LogsRoot)

			opts := search.Options{
				Role:  role,
				Model: model,
				Since: since,
				Limit: limit,
			}

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, args[0], opts, cfg.SampleRate)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				snippet = colorizeSnippet(snippet)
				summary := strings.ReplaceAll(r.Summary, "\t", " ")
				summary = strings.ReplaceAll(summary, "\n", " ")
				mdl := r.Model
				if mdl == "" {
					mdl = "-"
				}
				// first two fields (sessionKey, chunkID) stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\t%s\t%s\n",
					r.SessionKey,
					r.ChunkID,
					sColorDim, r.StartedAt, sColorReset,
					colorizeRole(r.Role),
					mdl,
					summary,
					snippet,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Filter by role (user/assistant)")
	cmd.Flags().StringVar(&model, "model", "", "Filter by model substring")
	cmd.Flags().StringVar(&since, "since", "", "Filter sessions started since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
