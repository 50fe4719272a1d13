package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashrif/openai-log-visualizer-custom/internal/config"
	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
	"github.com/yashrif/openai-log-visualizer-custom/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify logs root, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			// check logs root
			fmt.Println("=== Logs Root ===")
			checkDir(cfg.LogsRoot)

			// scan file count
			fmt.Println("\n=== File Scan ===")
			files, err := scan.ScanRoot(cfg.LogsRoot)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Log files: %d\n", len(files))
			}

			// check DB
			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'olv index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			fileCount, err := db.FileCount()
			if err != nil {
				return fmt.Errorf("count files: %w", err)
			}

			sessionCount, err := db.SessionCount()
			if err != nil {
				return fmt.Errorf("count sessions: %w", err)
			}

			chunkCount, err := db.ChunkCount()
			if err != nil {
				return fmt.Errorf("count chunks: %w", err)
			}

			fmt.Printf("  Files:    %d\n", fileCount)
			fmt.Printf("  Sessions: %d\n", sessionCount)
			fmt.Printf("  Chunks:   %d\n", chunkCount)

			// check FTS5
			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM chunks_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == chunkCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (chunks=%d, fts=%d)\n", chunkCount, ftsCount)
				}
			}

			// check DB file size
			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s (NOT FOUND)\n", path)
	} else if !info.IsDir() {
		fmt.Printf("  %s (NOT A DIRECTORY)\n", path)
	} else {
		fmt.Printf("  %s (OK)\n", path)
	}
}
