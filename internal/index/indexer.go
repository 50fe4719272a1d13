package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
	"github.com/yashrif/openai-log-visualizer-custom/internal/scan"
)

type Stats struct {
	Scanned  int
	Updated  int
	Skipped  int
	Pruned   int
	Warnings int
	Errors   int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d warnings=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Warnings, s.Errors)
}

func IndexAll(db *DB, logsRoot string) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(logsRoot)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	// track which files we see, for pruning
	seen := make(map[string]struct{})

	for _, fi := range files {
		seen[fi.Path] = struct{}{}

		needs, err := needsUpdate(db, fi)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		result, err := parseLogFile(fi.Path)
		if err != nil {
			stats.Errors++
			fmt.Printf("  WARN: parse %s: %v\n", fi.Path, err)
			continue
		}
		stats.Warnings += len(result.Warnings)

		if err := indexFile(db, fi, logsRoot, result); err != nil {
			stats.Errors++
			fmt.Printf("  WARN: index %s: %v\n", fi.Path, err)
			continue
		}
		stats.Updated++
	}

	// prune files that no longer exist
	pruned, err := pruneFiles(db, seen)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func parseLogFile(path string) (*parse.ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse.SegmentReader(f)
}

func needsUpdate(db *DB, fi scan.FileInfo) (bool, error) {
	info, err := db.GetFileInfo(fi.Path)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new file
	}
	return info.Mtime != fi.Mtime || info.Size != fi.Size, nil
}

// SessionKey derives the stable index key for one session of one log file.
func SessionKey(logsRoot, filePath, sessionID string) string {
	rel, err := filepath.Rel(logsRoot, filePath)
	if err != nil {
		rel = filePath
	}
	return rel + "#" + sessionID
}

func indexFile(db *DB, fi scan.FileInfo, logsRoot string, result *parse.ParseResult) error {
	// drop stale rows for this file first
	if err := db.DeleteFile(fi.Path); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO files (file_path, mtime, size) VALUES (?, ?, ?)",
		fi.Path, fi.Mtime, fi.Size,
	); err != nil {
		return err
	}

	sessStmt, err := tx.Prepare(
		`INSERT INTO sessions (session_key, file_path, session_id, session_tag, model, voice, started_at, summary, event_count, cycle_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer sessStmt.Close()

	chunkStmt, err := tx.Prepare(
		`INSERT INTO chunks (session_key, chunk_id, ts, role, kind, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer chunkStmt.Close()

	for _, s := range result.Sessions {
		key := SessionKey(logsRoot, fi.Path, s.ID)
		groups := group.GroupEvents(s.Events)
		chunks := transcriptChunks(groups)

		cycles := 0
		for _, g := range groups {
			if _, ok := g.(*group.ResponseCycle); ok {
				cycles++
			}
		}

		if _, err := sessStmt.Exec(
			key, fi.Path, s.ID, s.SessionTag, s.Model, s.Voice, s.StartTime,
			summarize(chunks), len(s.Events), cycles,
		); err != nil {
			return err
		}

		for i, c := range chunks {
			if _, err := chunkStmt.Exec(key, i, c.Ts, c.Role, c.Kind, c.Text, c.LineNumber); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// summarize picks the first user utterance, falling back to the first chunk
// of any kind.
func summarize(chunks []Chunk) string {
	var text string
	for _, c := range chunks {
		if c.Role == "user" {
			text = c.Text
			break
		}
	}
	if text == "" && len(chunks) > 0 {
		text = chunks[0].Text
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return strings.ReplaceAll(text, "\n", " ")
}

func pruneFiles(db *DB, seen map[string]struct{}) (int, error) {
	all, err := db.AllFilePaths()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for path := range all {
		if _, ok := seen[path]; !ok {
			if err := db.DeleteFile(path); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
