// Package open jumps from an indexed session to its source event log,
// handing the file to the user's editor positioned on the line a search hit
// came from.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
)

// OpenSession opens the log file behind sessionKey. When hitChunkID names an
// indexed transcript chunk, the editor jumps to the log line that chunk was
// extracted from; otherwise it opens at the top of the file.
func OpenSession(db *index.DB, sessionKey string, hitChunkID int) error {
	session, err := db.GetSessionByKey(sessionKey)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionKey)
	}

	if _, err := os.Stat(session.FilePath); err != nil {
		return fmt.Errorf("log file missing (re-run 'olv index'): %s", session.FilePath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	args := editorArgs(editor, session.FilePath, hitLine(db, sessionKey, hitChunkID))
	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// hitLine maps a chunk id back to its source log line. A stale id or a log
// rewritten since the last index run resolves to line 1 instead of failing;
// the jump is a convenience, not a contract.
func hitLine(db *index.DB, sessionKey string, chunkID int) int {
	if chunkID < 0 {
		return 1
	}
	chunks, err := db.GetChunks(sessionKey)
	if err != nil {
		return 1
	}
	for _, c := range chunks {
		if c.ChunkID == chunkID && c.LineNumber > 0 {
			return c.LineNumber
		}
	}
	return 1
}

// editorArgs builds the argument list for the editor's own line-jump syntax.
// vi-likes, nano and pagers take +N; VS Code takes --goto file:line; anything
// unrecognized gets the bare path.
func editorArgs(editor, path string, line int) []string {
	name := filepath.Base(editor)
	switch {
	case strings.Contains(name, "vim"), name == "vi", name == "nano":
		return []string{"+" + strconv.Itoa(line), path}
	case strings.Contains(name, "code"):
		return []string{"--goto", path + ":" + strconv.Itoa(line)}
	case name == "less", name == "more":
		return []string{"+" + strconv.Itoa(line), path}
	}
	return []string{path}
}
