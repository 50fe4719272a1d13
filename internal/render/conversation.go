package render

import (
	"fmt"
	"os"

	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

// RenderConversation re-parses the source log of an indexed session and
// renders its timeline. It returns the content and the 0-based row of the
// hit line (-1 if no hit).
func RenderConversation(db *index.DB, sessionKey string, opts Options) (string, int, error) {
	row, err := db.GetSessionByKey(sessionKey)
	if err != nil {
		return "", -1, fmt.Errorf("get session: %w", err)
	}
	if row == nil {
		return "", -1, fmt.Errorf("session not found: %s", sessionKey)
	}

	f, err := os.Open(row.FilePath)
	if err != nil {
		return "", -1, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	result, err := parse.SegmentReader(f)
	if err != nil {
		return "", -1, err
	}

	for _, s := range result.Sessions {
		if s.ID == row.SessionID {
			groups := group.GroupEvents(s.Events)
			content, hitRow := RenderSession(s, groups, opts)
			return content, hitRow, nil
		}
	}
	return "", -1, fmt.Errorf("session %s no longer present in %s", row.SessionID, row.FilePath)
}
