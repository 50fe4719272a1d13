package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
	"github.com/yashrif/openai-log-visualizer-custom/internal/render"
	"github.com/yashrif/openai-log-visualizer-custom/internal/search"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	sessionKey string
	chunkID    int
	content    string
	hitLine    int
	err        error
}

// loadPreviewCmd returns a tea.Cmd that renders the session timeline async.
func loadPreviewCmd(db *index.DB, r search.Result, query string, width, sampleRate int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderConversation(db, r.SessionKey, render.Options{
			HitLine:    r.LineNumber,
			Width:      width,
			Query:      query,
			SampleRate: sampleRate,
		})
		return previewRenderedMsg{
			sessionKey: r.SessionKey,
			chunkID:    r.ChunkID,
			content:    content,
			hitLine:    hitLine,
			err:        err,
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
