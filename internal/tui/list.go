package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/yashrif/openai-log-visualizer-custom/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: session/search results with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
		return empty
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatResultLine(r, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatResultLine formats a single result as two lines:
//
//	line 1: [>] date  model  summary
//	line 2:    snippet or session key (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	// Extract short date from StartedAt (e.g. "2024-01-15T10:30:00" -> "01-15")
	date := r.StartedAt
	if len(date) >= 10 {
		date = date[5:10] // MM-DD
	}

	model := r.Model
	if model == "" {
		model = "?"
	}
	if runewidth.StringWidth(model) > 14 {
		model = runewidth.Truncate(model, 14, "…")
	}
	var roleStyle lipgloss.Style
	switch r.Role {
	case "user":
		roleStyle = styleRoleUser
	default:
		roleStyle = styleRoleAssistant
	}

	// Truncate summary to fit width: leave room for prefix "  MM-DD model "
	summary := strings.ReplaceAll(r.Summary, "\n", " ")
	summaryMax := width - 2 - 6 - runewidth.StringWidth(model) - 3
	if summaryMax < 0 {
		summaryMax = 0
	}
	if runewidth.StringWidth(summary) > summaryMax {
		summary = runewidth.Truncate(summary, summaryMax, "")
	}

	// Line 1: date model summary
	line1 := fmt.Sprintf("%s %s %s", date, roleStyle.Render(model), styleListNormal.Render(summary))
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Line 2: snippet when searching, session key when listing
	snippet := r.Snippet
	if snippet == "" {
		snippet = r.SessionKey
	}
	snippet = strings.ReplaceAll(snippet, "\n", " ")
	snippet = strings.ReplaceAll(snippet, "\t", " ")
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	snippet = strings.ReplaceAll(snippet, "<<<", "")
	snippetMax := width - 4 // indent
	if snippetMax < 0 {
		snippetMax = 0
	}
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(snippet)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
