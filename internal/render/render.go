package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yashrif/openai-log-visualizer-custom/internal/audio"
	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
	"github.com/yashrif/openai-log-visualizer-custom/internal/group"
	"github.com/yashrif/openai-log-visualizer-custom/internal/parse"
)

const (
	colorReset   = "\033[0m"
	colorUser    = "\033[1;34m" // bold blue
	colorAssist  = "\033[1;32m" // bold green
	colorPhase   = "\033[1;36m" // bold cyan for phase markers
	colorCycle   = "\033[1;35m" // bold magenta for response cycles
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
	colorWarn    = "\033[33m"   // yellow for warnings/errors
)

type Options struct {
	HitLine    int    // line number to highlight (-1 = none)
	Width      int    // wrap width (0 = no wrap)
	Query      string // search query for keyword highlighting
	SampleRate int    // for audio durations, 0 = default
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		text = highlightTerm(text, term)
	}
	return text
}

// highlightTerm matches rune-wise with EqualFold: folding can change a
// rune's byte length, so byte offsets into a lowered copy are not safe.
func highlightTerm(text, term string) string {
	window := utf8.RuneCountInString(term)
	if window == 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) < window {
		return text
	}

	var b strings.Builder
	i := 0
	for i < len(runes) {
		if i+window <= len(runes) && strings.EqualFold(string(runes[i:i+window]), term) {
			b.WriteString(colorBoldRed)
			b.WriteString(string(runes[i : i+window]))
			b.WriteString(colorReset)
			i += window
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// redactedFields hold raw base64 audio; their values are replaced before
// display so a timeline stays readable.
var redactedFields = map[string]bool{
	"audio": true,
	"delta": true,
}

// Sanitize renders an event payload as compact JSON with base64 audio
// bodies replaced by a size placeholder. Only audio-bearing event types are
// redacted; text deltas keep their delta field intact.
func Sanitize(ev event.Event) string {
	cat := event.Categorize(ev.Type())
	needsRedact := cat == event.CategoryResponseAudio || cat == event.CategoryAudioBuffer

	clean := make(map[string]any, len(ev))
	for k, v := range ev {
		if needsRedact && redactedFields[k] {
			if s, ok := v.(string); ok && s != "" {
				clean[k] = fmt.Sprintf("<audio %d bytes>", len(s))
				continue
			}
		}
		clean[k] = v
	}

	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(clean); err != nil {
		return ev.Type()
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

type renderer struct {
	b         strings.Builder
	opts      Options
	lineCount int
	hitRow    int
}

// RenderSession renders one session's grouped timeline with ANSI colors.
// It returns the content and the 0-based row of the hit line (-1 if none).
func RenderSession(s *parse.Session, groups []group.Group, opts Options) (string, int) {
	r := &renderer{opts: opts, hitRow: -1}

	header := fmt.Sprintf("%s--- %s", colorDim, s.ID)
	if s.Model != "" {
		header += "  model=" + s.Model
	}
	if s.Voice != "" {
		header += "  voice=" + s.Voice
	}
	if s.StartTime != "" {
		header += "  " + s.StartTime
	}
	header += fmt.Sprintf("  (%d events) ---%s", len(s.Events), colorReset)
	r.writeLine(header)
	r.writeLine("")

	for _, g := range groups {
		r.renderGroup(g, "")
	}

	return r.b.String(), r.hitRow
}

func (r *renderer) writeLine(s string) {
	for _, wl := range wrapLine(s, r.opts.Width) {
		r.b.WriteString(wl)
		r.b.WriteString("\n")
		r.lineCount++
	}
}

// markHit records the current row as the hit position when the group being
// rendered covers the requested line number.
func (r *renderer) markHit(first, last int) {
	if r.hitRow >= 0 || r.opts.HitLine <= 0 {
		return
	}
	if r.opts.HitLine >= first && r.opts.HitLine <= last {
		r.hitRow = r.lineCount
	}
}

func (r *renderer) renderGroup(g group.Group, indent string) {
	switch g := g.(type) {
	case *group.PhaseMarker:
		r.renderPhase(g, indent)
	case *group.DeltaGroup:
		r.renderRun(g, indent)
	case *group.ResponseCycle:
		r.renderCycle(g, indent)
	case *group.StandaloneEvent:
		r.renderEvent(g.Event, indent)
	}
}

func (r *renderer) renderItem(it group.Item, indent string) {
	switch it := it.(type) {
	case *group.DeltaGroup:
		r.renderRun(it, indent)
	case *group.StandaloneEvent:
		r.renderEvent(it.Event, indent)
	}
}

func phaseLabel(p group.Phase) string {
	switch p {
	case group.PhaseSpeech:
		return "user speaking"
	case group.PhaseResponse:
		return "assistant response"
	case group.PhaseFunctionCall:
		return "function call"
	}
	return string(p)
}

func (r *renderer) renderPhase(m *group.PhaseMarker, indent string) {
	r.markHit(m.LineNumber, m.LineNumber)
	ts := ""
	if m.Timestamp != "" {
		ts = "  " + colorDim + m.Timestamp + colorReset
	}
	r.writeLine("")
	r.writeLine(fmt.Sprintf("%s%s── %s ──%s%s", indent, colorPhase, phaseLabel(m.Phase), colorReset, ts))
}

func (r *renderer) renderRun(run *group.DeltaGroup, indent string) {
	r.markHit(run.FirstLine, run.LastLine)

	head := fmt.Sprintf("%s%s ×%d %s(lines %d-%d)%s",
		indent, run.EventType, run.Count(), colorDim, run.FirstLine, run.LastLine, colorReset)
	if r.opts.HitLine >= run.FirstLine && r.opts.HitLine <= run.LastLine {
		head = colorHit + ">>" + colorReset + " " + head
	}
	r.writeLine(head)

	if run.EventType == event.TypeAudioDelta {
		samples, skipped, err := audio.ExtractFromRun(run.Events)
		switch {
		case err != nil:
			r.writeLine(indent + "  " + colorDim + "(no decodable audio)" + colorReset)
		default:
			secs := audio.Duration(samples, r.opts.SampleRate)
			line := fmt.Sprintf("%s  %s%.1fs audio, %d samples%s", indent, colorDim, secs, len(samples), colorReset)
			if len(skipped) > 0 {
				line += fmt.Sprintf(" %s(%d bad chunks skipped)%s", colorWarn, len(skipped), colorReset)
			}
			r.writeLine(line)
		}
		return
	}

	text := run.Text()
	if text == "" {
		return
	}
	color := colorAssist
	if run.EventType == event.TypeInputTranscriptionDelta {
		color = colorUser
	}
	text = highlightKeywords(text, r.opts.Query)
	if r.opts.Width > 0 {
		text = wordwrap.String(text, r.opts.Width-len(indent)-2)
	}
	for _, l := range strings.Split(indentLines(text, indent+"  "), "\n") {
		r.writeLine(color + l + colorReset)
	}
}

func (r *renderer) renderCycle(c *group.ResponseCycle, indent string) {
	first := c.StartEvent.LineNumber
	last := first
	if c.EndEvent != nil {
		last = c.EndEvent.LineNumber
	}
	r.markHit(first, last)

	status := "open"
	if c.EndEvent != nil {
		if c.EndEvent.Event.Type() == event.TypeResponseCancelled {
			status = "cancelled"
		} else {
			status = "done"
		}
	}

	head := fmt.Sprintf("%s%s▶ response%s", indent, colorCycle, colorReset)
	if c.ResponseID != "" {
		head += " " + c.ResponseID
	}
	head += "  " + colorDim + status + colorReset
	if c.Usage != nil {
		head += fmt.Sprintf("  %stokens in=%d out=%d total=%d%s",
			colorDim, c.Usage.Input, c.Usage.Output, c.Usage.Total, colorReset)
	}
	r.writeLine(head)

	for _, it := range c.Items {
		r.renderItem(it, indent+"  ")
	}
}

func (r *renderer) renderEvent(line *parse.DecodedLine, indent string) {
	r.markHit(line.LineNumber, line.LineNumber)

	t := line.Event.Type()
	cat := event.Categorize(t)

	color := colorDim
	switch {
	case line.Source == parse.SourceUser || cat == event.CategoryUserInput:
		color = colorUser
	case cat == event.CategoryError:
		color = colorWarn
	}

	head := fmt.Sprintf("%s%s%4d%s %s%s%s %s[%s]%s",
		indent, colorDim, line.LineNumber, colorReset,
		color, t, colorReset,
		colorDim, cat, colorReset)
	if r.opts.HitLine == line.LineNumber {
		head = colorHit + ">>" + colorReset + " " + head
	}

	// a completed input transcription is the user's actual utterance
	if t == event.TypeInputTranscriptionCompleted {
		if tr := strings.TrimSpace(line.Event.Str("transcript")); tr != "" {
			head += "  " + colorUser + "\"" + highlightKeywords(tr, r.opts.Query) + "\"" + colorReset
		}
	}
	r.writeLine(head)
}
