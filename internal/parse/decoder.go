package parse

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
)

const maxWarnContent = 200

// Prefix patterns are anchored: a non-matching prefix leaves the field unset
// and consumes nothing.
var (
	timestampRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,3})?Z?`)
	sessionTagRe = regexp.MustCompile(`^\[([0-9a-fA-F-]+)\]`)
	sourceTagRe  = regexp.MustCompile(`^\[(?i:(OPENAI|USER))\]`)
)

// DecodeError is a recoverable per-line failure: the payload did not parse
// as a JSON object. The line is dropped and the parse continues.
type DecodeError struct {
	LineNumber int
	Content    string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: decode event payload: %v", e.LineNumber, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeLine parses one raw log line. It returns (nil, nil) for blank lines,
// (nil, *DecodeError) when the payload is not a JSON object, and a populated
// DecodedLine otherwise.
//
// A line is: optional ISO-8601 timestamp, optional bracketed session tag,
// optional bracketed source tag, then the JSON event payload. Each prefix
// token is independent and may be absent in any combination.
func DecodeLine(raw string, lineNumber int) (*DecodedLine, error) {
	rest := strings.TrimSpace(raw)
	if rest == "" {
		return nil, nil
	}

	line := &DecodedLine{RawText: raw, LineNumber: lineNumber}

	if m := timestampRe.FindString(rest); m != "" {
		line.Timestamp = m
		rest = strings.TrimSpace(rest[len(m):])
	}

	if m := sessionTagRe.FindStringSubmatch(rest); m != nil {
		line.SessionTag = m[1]
		rest = strings.TrimSpace(rest[len(m[0]):])
	}

	if m := sourceTagRe.FindStringSubmatch(rest); m != nil {
		line.Source = Source(strings.ToUpper(m[1]))
		rest = strings.TrimSpace(rest[len(m[0]):])
	}

	ev, err := event.Parse([]byte(rest))
	if err == nil && ev == nil {
		// "null" unmarshals cleanly into a nil map; not a usable payload.
		err = fmt.Errorf("payload is not a JSON object")
	}
	if err != nil {
		return nil, &DecodeError{
			LineNumber: lineNumber,
			Content:    truncate(raw, maxWarnContent),
			Err:        err,
		}
	}

	line.Event = ev
	return line, nil
}

// truncate cuts s to at most n bytes, backing up to a rune boundary so the
// result stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
