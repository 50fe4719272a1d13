package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yashrif/openai-log-visualizer-custom/internal/event"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB, audio deltas get large

// Segment decodes every line and partitions the stream into sessions.
// A session.created event opens a new session; sessions never close, they
// are delimited only by the next start marker. Decodable lines seen before
// the first start marker are collected in an implicit session.
func Segment(lines []string) *ParseResult {
	result := &ParseResult{}

	var current *Session
	nextID := 1

	newSession := func() *Session {
		s := &Session{ID: fmt.Sprintf("session-%d", nextID)}
		nextID++
		result.Sessions = append(result.Sessions, s)
		return s
	}

	for i, raw := range lines {
		line, err := DecodeLine(raw, i+1)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				result.Warnings = append(result.Warnings, Warning{
					LineNumber: de.LineNumber,
					Message:    de.Err.Error(),
					Content:    de.Content,
				})
			}
			continue
		}
		if line == nil {
			continue
		}

		if line.Event.Type() == event.TypeSessionCreated {
			current = newSession()
			current.SessionTag = line.SessionTag
			current.StartTime = line.Timestamp
			current.Model = line.Event.Str("session", "model")
			current.Voice = line.Event.Str("session", "voice")
		} else if current == nil {
			current = newSession()
			current.SessionTag = line.SessionTag
		}

		current.Events = append(current.Events, line)
	}

	return result
}

// SegmentReader reads lines from r and segments them. Lines longer than
// maxLineSize abort with an error from the scanner.
func SegmentReader(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return Segment(lines), nil
}

// SegmentString splits s on newlines and segments it.
func SegmentString(s string) *ParseResult {
	return Segment(strings.Split(s, "\n"))
}
