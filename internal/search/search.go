package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/yashrif/openai-log-visualizer-custom/internal/index"
)

type Result struct {
	SessionKey string
	ChunkID    int
	LineNumber int
	StartedAt  string
	Model      string
	Voice      string
	Summary    string
	Snippet    string
	Role       string
	Rank       float64
}

type Options struct {
	Query string
	Role  string // "" = all, "user", "assistant"
	Model string // "" = all, substring match
	Since string // "" = no filter, e.g. "2024-01-01"
	Limit int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	// Deduplicate: keep only the best-ranked result per session
	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.SessionKey] {
			continue
		}
		seen[r.SessionKey] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

func filterConditions(opts Options) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.Role != "" {
		conditions = append(conditions, "c.role = ?")
		args = append(args, opts.Role)
	}
	if opts.Model != "" {
		conditions = append(conditions, "s.model LIKE ?")
		args = append(args, "%"+opts.Model+"%")
	}
	if opts.Since != "" {
		conditions = append(conditions, "s.started_at >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"chunks_fts MATCH ?"}
	args := []interface{}{opts.Query}

	fc, fa := filterConditions(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			c.session_key,
			c.chunk_id,
			c.line_number,
			s.started_at,
			s.model,
			s.voice,
			s.summary,
			snippet(chunks_fts, 0, '>>>','<<<', '...', 40) as snip,
			c.role,
			bm25(chunks_fts, 1.0) as rank
		FROM chunks_fts
		JOIN chunks c ON chunks_fts.rowid = c.rowid
		JOIN sessions s ON c.session_key = s.session_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	// LIKE match for CJK substring search
	conditions := []string{"c.text LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	fc, fa := filterConditions(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			c.session_key,
			c.chunk_id,
			c.line_number,
			s.started_at,
			s.model,
			s.voice,
			s.summary,
			c.text,
			c.role
		FROM chunks c
		JOIN sessions s ON c.session_key = s.session_key
		WHERE %s
		ORDER BY s.started_at DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(
			&r.SessionKey, &r.ChunkID, &r.LineNumber, &r.StartedAt,
			&r.Model, &r.Voice, &r.Summary,
			&fullText, &r.Role,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		r.Rank = 0
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListAll returns every indexed session sorted by start time (newest first),
// optionally filtered by a case-insensitive substring over summary, model and
// file key.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 500
	}

	conditions := []string{"1=1"}
	var args []interface{}

	if opts.Query != "" {
		conditions = append(conditions, "(s.summary LIKE ? OR s.model LIKE ? OR s.session_key LIKE ?)")
		like := "%" + opts.Query + "%"
		args = append(args, like, like, like)
	}
	if opts.Model != "" {
		conditions = append(conditions, "s.model LIKE ?")
		args = append(args, "%"+opts.Model+"%")
	}
	if opts.Since != "" {
		conditions = append(conditions, "s.started_at >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT session_key, started_at, model, voice, summary
		FROM sessions s
		WHERE %s
		ORDER BY s.started_at DESC, s.session_key
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r := Result{ChunkID: -1}
		if err := rows.Scan(&r.SessionKey, &r.StartedAt, &r.Model, &r.Voice, &r.Summary); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.SessionKey, &r.ChunkID, &r.LineNumber, &r.StartedAt,
			&r.Model, &r.Voice, &r.Summary,
			&r.Snippet, &r.Role, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
