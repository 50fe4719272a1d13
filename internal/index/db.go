package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS files (
    file_path TEXT PRIMARY KEY,
    mtime     INTEGER NOT NULL DEFAULT 0,
    size      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sessions (
    session_key TEXT PRIMARY KEY,
    file_path   TEXT NOT NULL,
    session_id  TEXT NOT NULL,
    session_tag TEXT NOT NULL DEFAULT '',
    model       TEXT NOT NULL DEFAULT '',
    voice       TEXT NOT NULL DEFAULT '',
    started_at  TEXT NOT NULL DEFAULT '',
    summary     TEXT NOT NULL DEFAULT '',
    event_count INTEGER NOT NULL DEFAULT 0,
    cycle_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chunks (
    session_key TEXT NOT NULL,
    chunk_id    INTEGER NOT NULL,
    ts          TEXT NOT NULL DEFAULT '',
    role        TEXT NOT NULL,
    kind        TEXT NOT NULL DEFAULT 'text',
    text        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (session_key, chunk_id)
);

CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
    text,
    content=chunks,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS chunks_ai AFTER INSERT ON chunks BEGIN
    INSERT INTO chunks_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS chunks_ad AFTER DELETE ON chunks BEGIN
    INSERT INTO chunks_fts(chunks_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TRIGGER IF NOT EXISTS chunks_au AFTER UPDATE ON chunks BEGIN
    INSERT INTO chunks_fts(chunks_fts, rowid, text) VALUES('delete', old.rowid, old.text);
    INSERT INTO chunks_fts(rowid, text) VALUES (new.rowid, new.text);
END;
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	// schema version tracking for forced re-index
	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever transcript extraction changes
// to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// force re-index by resetting all file mtime/size to 0
		d.db.Exec("UPDATE files SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type FileInfo struct {
	Mtime int64
	Size  int64
}

func (d *DB) GetFileInfo(filePath string) (*FileInfo, error) {
	var info FileInfo
	err := d.db.QueryRow(
		"SELECT mtime, size FROM files WHERE file_path = ?",
		filePath,
	).Scan(&info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllFilePaths() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT file_path FROM files")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths[p] = struct{}{}
	}
	return paths, rows.Err()
}

// DeleteFile removes the file row and every session and chunk derived
// from it.
func (d *DB) DeleteFile(filePath string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM chunks WHERE session_key IN (SELECT session_key FROM sessions WHERE file_path = ?)",
		filePath,
	); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE file_path = ?", filePath); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM files WHERE file_path = ?", filePath); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) SessionCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	return n, err
}

func (d *DB) ChunkCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

func (d *DB) FileCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&n)
	return n, err
}

type SessionRow struct {
	SessionKey string
	FilePath   string
	SessionID  string
	SessionTag string
	Model      string
	Voice      string
	StartedAt  string
	Summary    string
	EventCount int
	CycleCount int
}

func (d *DB) GetSessionByKey(sessionKey string) (*SessionRow, error) {
	var s SessionRow
	err := d.db.QueryRow(
		`SELECT session_key, file_path, session_id, session_tag, model, voice, started_at, summary, event_count, cycle_count
		 FROM sessions WHERE session_key = ?`,
		sessionKey,
	).Scan(&s.SessionKey, &s.FilePath, &s.SessionID, &s.SessionTag, &s.Model, &s.Voice,
		&s.StartedAt, &s.Summary, &s.EventCount, &s.CycleCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type ChunkRow struct {
	SessionKey string
	ChunkID    int
	Ts         string
	Role       string
	Kind       string
	Text       string
	LineNumber int
}

func (d *DB) GetChunks(sessionKey string) ([]ChunkRow, error) {
	rows, err := d.db.Query(
		"SELECT session_key, chunk_id, ts, role, kind, text, line_number FROM chunks WHERE session_key = ? ORDER BY chunk_id",
		sessionKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []ChunkRow
	for rows.Next() {
		var c ChunkRow
		if err := rows.Scan(&c.SessionKey, &c.ChunkID, &c.Ts, &c.Role, &c.Kind, &c.Text, &c.LineNumber); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}
