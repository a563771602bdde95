package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore 基于 SQLite (WAL 模式) 的本地状态
// SQLiteStore keeps local client state in SQLite with WAL mode
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore 创建并初始化 SQLite 数据库
// NewSQLiteStore creates and initializes a SQLite database
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// 启用 WAL 模式和优化 PRAGMA / Enable WAL and performance PRAGMAs
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	store := &SQLiteStore{db: db, path: dbPath, now: time.Now}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		key          TEXT PRIMARY KEY,
		title        TEXT NOT NULL DEFAULT '',
		transcript   TEXT NOT NULL DEFAULT '',
		meeting_type TEXT NOT NULL DEFAULT 'General',
		participants TEXT NOT NULL DEFAULT '',
		updated_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS submissions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		meeting_id TEXT NOT NULL,
		title      TEXT NOT NULL DEFAULT '',
		ai_success INTEGER NOT NULL DEFAULT 0,
		notice     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close 关闭数据库连接 / Close the database connection
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// --- Draft Operations ---

// SaveDraft 写入草稿；空白草稿会删除已有记录
// SaveDraft upserts a draft; a blank draft removes the stored one
func (s *SQLiteStore) SaveDraft(d Draft) error {
	key := draftKey(d.Key)
	if d.IsBlank() {
		return s.DeleteDraft(key)
	}
	d.UpdatedAt = s.nowUTC()
	_, err := s.db.Exec(`
		INSERT INTO drafts (key, title, transcript, meeting_type, participants, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			title=excluded.title, transcript=excluded.transcript,
			meeting_type=excluded.meeting_type, participants=excluded.participants,
			updated_at=excluded.updated_at`,
		key, d.Title, d.Transcript, d.MeetingType, d.Participants, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadDraft(key string) (Draft, bool, error) {
	key = draftKey(key)
	row := s.db.QueryRow(`
		SELECT key, title, transcript, meeting_type, participants, updated_at
		FROM drafts WHERE key=?`, key)

	var d Draft
	err := row.Scan(&d.Key, &d.Title, &d.Transcript, &d.MeetingType, &d.Participants, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Draft{}, false, nil
		}
		return Draft{}, false, fmt.Errorf("load draft: %w", err)
	}
	return d, true, nil
}

func (s *SQLiteStore) DeleteDraft(key string) error {
	if _, err := s.db.Exec("DELETE FROM drafts WHERE key=?", draftKey(key)); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// --- Submission Operations ---

func (s *SQLiteStore) RecordSubmission(sub Submission) error {
	if strings.TrimSpace(sub.MeetingID) == "" {
		return fmt.Errorf("submission meeting id is empty")
	}
	if strings.TrimSpace(sub.CreatedAt) == "" {
		sub.CreatedAt = s.nowUTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO submissions (meeting_id, title, ai_success, notice, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		sub.MeetingID, sub.Title, boolToInt(sub.AISuccess), sub.Notice, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// ListSubmissions 按时间倒序返回最近的提交
// ListSubmissions returns the most recent submissions, newest first
func (s *SQLiteStore) ListSubmissions(limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT meeting_id, title, ai_success, notice, created_at
		FROM submissions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		var aiSuccess int
		if err := rows.Scan(&sub.MeetingID, &sub.Title, &aiSuccess, &sub.Notice, &sub.CreatedAt); err != nil {
			continue
		}
		sub.AISuccess = aiSuccess != 0
		out = append(out, sub)
	}
	return out, rows.Err()
}

// --- Helpers ---

func (s *SQLiteStore) nowUTC() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func draftKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return DefaultDraftKey
	}
	return key
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
