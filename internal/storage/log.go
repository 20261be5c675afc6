// Package storage keeps a SQLite log of every message that reached the
// chat relay, whether Slack took it or not.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Status string

const (
	StatusSent     Status = "sent"
	StatusFailed   Status = "failed"
	StatusRejected Status = "rejected"
)

type Message struct {
	ID         int64     `json:"id"`
	Body       string    `json:"body"`
	Status     Status    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	body TEXT NOT NULL,
	status TEXT NOT NULL,
	detail TEXT,
	received_at INTEGER NOT NULL
)`

type Log struct {
	db *sql.DB
}

// Open creates or opens the log at path, making parent directories as
// needed.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open message log: %w", err)
	}
	// One writer keeps SQLite from reporting SQLITE_BUSY under gin's
	// concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create messages table: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error { return l.db.Close() }

// Record stores m and returns its id. A zero ReceivedAt is stamped with the
// current time.
func (l *Log) Record(ctx context.Context, m Message) (int64, error) {
	if m.ReceivedAt.IsZero() {
		m.ReceivedAt = time.Now()
	}
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO messages (body, status, detail, received_at)
		VALUES (?, ?, ?, ?)
	`, m.Body, string(m.Status), m.Detail, m.ReceivedAt.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("record message: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit messages, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, body, status, COALESCE(detail, ''), received_at
		FROM messages
		ORDER BY received_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m      Message
			status string
			nanos  int64
		)
		if err := rows.Scan(&m.ID, &m.Body, &status, &m.Detail, &nanos); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Status = Status(status)
		m.ReceivedAt = time.Unix(0, nanos)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Counts tallies messages per status.
func (l *Log) Counts(ctx context.Context) (map[Status]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM messages GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[Status(status)] = n
	}
	return counts, rows.Err()
}
