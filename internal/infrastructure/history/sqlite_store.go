package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/filesystem"
	"github.com/doeshing/imagegen/internal/ports"
)

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// DefaultSQLitePath is ~/.imagegen/history/history.db.
func DefaultSQLitePath() string {
	return filesystem.DataDir("history", "history.db")
}

// NewSQLiteStore prepares a store at path. The database is opened by Load.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = DefaultSQLitePath()
	}
	return &SQLiteStore{path: path}
}

// Load opens the database and creates the schema if needed.
func (s *SQLiteStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	// modernc sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS images (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL,
		image_url TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		aspect_ratio TEXT,
		fallback INTEGER NOT NULL DEFAULT 0
	);`); err != nil {
		db.Close()
		return err
	}
	s.db = db
	return nil
}

// Append inserts a new record.
func (s *SQLiteStore) Append(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return domain.ErrStoreNotLoaded
	}
	res, err := s.db.Exec(`INSERT INTO images
		(id, content, image_url, timestamp, aspect_ratio, fallback)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		record.ID,
		record.Content,
		record.ImageURL,
		record.Timestamp.Format(time.RFC3339Nano),
		string(record.AspectRatio),
		boolToInt(record.Fallback),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("append %s: %w", record.ID, domain.ErrDuplicateRecord)
	}
	return nil
}

// List returns matching records in insertion order.
func (s *SQLiteStore) List(filter string) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.ErrStoreNotLoaded
	}
	rows, err := s.db.Query(`SELECT id, content, image_url, timestamp, aspect_ratio, fallback FROM images ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts string
		var ratio sql.NullString
		var fallback int
		if err := rows.Scan(&rec.ID, &rec.Content, &rec.ImageURL, &ts, &ratio, &fallback); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		rec.AspectRatio = domain.AspectRatio(ratio.String)
		rec.Fallback = fallback == 1
		if rec.Matches(filter) {
			records = append(records, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Remove deletes the record with id. Unknown ids are a no-op.
func (s *SQLiteStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return domain.ErrStoreNotLoaded
	}
	_, err := s.db.Exec("DELETE FROM images WHERE id = ?", id)
	return err
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return domain.ErrStoreNotLoaded
	}
	_, err := s.db.Exec("DELETE FROM images")
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
