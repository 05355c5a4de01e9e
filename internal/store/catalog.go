// Package store keeps the conversation catalog, a small SQLite database
// recording every converted conversation so later runs can answer "what
// did I convert recently" without rescanning the vault.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
	"github.com/aaronsb/claude-knowledge-converter/internal/logging"
)

// Catalog is the conversation catalog database.
type Catalog struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Record is one cataloged conversation.
type Record struct {
	UUID          string   `json:"uuid"`
	Title         string   `json:"title"`
	Platform      string   `json:"platform"`
	CreatedAt     string   `json:"created_at"`
	ConvertedAt   string   `json:"converted_at"`
	Path          string   `json:"path"`
	MessageCount  int      `json:"message_count"`
	MarkdownCount int      `json:"markdown_count"`
	Keywords      []string `json:"keywords"`
}

// Open opens or creates the catalog at <ckcDir>/catalog.db.
func Open(ckcDir string, logger *logging.Logger) (*Catalog, error) {
	if err := os.MkdirAll(ckcDir, 0755); err != nil {
		return nil, ckcerrors.New(ckcerrors.CatalogError,
			fmt.Sprintf("failed to create %s", ckcDir), err)
	}

	dbPath := filepath.Join(ckcDir, "catalog.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to open catalog", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA foreign_keys=ON",    // Enable foreign key constraints
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to set pragma", err)
		}
	}

	c := &Catalog{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if !dbExists {
		logger.Info("Creating new catalog", map[string]interface{}{
			"path": dbPath,
		})
	}
	if err := c.initializeSchema(); err != nil {
		conn.Close()
		return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to initialize schema", err)
	}

	return c, nil
}

// Close closes the catalog connection.
func (c *Catalog) Close() error {
	return c.conn.Close()
}

// Path returns the catalog database path.
func (c *Catalog) Path() string {
	return c.dbPath
}

func (c *Catalog) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		uuid           TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		platform       TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		converted_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
		path           TEXT NOT NULL,
		message_count  INTEGER NOT NULL DEFAULT 0,
		markdown_count INTEGER NOT NULL DEFAULT 0,
		keywords       TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_created ON conversations(created_at);
	CREATE INDEX IF NOT EXISTS idx_conversations_platform ON conversations(platform);
	`
	_, err := c.conn.Exec(schema)
	return err
}

// Upsert records one converted conversation, replacing any earlier run's
// row for the same uuid.
func (c *Catalog) Upsert(r *Record) error {
	keywordsJSON, err := json.Marshal(r.Keywords)
	if err != nil {
		return ckcerrors.New(ckcerrors.CatalogError, "failed to encode keywords", err)
	}

	_, err = c.conn.Exec(`
		INSERT INTO conversations (uuid, title, platform, created_at, path, message_count, markdown_count, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET
			title = excluded.title,
			platform = excluded.platform,
			created_at = excluded.created_at,
			converted_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now'),
			path = excluded.path,
			message_count = excluded.message_count,
			markdown_count = excluded.markdown_count,
			keywords = excluded.keywords`,
		r.UUID, r.Title, r.Platform, r.CreatedAt, r.Path,
		r.MessageCount, r.MarkdownCount, string(keywordsJSON))
	if err != nil {
		return ckcerrors.New(ckcerrors.CatalogError,
			fmt.Sprintf("failed to catalog conversation %s", r.UUID), err)
	}
	return nil
}

// Recent returns the most recently converted conversations, newest first.
func (c *Catalog) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := c.conn.Query(`
		SELECT uuid, title, platform, created_at, converted_at, path, message_count, markdown_count, keywords
		FROM conversations
		ORDER BY converted_at DESC, created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to query catalog", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ByPlatform returns cataloged conversations for one platform, newest first.
func (c *Catalog) ByPlatform(platform string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := c.conn.Query(`
		SELECT uuid, title, platform, created_at, converted_at, path, message_count, markdown_count, keywords
		FROM conversations
		WHERE platform = ?
		ORDER BY converted_at DESC, created_at DESC
		LIMIT ?`, platform, limit)
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to query catalog", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of cataloged conversations.
func (c *Catalog) Count() (int, error) {
	var n int
	if err := c.conn.QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&n); err != nil {
		return 0, ckcerrors.New(ckcerrors.CatalogError, "failed to count catalog", err)
	}
	return n, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var keywordsJSON string
		if err := rows.Scan(&r.UUID, &r.Title, &r.Platform, &r.CreatedAt, &r.ConvertedAt,
			&r.Path, &r.MessageCount, &r.MarkdownCount, &keywordsJSON); err != nil {
			return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to scan catalog row", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &r.Keywords); err != nil {
			r.Keywords = nil
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ckcerrors.New(ckcerrors.CatalogError, "failed to read catalog rows", err)
	}
	return records, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
