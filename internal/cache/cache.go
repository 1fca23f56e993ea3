package cache

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Settings keys used by the UI
const (
	KeyLastProjectID = "last_project_id"
	KeyLastView      = "last_view"
)

// Cache is the local settings store. Only UI preferences live here; every
// domain entity belongs to the server.
type Cache struct {
	*sql.DB
}

// Open creates the settings database, initializing the schema if needed
func Open() (*Cache, error) {
	path, err := cachePath()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db}, nil
}

// OpenAt opens the settings database at an explicit path (tests)
func OpenAt(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db}, nil
}

// cachePath returns the settings database location under XDG data home
func cachePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "planboard")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "planboard.db"), nil
}

// GetSetting retrieves a setting value by key
func (c *Cache) GetSetting(key string) (string, error) {
	var value string
	err := c.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value
func (c *Cache) SetSetting(key, value string) error {
	_, err := c.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
