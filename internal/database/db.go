// Package database opens and initializes the proxy's stream cache database.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mralexsaavedra/jellytube/internal/domain/consts"
)

// DB wraps the sqlite handle for the stream cache.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if needed) the database at path and initializes its
// tables.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	d := &DB{conn: conn}
	if err := d.initTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Conn returns the underlying sql.DB.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Close closes the database.
func (d *DB) Close() error {
	return d.conn.Close()
}

// initTables initializes the SQL tables.
func (d *DB) initTables() error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		%s TEXT PRIMARY KEY,
		%s TEXT NOT NULL,
		%s INTEGER NOT NULL
	)`,
		consts.DBStreams,
		consts.QStreamVideoID,
		consts.QStreamURL,
		consts.QStreamExpiresAt)

	if _, err := d.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", consts.DBStreams, err)
	}
	return nil
}
