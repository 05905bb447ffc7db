package store

import (
	"database/sql"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound reports an id-based lookup or update that matched no row.
var ErrNotFound = errors.New("order not found")

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// InitSchema creates the orders table directly. The server applies the
// migrations directory instead; this exists for the CLI and for tests.
func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS laundry_orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		contact TEXT NOT NULL,
		clothes TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
