package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/eventscout/eventscout/internal/logger"
)

// PostgresStore keeps seen ids in a table, writing through on Add so a
// crash between cycles loses nothing.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("postgres seen store ready")
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS seen_ids (
			id         VARCHAR(16) PRIMARY KEY,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create seen_ids table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Contains(id string) bool {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM seen_ids WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.Error("seen lookup failed", "id", id, "error", err)
		return false
	}
	return exists
}

func (s *PostgresStore) Add(id string) error {
	_, err := s.db.Exec(`INSERT INTO seen_ids (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("insert seen id: %w", err)
	}
	return nil
}

// Save is a no-op: Add already persists.
func (s *PostgresStore) Save() error { return nil }

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
