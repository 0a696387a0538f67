package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// DefaultPollInterval is how often watchers re-query for writes made by
// other processes.
const DefaultPollInterval = 2 * time.Second

// Store is a SQLite-backed catalog database that provides every store
// interface through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	poll time.Duration

	productsHub *watch.Hub
	ordersHub   *watch.Hub
	messagesHub *watch.Hub
	settingsHub *watch.Hub
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.haat/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".haat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Immediate transactions take the write lock up front so the
	// read-modify-write in DecrementStock cannot deadlock on upgrade.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:          db,
		path:        dbPath,
		poll:        DefaultPollInterval,
		productsHub: watch.NewHub(),
		ordersHub:   watch.NewHub(),
		messagesHub: watch.NewHub(),
		settingsHub: watch.NewHub(),
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SetPollInterval changes how often watchers poll. Zero disables polling.
func (s *Store) SetPollInterval(d time.Duration) {
	s.poll = d
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Stores returns every store interface backed by this database.
func (s *Store) Stores() driven.Stores {
	return driven.Stores{
		Products:   s.ProductStore(),
		Categories: s.CategoryStore(),
		Banners:    s.BannerStore(),
		Orders:     s.OrderStore(),
		Messages:   s.MessageStore(),
		Settings:   s.SettingsStore(),
		LoginStats: s.LoginStatStore(),
		Close:      s.Close,
	}
}

// ProductStore returns a ProductStore interface backed by this store.
func (s *Store) ProductStore() driven.ProductStore {
	return &productStore{store: s}
}

// CategoryStore returns a CategoryStore interface backed by this store.
func (s *Store) CategoryStore() driven.CategoryStore {
	return &categoryStore{store: s}
}

// BannerStore returns a BannerStore interface backed by this store.
func (s *Store) BannerStore() driven.BannerStore {
	return &bannerStore{store: s}
}

// OrderStore returns an OrderStore interface backed by this store.
func (s *Store) OrderStore() driven.OrderStore {
	return &orderStore{store: s}
}

// MessageStore returns a MessageStore interface backed by this store.
func (s *Store) MessageStore() driven.MessageStore {
	return &messageStore{store: s}
}

// SettingsStore returns a SettingsStore interface backed by this store.
func (s *Store) SettingsStore() driven.SettingsStore {
	return &settingsStore{store: s, now: time.Now}
}

// LoginStatStore returns a LoginStatStore interface backed by this store.
func (s *Store) LoginStatStore() driven.LoginStatStore {
	return &loginStatStore{store: s, now: time.Now}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_catalog.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// schemaVersion returns the highest applied migration.
func (s *Store) schemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getBody loads and decodes the JSON body of one row.
func getBody(ctx context.Context, q querier, table, idCol, id string, v any) error {
	var body string
	//nolint:gosec // G201: table and column names are constants.
	query := fmt.Sprintf("SELECT body FROM %s WHERE %s = ?", table, idCol)
	if err := q.QueryRowContext(ctx, query, id).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("unmarshaling %s body: %w", table, err)
	}
	return nil
}

// scanBodies decodes a result set of JSON bodies.
func scanBodies[T any](rows *sql.Rows) ([]T, error) {
	defer rows.Close()
	result := make([]T, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var v T
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, fmt.Errorf("unmarshaling row: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// deleteByID removes one row and maps a missing row to domain.ErrNotFound.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	//nolint:gosec // G201: table name is a constant.
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
