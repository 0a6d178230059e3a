package siteconfig

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested revision does not exist.
var ErrNotFound = errors.New("site config revision not found")

// Revision is one saved version of the site configuration.
type Revision struct {
	ID        int64
	CreatedAt time.Time
	Config    SiteConfig
}

// Store wraps a SQLite database holding the revision history of the site
// configuration. Revisions are append-only.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while the CLI imports; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS site_config (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    logo TEXT NOT NULL,
    permalinks TEXT NOT NULL,
    cover TEXT NOT NULL,
    posts_per_page INTEGER NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS site_navigation (
    config_id INTEGER NOT NULL REFERENCES site_config(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    url TEXT NOT NULL,
    PRIMARY KEY (config_id, position)
);
`)
	return err
}

// Save validates cfg and stores it as a new revision.
func (s *Store) Save(cfg SiteConfig) (Revision, error) {
	if err := Validate(cfg); err != nil {
		return Revision{}, err
	}
	now := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.Begin()
	if err != nil {
		return Revision{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO site_config (title, description, logo, permalinks, cover, posts_per_page, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cfg.Title, cfg.Description, cfg.Logo, cfg.Permalinks, cfg.Cover, cfg.PostsPerPage, now.Format(time.RFC3339))
	if err != nil {
		return Revision{}, fmt.Errorf("insert config: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Revision{}, err
	}
	for i, item := range cfg.Navigation {
		if _, err := tx.Exec(`INSERT INTO site_navigation (config_id, position, label, url) VALUES (?, ?, ?, ?)`,
			id, i, item.Label, item.URL); err != nil {
			return Revision{}, fmt.Errorf("insert navigation: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("commit: %w", err)
	}
	return Revision{ID: id, CreatedAt: now, Config: cfg.Clone()}, nil
}

// Latest returns the most recently saved revision.
func (s *Store) Latest() (Revision, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM site_config ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrNotFound
	}
	if err != nil {
		return Revision{}, err
	}
	return s.Get(id)
}

// Get returns a revision by id.
func (s *Store) Get(id int64) (Revision, error) {
	var (
		rev       Revision
		createdAt string
	)
	err := s.db.QueryRow(`SELECT id, title, description, logo, permalinks, cover, posts_per_page, created_at FROM site_config WHERE id = ?`, id).
		Scan(&rev.ID, &rev.Config.Title, &rev.Config.Description, &rev.Config.Logo, &rev.Config.Permalinks, &rev.Config.Cover, &rev.Config.PostsPerPage, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrNotFound
	}
	if err != nil {
		return Revision{}, err
	}
	if rev.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Revision{}, fmt.Errorf("parse created_at: %w", err)
	}
	nav, err := s.navigation(id)
	if err != nil {
		return Revision{}, err
	}
	rev.Config.Navigation = nav
	return rev, nil
}

func (s *Store) navigation(id int64) ([]NavItem, error) {
	rows, err := s.db.Query(`SELECT label, url FROM site_navigation WHERE config_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nav []NavItem
	for rows.Next() {
		var item NavItem
		if err := rows.Scan(&item.Label, &item.URL); err != nil {
			return nil, err
		}
		nav = append(nav, item)
	}
	return nav, rows.Err()
}

// List returns every revision, newest first.
func (s *Store) List() ([]Revision, error) {
	rows, err := s.db.Query(`SELECT id FROM site_config ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	revs := make([]Revision, 0, len(ids))
	for _, id := range ids {
		rev, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	return revs, nil
}
