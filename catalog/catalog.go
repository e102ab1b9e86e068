/*
File   : proofcheck/catalog/catalog.go
Package: catalog
*/

// Package catalog is a collaborator-side cache of theorem library source
// files, keyed by name, each stored with a content hash of its text. It
// stores source text only, not parsed theorem tables, and `import` never
// consults it. It owns a *gorm.DB over a SQLite file
// and is the one place in this repository with state that outlives a
// single verification call (§5). Nothing in the core (lexer, parser, ast,
// smt, verify) imports this package; only cmd/proofcheck's `library`
// subcommand touches it.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Get and Remove when no entry with the given
// name exists.
var ErrNotFound = errors.New("catalog: entry not found")

// Entry is one cached theorem library: its name (as used in `library add
// <name> <file>`), the source text, and its content hash (so a caller can
// tell whether a re-added file actually changed without re-parsing it).
type Entry struct {
	ID        uint `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Hash      string
	Source    string
	UpdatedAt time.Time
}

// Store is a handle to the catalog database. A Store is safe to share
// across a single CLI process but is never held across separate HTTP
// requests (the HTTP collaborator doesn't use it at all, per §6).
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) the SQLite file at path and migrates
// the Entry schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Put stores source under name, replacing any existing entry of the same
// name. It returns the content hash so the caller can report whether the
// text actually changed.
func (s *Store) Put(name, source string) (string, error) {
	sum := sha256.Sum256([]byte(source))
	hash := hex.EncodeToString(sum[:])

	entry := Entry{Name: name, Hash: hash, Source: source, UpdatedAt: time.Now()}
	result := s.db.Where(Entry{Name: name}).Assign(Entry{Hash: hash, Source: source, UpdatedAt: entry.UpdatedAt}).FirstOrCreate(&entry)
	return hash, result.Error
}

// Get returns the cached source for name, or ErrNotFound if no such entry
// exists.
func (s *Store) Get(name string) (Entry, error) {
	var entry Entry
	err := s.db.Where("name = ?", name).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every cached entry, ordered by name.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	if err := s.db.Order("name").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove deletes the entry named name. It reports ErrNotFound if no such
// entry exists.
func (s *Store) Remove(name string) error {
	result := s.db.Where("name = ?", name).Delete(&Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
