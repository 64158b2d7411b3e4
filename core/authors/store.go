package authors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/sirupsen/logrus"
)

// Store owns the mapping file. Readers get copies, so an update never
// changes a mapping that an aggregation is already using.
type Store struct {
	sync.RWMutex
	path    string
	mapping *Mapping
	logger  *logrus.Logger
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path, logger: contract.Logger()}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current mapping, loading it on first use.
// A missing file is created with the default table. An unreadable or corrupt
// file is logged and the default table is used in its place.
func (s *Store) Snapshot() Mapping {
	s.RLock()
	if s.mapping != nil {
		defer s.RUnlock()
		return s.mapping.Clone()
	}
	s.RUnlock()

	s.Lock()
	defer s.Unlock()
	if s.mapping == nil {
		loaded := s.load()
		s.mapping = &loaded
	}
	return s.mapping.Clone()
}

// Resolver builds a resolver over the current snapshot.
func (s *Store) Resolver() *Resolver {
	return NewResolver(s.Snapshot())
}

// load reads the mapping file. Callers hold the write lock.
func (s *Store) load() Mapping {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		def := DefaultMapping()
		if err := s.save(def); err != nil {
			s.logger.WithError(err).WithField("path", s.path).Warn("Failed to write default author mapping")
		}
		return def
	}
	if err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("Failed to read author mapping, using defaults")
		return DefaultMapping()
	}
	m, err := ParseMapping(data)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("Failed to parse author mapping, using defaults")
		return DefaultMapping()
	}
	return m
}

// save writes the mapping file. Callers hold the write lock.
func (s *Store) save(m Mapping) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create mapping directory: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode author mapping: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write author mapping: %w", err)
	}
	return nil
}

// Update validates raw JSON and replaces the whole table. On any error the
// previous table is kept.
func (s *Store) Update(raw []byte) error {
	m, err := ParseMapping(raw)
	if err != nil {
		return err
	}
	return s.Replace(m)
}

// Replace persists m and makes it the current table.
func (s *Store) Replace(m Mapping) error {
	s.Lock()
	defer s.Unlock()
	if err := s.save(m); err != nil {
		return err
	}
	clone := m.Clone()
	s.mapping = &clone
	return nil
}

// AddAuthor adds or replaces one canonical author. An empty color picks the
// palette entry for the current table size.
func (s *Store) AddAuthor(name string, emails []string, color string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, contract.NewInvalidMappingError("", "author names must be non-empty")
	}
	if color != "" {
		if err := ValidateColor(color); err != nil {
			return Entry{}, contract.NewInvalidMappingError(name, err.Error())
		}
	}

	cleaned := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			cleaned = append(cleaned, e)
		}
	}

	s.Lock()
	defer s.Unlock()
	if s.mapping == nil {
		loaded := s.load()
		s.mapping = &loaded
	}
	current := s.mapping.Clone()
	if color == "" {
		color = PaletteColor(current.Len())
	}
	entry := Entry{Emails: cleaned, Color: color}
	current.Set(name, entry)
	if err := s.save(current); err != nil {
		return Entry{}, err
	}
	s.mapping = &current
	return entry, nil
}

// Invalidate drops the loaded table so the next Snapshot rereads the file.
func (s *Store) Invalidate() {
	s.Lock()
	defer s.Unlock()
	s.mapping = nil
}
