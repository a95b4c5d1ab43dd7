// Package manifest owns the CSV-backed table of path records: loading,
// validation, id assignment, name derivation, and atomic rewrites.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"go/token"
	"path/filepath"
	"strconv"

	"path-chronicle/internal/filesystem"
	"path-chronicle/internal/models"
)

// header is the fixed column order of the manifest CSV.
var header = []string{"id", "name", "path", "description"}

// Store owns a single manifest CSV file. Every mutation rewrites the whole
// file through a temp file and an atomic rename, so a failed write leaves
// the previous manifest intact.
type Store struct {
	fs   filesystem.FileSystem
	path string
}

// NewStore creates a Store for the manifest file at path. The file does not
// need to exist yet; reads treat a missing file as an empty manifest.
func NewStore(fs filesystem.FileSystem, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the manifest file location.
func (s *Store) Path() string {
	return s.path
}

// List returns all records in stored order. A missing manifest yields an
// empty slice.
func (s *Store) List() ([]models.PathRecord, error) {
	return s.load()
}

// Add derives a name for relPath, assigns the next id, appends the record,
// and persists the manifest. The relative path must not already be
// registered.
func (s *Store) Add(relPath, description string) (*models.PathRecord, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(records))
	maxID := 0
	for _, r := range records {
		if r.Path == relPath {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, relPath)
		}
		taken[r.Name] = struct{}{}
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	name, err := DeriveName(relPath, taken)
	if err != nil {
		return nil, err
	}

	record := models.NewPathRecord(maxID+1, name, relPath, description)
	records = append(records, *record)

	if err := s.save(records, nil); err != nil {
		return nil, err
	}

	return record, nil
}

// Remove deletes the single record matching criterion and rewrites the
// manifest. Remaining records keep their ids.
//
// When preCommit is non-nil it runs after the new manifest has been fully
// serialized but before it replaces the old one; returning an error aborts
// the removal with the on-disk manifest untouched. The remove command uses
// this to couple filesystem deletion to the manifest rewrite.
func (s *Store) Remove(criterion Criterion, preCommit func(models.PathRecord) error) (*models.PathRecord, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	var matched *models.PathRecord
	remaining := make([]models.PathRecord, 0, len(records))
	for _, r := range records {
		if criterion.Matches(r) {
			if matched != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousMatch, criterion)
			}
			record := r
			matched = &record
			continue
		}
		remaining = append(remaining, r)
	}

	if matched == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, criterion)
	}

	hook := func() error {
		if preCommit == nil {
			return nil
		}
		return preCommit(*matched)
	}

	if err := s.save(remaining, hook); err != nil {
		return nil, err
	}

	return matched, nil
}

// load reads and validates the manifest. A missing or empty file is an empty
// manifest; anything violating the invariants is ErrManifestCorrupt.
func (s *Store) load() ([]models.PathRecord, error) {
	if !s.fs.Exists(s.path) {
		return []models.PathRecord{}, nil
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return []models.PathRecord{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestCorrupt, err)
	}
	if len(rows) == 0 {
		return []models.PathRecord{}, nil
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]models.PathRecord, 0, len(rows)-1)
	seenIDs := make(map[int]struct{})
	seenNames := make(map[string]struct{})
	seenPaths := make(map[string]struct{})

	for _, row := range rows[1:] {
		record, err := parseRow(row)
		if err != nil {
			return nil, err
		}

		if _, dup := seenIDs[record.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrManifestCorrupt, record.ID)
		}
		if _, dup := seenNames[record.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrManifestCorrupt, record.Name)
		}
		if _, dup := seenPaths[record.Path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrManifestCorrupt, record.Path)
		}
		seenIDs[record.ID] = struct{}{}
		seenNames[record.Name] = struct{}{}
		seenPaths[record.Path] = struct{}{}

		records = append(records, record)
	}

	return records, nil
}

// save serializes records, runs the commit hook, and atomically replaces the
// manifest file. The hook failing discards the staged file.
func (s *Store) save(records []models.PathRecord, hook func() error) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to serialize manifest header: %w", err)
	}
	for _, r := range records {
		row := []string{strconv.Itoa(r.ID), r.Name, r.Path, r.Description}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to serialize manifest row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := s.fs.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to stage manifest: %w", err)
	}

	if hook != nil {
		if err := hook(); err != nil {
			_ = s.fs.Remove(tmpPath)
			return err
		}
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to commit manifest: %w", err)
	}

	return nil
}

func checkHeader(row []string) error {
	if len(row) != len(header) {
		return fmt.Errorf("%w: expected header %v, got %v", ErrManifestCorrupt, header, row)
	}
	for i, column := range header {
		if row[i] != column {
			return fmt.Errorf("%w: expected header %v, got %v", ErrManifestCorrupt, header, row)
		}
	}
	return nil
}

func parseRow(row []string) (models.PathRecord, error) {
	if len(row) != len(header) {
		return models.PathRecord{}, fmt.Errorf("%w: row %v has %d columns", ErrManifestCorrupt, row, len(row))
	}

	id, err := strconv.Atoi(row[0])
	if err != nil || id <= 0 {
		return models.PathRecord{}, fmt.Errorf("%w: invalid id %q", ErrManifestCorrupt, row[0])
	}

	name := row[1]
	if !token.IsIdentifier(name) {
		return models.PathRecord{}, fmt.Errorf("%w: invalid name %q", ErrManifestCorrupt, name)
	}

	path := row[2]
	if path == "" {
		return models.PathRecord{}, fmt.Errorf("%w: empty path for record %d", ErrManifestCorrupt, id)
	}

	return models.PathRecord{ID: id, Name: name, Path: path, Description: row[3]}, nil
}
