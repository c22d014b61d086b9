package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"starred-catalog/internal/common"
	"starred-catalog/internal/domain"
)

// DefaultPath is where the catalog is written unless overridden.
const DefaultPath = "repos.json"

// JSONStore implements port.CatalogStore as a single JSON array file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store writing to path.
func NewJSONStore(path string) *JSONStore {
	if path == "" {
		path = DefaultPath
	}
	return &JSONStore{path: path}
}

// Path returns the destination file.
func (s *JSONStore) Path() string {
	return s.path
}

// Save replaces the destination with records. The data goes to a temporary
// file in the same directory first, so the old file survives a failed write.
func (s *JSONStore) Save(records []*domain.RepoRecord) error {
	data, err := Encode(records)
	if err != nil {
		return common.WrapError(common.ErrCodeStorage, "encode catalog", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".repos-*.json")
	if err != nil {
		return common.WrapError(common.ErrCodeStorage, "create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return common.WrapError(common.ErrCodeStorage, "write catalog", err)
	}
	if err := tmp.Close(); err != nil {
		return common.WrapError(common.ErrCodeStorage, "close catalog", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return common.WrapError(common.ErrCodeStorage, "chmod catalog", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return common.WrapError(common.ErrCodeStorage, "replace catalog", err)
	}
	return nil
}

// Load reads a previously written catalog.
func (s *JSONStore) Load() ([]*domain.RepoRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeStorage, "read catalog", err)
	}
	var records []*domain.RepoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, common.WrapError(common.ErrCodeStorage, "decode catalog", err)
	}
	return records, nil
}

// Encode renders records as an indented JSON array. Non-ASCII text and
// HTML-sensitive characters are written as-is.
func Encode(records []*domain.RepoRecord) ([]byte, error) {
	if records == nil {
		records = []*domain.RepoRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
