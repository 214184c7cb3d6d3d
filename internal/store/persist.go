package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoRecord is returned by Persister.Load when nothing has been saved yet.
var ErrNoRecord = errors.New("no persisted record")

// Persister loads and saves the memory record.
type Persister interface {
	Load() (Record, error)
	Save(Record) error
}

// FileStore persists the record as indented JSON at Path.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads and decodes the file. A missing file yields ErrNoRecord.
func (f *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNoRecord
		}
		return Record{}, fmt.Errorf("failed to read memory file: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse memory file: %w", err)
	}
	return rec, nil
}

// Save encodes rec and overwrites the file.
func (f *FileStore) Save(rec Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode memory: %w", err)
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create memory directory: %w", err)
		}
	}
	if err := os.WriteFile(f.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	return nil
}

// InMemory is a Persister that keeps the last saved record in process.
// Tests use it in place of a FileStore.
type InMemory struct {
	rec   *Record
	Saves int
	Err   error // returned from Save when set
}

// NewInMemory returns an empty InMemory persister.
func NewInMemory() *InMemory { return &InMemory{} }

// Load returns the last saved record, or ErrNoRecord.
func (p *InMemory) Load() (Record, error) {
	if p.rec == nil {
		return Record{}, ErrNoRecord
	}
	return p.rec.clone(), nil
}

// Save keeps a copy of rec.
func (p *InMemory) Save(rec Record) error {
	if p.Err != nil {
		return p.Err
	}
	c := rec.clone()
	p.rec = &c
	p.Saves++
	return nil
}
