package maintenance

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Store is the persistence port for the maintenance record. Load reports
// ok=false when no record has been persisted yet; implementations return an
// error for unreadable or corrupt state and leave the recovery policy to the
// tracker.
type Store interface {
	Load() (rec Record, ok bool, err error)
	Save(rec Record) error
}

// FileStore persists the maintenance record as a single JSON document.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read maintenance state: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode maintenance state: %w", err)
	}

	return rec, true, nil
}

func (s *FileStore) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode maintenance state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write maintenance state: %w", err)
	}

	return nil
}
