package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-secure-notepad/internal/logger"
)

var _ PersistentStore = (*fileStore)(nil)

// fileStore keeps all entries in one JSON document. Each write replaces the
// document through a temp file and a rename, so a crash leaves either the old
// or the new document on disk.
type fileStore struct {
	path   string
	logger *logger.Logger

	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

type filePersistedState struct {
	Entries   map[string]string `json:"entries"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewFileStore opens the JSON document at path, creating it on first write.
func NewFileStore(path string, log *logger.Logger) (PersistentStore, error) {
	s := &fileStore{
		path:   path,
		logger: log,
		items:  make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *fileStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *fileStore) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	next := maps.Clone(s.items)
	maps.Copy(next, entries)
	if err := s.persist(next); err != nil {
		return err
	}
	s.items = next

	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	next := make(map[string]string)
	if err := s.persist(next); err != nil {
		return err
	}
	s.items = next

	return nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}

	if st.Entries != nil {
		s.items = st.Entries
	}

	return nil
}

func (s *fileStore) persist(items map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create local storage dir: %w", err)
	}

	payload, err := json.MarshalIndent(filePersistedState{Entries: items, UpdatedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err = tmp.Write(payload); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.logger.Err(err).Str("func", "fileStore.persist").Msg("failed to write temp storage file")
		return fmt.Errorf("write local storage file: %w", err)
	}

	if err = os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod local storage file: %w", err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		s.logger.Err(err).Str("func", "fileStore.persist").Msg("failed to replace storage file")
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}
