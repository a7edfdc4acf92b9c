package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// Durable storage entry keys.
const (
	KeyToken = "token"
	KeyRole  = "role"
)

// Storage persists the session across process restarts.
// Load must read token and role in one operation so a half-written pair is never observed.
// Implementations must be safe for concurrent use.
type Storage interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// FromEntries builds a session from raw storage entries.
// A missing or empty entry on either side yields the unauthenticated session.
func FromEntries(token, role string) Session {
	if token == "" || role == "" {
		return Session{}
	}
	return Session{Token: token, Role: Role(role)}
}

// MemoryStorage keeps the two entries in a map. Useful for tests and ephemeral runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStorage creates a storage optionally pre-populated with entries.
func NewMemoryStorage(entries map[string]string) *MemoryStorage {
	m := make(map[string]string, 2)
	maps.Copy(m, entries)
	return &MemoryStorage{entries: m}
}

func (m *MemoryStorage) Load(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FromEntries(m.entries[KeyToken], m.entries[KeyRole]), nil
}

func (m *MemoryStorage) Save(ctx context.Context, s Session) error {
	if !s.valid() {
		return ErrIncompleteSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]string, 2)
	}
	m.entries[KeyToken] = s.Token
	m.entries[KeyRole] = string(s.Role)
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, KeyToken)
	delete(m.entries, KeyRole)
	return nil
}

// Entries returns a copy of the raw stored entries.
func (m *MemoryStorage) Entries() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.entries)
}

// FileStorage keeps the entries as a JSON object in a single file.
// Writes go through a temporary file and a rename, so readers see either the
// old pair or the new one.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file-backed storage. The file is created on first Save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file location.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load(ctx context.Context) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, errors.Join(ErrLoadSession, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return Session{}, errors.Join(ErrLoadSession, err)
	}
	return FromEntries(entries[KeyToken], entries[KeyRole]), nil
}

func (f *FileStorage) Save(ctx context.Context, s Session) error {
	if !s.valid() {
		return ErrIncompleteSession
	}

	data, err := json.Marshal(map[string]string{
		KeyToken: s.Token,
		KeyRole:  string(s.Role),
	})
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := writeFileAtomic(f.path, data); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

func (f *FileStorage) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrClearSession, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
