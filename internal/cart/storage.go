package cart

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned by Storage.Load for absent keys.
var ErrNotFound = errors.New("cart snapshot not found")

// Storage is a durable byte store for cart snapshots. Implementations may
// honour ttl natively; the snapshot carries its own expiry either way.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Available(ctx context.Context) bool
}

// StorageKey returns the key for a tenant's cart, or for one session's cart
// when sessionID is set.
func StorageKey(storeID, sessionID string) string {
	if sessionID == "" {
		return StorageKeyPrefix + ":" + storeID
	}
	return StorageKeyPrefix + ":" + storeID + ":" + sessionID
}

// MemoryStorage keeps snapshots in process memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.data...), nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStorage) Available(context.Context) bool { return true }

// FileStorage writes one JSON file per key under a directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// keys contain ':' which is not portable in file names
func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, url.QueryEscape(key)+".json")
}

func (f *FileStorage) Save(_ context.Context, key string, data []byte, _ time.Duration) error {
	tmp, err := os.CreateTemp(f.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *FileStorage) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (f *FileStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStorage) Keys(_ context.Context, prefix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, url.QueryEscape(prefix)+"*.json"))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		key, err := url.QueryUnescape(strings.TrimSuffix(filepath.Base(m), ".json"))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Available probes the directory with a write, read and delete.
func (f *FileStorage) Available(context.Context) bool {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(f.dir, ".storage_test")
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return false
	}
	defer os.Remove(probe)
	got, err := os.ReadFile(probe)
	return err == nil && string(got) == "test"
}
