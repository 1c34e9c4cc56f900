package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrDeviceNotFound is returned when a device has no storage file yet.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrCorruptDevice is returned by OpenExisting when the device file is not
	// a JSON object.
	ErrCorruptDevice = errors.New("device file is corrupt")
)

// KV is the durable key-value storage the store persists into. Values are
// JSON documents.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
}

// MemKV keeps values in memory. It is used in tests and as a fallback when
// the file store cannot be opened.
type MemKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string][]byte)}
}

func (m *MemKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// FileKV stores every key of one device in a single JSON object on disk.
// Each Set rewrites the file atomically.
type FileKV struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// OpenFile opens (or prepares to create) the device file at path. A file that
// is not a JSON object is moved aside to path+".corrupt" and the store starts
// empty.
func OpenFile(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	kv := &FileKV{path: path, values: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return kv, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &kv.values); err != nil || kv.values == nil {
		kv.values = make(map[string]json.RawMessage)
		if err := os.Rename(path, path+".corrupt"); err != nil {
			return nil, fmt.Errorf("move aside corrupt %s: %w", path, err)
		}
	}
	return kv, nil
}

// OpenExisting opens a device file that must already exist. The file is only
// read: a corrupt file is reported as ErrCorruptDevice and left in place.
func OpenExisting(path string) (*FileKV, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, ErrDeviceNotFound
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	kv := &FileKV{path: path}
	if err := json.Unmarshal(data, &kv.values); err != nil || kv.values == nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptDevice, path)
	}
	return kv, nil
}

// Path returns the file backing the store.
func (f *FileKV) Path() string {
	return f.path
}

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (f *FileKV) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %q: value is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = append(json.RawMessage(nil), value...)
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// flush writes the whole object to a temp file and renames it into place.
// Caller holds f.mu.
func (f *FileKV) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".omega-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// DevicePath maps a device name to its storage file under dataDir. Bytes
// outside [A-Za-z0-9_-] are written as %XX, so distinct names get distinct
// files and no name can escape the directory. The empty name maps to "%",
// which no encoding produces.
func DevicePath(dataDir, device string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(device); i++ {
		c := device[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	name := b.String()
	if name == "" {
		name = "%"
	}
	return filepath.Join(dataDir, "devices", name+".json")
}
