// Package localstore is device-local key/value storage, kept in a TOML file
// (default ~/.config/rigbudget/local.toml). It holds the preferences and
// tokens that have no server counterpart.
package localstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

// Well-known keys.
const (
	KeyCurrency     = "currency"
	KeySessionToken = "session_token"
	KeySessionID    = "session_id"
)

const defaultPath = "~/.config/rigbudget/local.toml"

// DefaultPath returns the default storage file path.
func DefaultPath() string {
	return defaultPath
}

// File is a key/value store persisted to a TOML file. Every Set rewrites the
// whole file. Values never expire and are not encrypted.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the store at path, creating nothing until the first Set.
// A missing or unreadable file yields an empty store. A file that cannot be
// parsed is renamed to path+".bak" first, so the next Set does not destroy it.
func Open(path string) (*File, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	f := &File{path: resolved, values: map[string]string{}}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		slog.Warn("Local storage unreadable, starting empty", "path", resolved, "error", err)
		return f, nil
	}
	if err := toml.Unmarshal(data, &f.values); err != nil {
		f.values = map[string]string{}
		backup := resolved + ".bak"
		if rerr := os.Rename(resolved, backup); rerr != nil {
			slog.Warn("Local storage corrupt, starting empty", "path", resolved, "error", err, "backup_error", rerr)
			return f, nil
		}
		slog.Warn("Local storage corrupt, moved aside", "path", resolved, "backup", backup, "error", err)
	}
	return f, nil
}

// Path returns the resolved file path.
func (f *File) Path() string { return f.path }

// Get returns the value for key. Empty values count as absent.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok && v != ""
}

// Set stores value under key and writes the file. An empty value deletes the key.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if value == "" {
		delete(f.values, key)
	} else {
		f.values[key] = value
	}
	return f.save()
}

// save must be called with f.mu held.
func (f *File) save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	data, err := toml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}

// SessionID returns the anonymous session ID stored in f, creating and
// persisting a new one on first use.
func SessionID(f *File) (string, error) {
	if id, ok := f.Get(KeySessionID); ok {
		return id, nil
	}
	id := NewSessionID()
	if err := f.Set(KeySessionID, id); err != nil {
		return id, err
	}
	return id, nil
}

// NewSessionID generates an anonymous session ID of the form
// checklist_<unix millis>_<random>.
func NewSessionID() string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("checklist_%d_%s", time.Now().UnixMilli(), random)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
