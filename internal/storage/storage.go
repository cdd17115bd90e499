// Package storage provides file-based JSON storage laid out the way OpenCode
// keeps it: one pretty-printed <key>.json file per record.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	ErrNotFound = errors.New("not found")
)

// Storage provides file-based JSON storage.
type Storage struct {
	basePath string
	mu       sync.Mutex
	locks    map[string]*FileLock
}

// New creates a new Storage instance.
func New(basePath string) *Storage {
	return &Storage{
		basePath: basePath,
		locks:    make(map[string]*FileLock),
	}
}

// BasePath returns the storage root.
func (s *Storage) BasePath() string {
	return s.basePath
}

// pathToFile converts a path slice to a file path.
func (s *Storage) pathToFile(path []string) string {
	parts := append([]string{s.basePath}, path...)
	return filepath.Join(parts...) + ".json"
}

// pathToDir converts a path slice to a directory path.
func (s *Storage) pathToDir(path []string) string {
	parts := append([]string{s.basePath}, path...)
	return filepath.Join(parts...)
}

// FilePath returns the file backing a key.
func (s *Storage) FilePath(path []string) string {
	return s.pathToFile(path)
}

// Marshal encodes v exactly as Put writes it: two-space indent, no
// trailing newline, and &, < and > left unescaped.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Get retrieves a value from storage.
func (s *Storage) Get(ctx context.Context, path []string, v any) error {
	data, err := s.GetRaw(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal: %w", err)
	}

	return nil
}

// GetRaw returns the stored bytes without decoding them.
func (s *Storage) GetRaw(ctx context.Context, path []string) ([]byte, error) {
	data, err := os.ReadFile(s.pathToFile(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Put stores a value in storage with file locking.
func (s *Storage) Put(ctx context.Context, path []string, v any) error {
	filePath := s.pathToFile(path)

	// Ensure directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock := s.getLock(filePath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()

	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	// Write to temp file first, then rename (atomic operation)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// EnsureDir creates the directory for a path (and parents) if missing.
func (s *Storage) EnsureDir(ctx context.Context, path []string) error {
	if err := os.MkdirAll(s.pathToDir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// DirExists reports whether the directory for a path exists.
func (s *Storage) DirExists(ctx context.Context, path []string) bool {
	info, err := os.Stat(s.pathToDir(path))
	return err == nil && info.IsDir()
}

// Exists checks if a path exists.
func (s *Storage) Exists(ctx context.Context, path []string) bool {
	_, err := os.Stat(s.pathToFile(path))
	return err == nil
}

// ScanFunc receives each stored item during Scan. err is set when the file
// matched but could not be read; data is nil in that case.
type ScanFunc func(key string, data json.RawMessage, err error) error

// Scan iterates over the *.json files directly under a path, in lexical
// order. Subdirectories are not descended into. A missing directory yields
// nothing. Scan stops at the first error returned by fn.
func (s *Storage) Scan(ctx context.Context, path []string, fn ScanFunc) error {
	dirPath := s.pathToDir(path)

	matches, err := doublestar.Glob(os.DirFS(dirPath), "*.json", doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}

	for _, name := range matches {
		key := strings.TrimSuffix(name, ".json")

		data, err := os.ReadFile(filepath.Join(dirPath, name))
		if err != nil {
			if err := fn(key, nil, fmt.Errorf("failed to read file: %w", err)); err != nil {
				return err
			}
			continue
		}

		if err := fn(key, json.RawMessage(data), nil); err != nil {
			return err
		}
	}

	return nil
}

// getLock returns a file lock for a path.
func (s *Storage) getLock(filePath string) *FileLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[filePath]
	if !ok {
		lock = NewFileLock(filePath)
		s.locks[filePath] = lock
	}

	return lock
}
