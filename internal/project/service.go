// Package project reads and writes the per-project metadata records OpenCode
// keeps under storage/project.
package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/opencode-sync/internal/storage"
	"github.com/opencode-ai/opencode-sync/pkg/types"
)

// dir is the storage prefix for project records.
const dir = "project"

// ErrInvalidID is returned for IDs that cannot be used as a file name.
var ErrInvalidID = errors.New("invalid project id")

// ScanError describes a project file that could not be read or decoded.
type ScanError struct {
	File string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Service manages project records in a storage root.
type Service struct {
	store *storage.Storage
}

// NewService creates a new project service.
func NewService(store *storage.Storage) *Service {
	return &Service{store: store}
}

// Dir returns the directory holding the project records.
func (s *Service) Dir() string {
	return filepath.Join(s.store.BasePath(), dir)
}

// DirExists reports whether the project directory exists.
func (s *Service) DirExists(ctx context.Context) bool {
	return s.store.DirExists(ctx, []string{dir})
}

// EnsureDir creates the project directory if needed.
func (s *Service) EnsureDir(ctx context.Context) error {
	return s.store.EnsureDir(ctx, []string{dir})
}

// FilePath returns the file backing a project record.
func (s *Service) FilePath(id string) string {
	return s.store.FilePath([]string{dir, id})
}

// List returns every project record that decodes and carries a usable id,
// in file name order. Other files are reported in the second return value
// and otherwise ignored.
func (s *Service) List(ctx context.Context) ([]types.Project, []*ScanError, error) {
	projects := []types.Project{}
	var failed []*ScanError

	err := s.store.Scan(ctx, []string{dir}, func(key string, data json.RawMessage, err error) error {
		file := key + ".json"
		if err != nil {
			failed = append(failed, &ScanError{File: file, Err: err})
			return nil
		}

		var p types.Project
		if err := json.Unmarshal(data, &p); err != nil {
			failed = append(failed, &ScanError{File: file, Err: err})
			return nil
		}
		if err := ValidateID(p.ID); err != nil {
			failed = append(failed, &ScanError{File: file, Err: err})
			return nil
		}
		projects = append(projects, p)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return projects, failed, nil
}

// Exists reports whether a record for id is already stored.
func (s *Service) Exists(ctx context.Context, id string) bool {
	return s.store.Exists(ctx, []string{dir, id})
}

// Get loads a single project record.
func (s *Service) Get(ctx context.Context, id string) (*types.Project, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var p types.Project
	if err := s.store.Get(ctx, []string{dir, id}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetRaw returns the stored bytes of a project record.
func (s *Service) GetRaw(ctx context.Context, id string) ([]byte, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return s.store.GetRaw(ctx, []string{dir, id})
}

// Save writes a project record, replacing any existing file.
func (s *Service) Save(ctx context.Context, p *types.Project) error {
	if err := ValidateID(p.ID); err != nil {
		return err
	}
	return s.store.Put(ctx, []string{dir, p.ID}, p)
}

// ValidateID rejects IDs that would escape the project directory.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	}
	return nil
}
