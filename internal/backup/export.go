// Package backup exports OpenCode project metadata to a single JSON document
// and imports it back into a storage root.
//
// Session and conversation data is never included. Browser localStorage
// cannot be read or written from here; both directions print console
// snippets for the user to run instead.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/opencode-ai/opencode-sync/internal/config"
	"github.com/opencode-ai/opencode-sync/internal/logging"
	"github.com/opencode-ai/opencode-sync/internal/project"
	"github.com/opencode-ai/opencode-sync/internal/report"
	"github.com/opencode-ai/opencode-sync/internal/storage"
	"github.com/opencode-ai/opencode-sync/pkg/types"
)

// Exporter writes every stored project record into an ExportDocument.
type Exporter struct {
	paths    *config.Paths
	projects *project.Service
	stdout   io.Writer
	report   *report.Reporter

	// Now returns the export timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates an exporter reading from paths.Storage. The JSON
// document goes to stdout unless an output file is given; status lines go
// to stderr.
func NewExporter(paths *config.Paths, stdout, stderr io.Writer) *Exporter {
	return &Exporter{
		paths:    paths,
		projects: project.NewService(storage.New(paths.Storage)),
		stdout:   stdout,
		report:   report.New(stderr, ""),
		Now:      time.Now,
	}
}

// Export builds the document and writes it to outputPath, or to stdout when
// outputPath is empty. Unreadable project files are skipped with a warning.
func (e *Exporter) Export(ctx context.Context, outputPath string) (*types.ExportDocument, error) {
	r := e.report

	r.Infof("OpenCode Project Export Tool")
	r.Blank()
	r.Infof("Storage path: %s", e.paths.Storage)
	r.Blank()

	if info, err := os.Stat(e.paths.Storage); err != nil || !info.IsDir() {
		r.Errorf("Storage directory not found!")
		r.Infof("Make sure OpenCode has been run at least once.")
		return nil, fmt.Errorf("%w: %s", ErrStorageNotFound, e.paths.Storage)
	}

	r.Infof("Reading projects...")
	projects, err := e.listProjects(ctx)
	if err != nil {
		return nil, err
	}

	r.Donef("Found %d project(s)", len(projects))
	r.Blank()
	for _, p := range projects {
		details := []string{"Worktree: " + p.Worktree}
		if len(p.Sandboxes) > 0 {
			details = append(details, fmt.Sprintf("Sandboxes: %d", len(p.Sandboxes)))
		}
		r.Item(p.DisplayName(), details...)
	}

	doc := &types.ExportDocument{
		Version:    types.ExportVersion,
		ExportedAt: e.Now().UnixMilli(),
		Projects:   projects,
	}

	r.Blank()
	r.Warnf("Browser localStorage cannot be exported from this tool")
	r.Infof("To export localStorage, run this in your browser console (F12):")
	r.Block(captureScript)

	data, err := storage.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	if outputPath != "" {
		if err := writeFile(outputPath, data); err != nil {
			return nil, err
		}
		r.Blank()
		r.Donef("Exported to: %s", outputPath)
	} else {
		if _, err := fmt.Fprintln(e.stdout, string(data)); err != nil {
			return nil, fmt.Errorf("failed to write export: %w", err)
		}
	}

	logging.Info().
		Int("projects", len(projects)).
		Str("output", outputPath).
		Msg("export finished")

	r.Blank()
	r.Donef("Export complete!")
	r.Blank()
	r.Infof("To import on another machine:")
	r.Infof("   opencode-import projects-backup.json")

	return doc, nil
}

func (e *Exporter) listProjects(ctx context.Context) ([]types.Project, error) {
	if !e.projects.DirExists(ctx) {
		e.report.Errorf("Project directory not found: %s", e.projects.Dir())
		return []types.Project{}, nil
	}

	projects, failed, err := e.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	for _, f := range failed {
		e.report.Warnf("Failed to read project file: %s (%v)", f.File, f.Err)
		logging.Warn().Err(f.Err).Str("file", f.File).Msg("skipping unreadable project file")
	}

	return projects, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
