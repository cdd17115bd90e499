package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/opencode-ai/opencode-sync/internal/config"
	"github.com/opencode-ai/opencode-sync/internal/logging"
	"github.com/opencode-ai/opencode-sync/internal/project"
	"github.com/opencode-ai/opencode-sync/internal/report"
	"github.com/opencode-ai/opencode-sync/internal/storage"
	"github.com/opencode-ai/opencode-sync/pkg/types"
)

// ImportOptions controls how existing records are treated.
type ImportOptions struct {
	// Merge overwrites records that already exist locally. Records are
	// replaced whole; fields are never merged.
	Merge bool
	// DryRun reports what would happen without writing anything.
	DryRun bool
}

// ImportResult lists the project IDs handled by an import, in document order.
type ImportResult struct {
	Imported []string
	Skipped  []string
}

// Importer writes the projects of an ExportDocument into a storage root.
type Importer struct {
	paths    *config.Paths
	projects *project.Service
	report   *report.Reporter

	// Now returns the time stamped into time.updated. Defaults to time.Now.
	Now func() time.Time
}

// NewImporter creates an importer targeting paths.Storage. Status lines go to
// stderr.
func NewImporter(paths *config.Paths, stderr io.Writer) *Importer {
	return &Importer{
		paths:    paths,
		projects: project.NewService(storage.New(paths.Storage)),
		report:   report.New(stderr, ""),
		Now:      time.Now,
	}
}

// Import reads the backup at backupPath and writes each project to
// <storage>/project/<id>.json. Existing files are skipped unless
// opts.Merge is set. The backup is fully parsed before anything is written.
func (i *Importer) Import(ctx context.Context, backupPath string, opts ImportOptions) (*ImportResult, error) {
	r := i.report

	r.Infof("OpenCode Project Import Tool")
	r.Blank()

	if _, err := os.Stat(backupPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.Errorf("Backup file not found: %s", backupPath)
			return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, backupPath)
		}
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	r.Infof("Reading backup: %s", backupPath)
	doc, err := readBackup(backupPath, r)
	if err != nil {
		return nil, err
	}

	r.Infof("Backup created: %s", formatExportedAt(doc.ExportedAt))
	r.Infof("Projects in backup: %d", len(doc.Projects))
	r.Blank()

	r.Infof("Target storage: %s", i.paths.Storage)
	r.Blank()

	if !opts.DryRun {
		if err := i.projects.EnsureDir(ctx); err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		r.Infof("Importing projects (dry run, nothing will be written)...")
	} else {
		r.Infof("Importing projects...")
	}

	result, err := i.importProjects(ctx, doc.Projects, opts)
	if err != nil {
		return result, err
	}

	r.Blank()
	if opts.DryRun {
		r.Infof("Summary: %d would be imported, %d skipped", len(result.Imported), len(result.Skipped))
	} else {
		r.Infof("Summary: %d imported, %d skipped", len(result.Imported), len(result.Skipped))
	}

	if doc.LocalStorage != nil {
		if err := i.printLocalStorage(doc.LocalStorage); err != nil {
			return result, err
		}
	}

	logging.Info().
		Int("imported", len(result.Imported)).
		Int("skipped", len(result.Skipped)).
		Bool("merge", opts.Merge).
		Bool("dryRun", opts.DryRun).
		Msg("import finished")

	r.Blank()
	r.Donef("Import complete!")
	r.Blank()
	r.Infof("Next steps:")
	r.Infof("   1. If using the web version, import localStorage manually (see above)")
	r.Infof("   2. Restart OpenCode")
	r.Infof("   3. Your projects should appear in the sidebar")

	return result, nil
}

func readBackup(path string, r *report.Reporter) (*types.ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	version, err := checkVersion(data)
	if err != nil {
		return nil, err
	}
	if version == "" {
		r.Warnf("Backup has no version field, assuming %s", types.ExportVersion)
	}

	var doc types.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return &doc, nil
}

func (i *Importer) importProjects(ctx context.Context, projects []types.Project, opts ImportOptions) (*ImportResult, error) {
	r := i.report
	result := &ImportResult{Imported: []string{}, Skipped: []string{}}

	// Reject the whole backup before writing if any record is unusable.
	for _, p := range projects {
		if err := project.ValidateID(p.ID); err != nil {
			return result, fmt.Errorf("%w: project %q: %w", ErrInvalidBackup, p.DisplayName(), err)
		}
	}

	for _, p := range projects {
		exists := i.projects.Exists(ctx, p.ID)
		if exists && !opts.Merge {
			r.Skipf("Skipping existing project: %s", p.DisplayName())
			result.Skipped = append(result.Skipped, p.ID)
			continue
		}

		updated := p
		updated.Time.Updated = i.Now().UnixMilli()

		i.checkWorktree(&p)

		if opts.DryRun {
			if exists {
				if err := i.printOverwrite(ctx, &updated); err != nil {
					return result, err
				}
			}
			r.Infof("  Would import: %s", p.DisplayName())
			result.Imported = append(result.Imported, p.ID)
			continue
		}

		if err := i.projects.Save(ctx, &updated); err != nil {
			return result, fmt.Errorf("failed to import project %s: %w", p.ID, err)
		}
		logging.Debug().Str("id", p.ID).Str("file", i.projects.FilePath(p.ID)).Msg("project written")
		r.Donef("Imported: %s", p.DisplayName())
		result.Imported = append(result.Imported, p.ID)
	}

	return result, nil
}

// checkWorktree warns when a project's worktree is missing on this machine
// or holds a different repository than the one the record was created for.
func (i *Importer) checkWorktree(p *types.Project) {
	if p.Worktree == "" {
		return
	}
	if _, err := os.Stat(p.Worktree); err != nil {
		i.report.Warnf("Worktree for %s does not exist on this machine: %s", p.DisplayName(), p.Worktree)
		return
	}
	if id, ok := project.WorktreeID(p.Worktree); ok && id != p.ID {
		i.report.Warnf("Worktree %s belongs to project %s, not %s", p.Worktree, id, p.ID)
	}
}

// printOverwrite shows how an existing record would change.
func (i *Importer) printOverwrite(ctx context.Context, p *types.Project) error {
	before, err := i.projects.GetRaw(ctx, p.ID)
	if err != nil {
		return err
	}
	after, err := storage.Marshal(p)
	if err != nil {
		return err
	}
	if diff := recordDiff(p.ID+".json", string(before), string(after)); diff != "" {
		i.report.Infof("  Would overwrite %s:", i.projects.FilePath(p.ID))
		i.report.Block(diff)
	}
	return nil
}

func (i *Importer) printLocalStorage(data map[string]string) error {
	snippet, err := restoreSnippet(data)
	if err != nil {
		return fmt.Errorf("failed to encode localStorage: %w", err)
	}

	r := i.report
	r.Blank()
	r.Warnf("localStorage import must be done manually in the browser:")
	r.Blank()
	r.Infof("1. Open OpenCode in your browser")
	r.Infof("2. Press F12 to open DevTools")
	r.Infof("3. Go to Console tab")
	r.Infof("4. Paste and run this code:")
	r.Blank()
	r.Block(snippet)
	return nil
}

func formatExportedAt(ms int64) string {
	if ms <= 0 {
		return "unknown"
	}
	t := time.UnixMilli(ms)
	return fmt.Sprintf("%s (%s)", t.Local().Format(time.DateTime), humanize.Time(t))
}
