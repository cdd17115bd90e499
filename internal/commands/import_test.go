package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/opencode-ai/opencode-sync/internal/commands"
	"github.com/opencode-ai/opencode-sync/pkg/types"
)

const twoProjectBackup = `{
  "version": "1.0.0",
  "exportedAt": 1700000000000,
  "projects": [
    {"id": "abc123", "worktree": "/home/u/proj", "name": "Proj", "time": {"created": 1, "updated": 2}, "sandboxes": []},
    {"id": "def456", "worktree": "/home/u/other", "time": {"created": 3, "updated": 4}, "sandboxes": []}
  ]
}`

var _ = Describe("opencode-import", func() {
	var sb *sandbox

	BeforeEach(func() {
		sb = newSandbox()
	})

	run := func(args ...string) int {
		cmd := commands.NewImportCmd(sb.stderr, sb.env)
		return commands.Execute(cmd, args, sb.stderr)
	}

	It("prints usage and fails without a backup argument", func() {
		Expect(run()).To(Equal(1))
		Expect(sb.stderr.String()).To(ContainSubstring("opencode-import <backup-file.json>"))
		Expect(sb.stderr.String()).To(ContainSubstring("backup file argument required"))
	})

	It("fails when the backup file does not exist", func() {
		Expect(run(filepath.Join(sb.root, "missing.json"))).To(Equal(1))
		Expect(sb.stderr.String()).To(ContainSubstring("Backup file not found"))
	})

	It("fails on an unparseable backup without creating storage", func() {
		backup := sb.file("broken.json", `{"version": "1.0.0", "projects": [`)
		Expect(run(backup)).To(Equal(1))

		_, err := os.Stat(sb.paths().Storage)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("imports every project into empty storage", func() {
		backup := sb.file("backup.json", twoProjectBackup)
		Expect(run(backup)).To(Equal(0))

		var p types.Project
		Expect(json.Unmarshal([]byte(sb.readProject("abc123")), &p)).To(Succeed())
		Expect(p.Worktree).To(Equal("/home/u/proj"))
		Expect(p.Time.Created).To(Equal(int64(1)))
		Expect(p.Time.Updated).To(BeNumerically(">", 2))

		Expect(sb.readProject("def456")).To(ContainSubstring(`"id": "def456"`))
		Expect(sb.stderr.String()).To(ContainSubstring("Summary: 2 imported, 0 skipped"))
	})

	Context("when a project already exists", func() {
		const local = `{"id":"abc123","worktree":"/local","time":{"created":9,"updated":9},"sandboxes":[]}`

		BeforeEach(func() {
			sb.writeProject("abc123", local)
		})

		It("skips it by default", func() {
			Expect(run(sb.file("backup.json", twoProjectBackup))).To(Equal(0))
			Expect(sb.readProject("abc123")).To(Equal(local))
			Expect(sb.stderr.String()).To(ContainSubstring("Skipping existing project: Proj"))
			Expect(sb.stderr.String()).To(ContainSubstring("Summary: 1 imported, 1 skipped"))
		})

		It("overwrites it with --merge", func() {
			Expect(run(sb.file("backup.json", twoProjectBackup), "--merge")).To(Equal(0))
			Expect(sb.readProject("abc123")).To(ContainSubstring(`"worktree": "/home/u/proj"`))
			Expect(sb.stderr.String()).To(ContainSubstring("Summary: 2 imported, 0 skipped"))
		})

		It("writes nothing with --dry-run", func() {
			Expect(run(sb.file("backup.json", twoProjectBackup), "--merge", "--dry-run")).To(Equal(0))
			Expect(sb.readProject("abc123")).To(Equal(local))
			_, err := os.Stat(filepath.Join(sb.paths().Storage, "project", "def456.json"))
			Expect(os.IsNotExist(err)).To(BeTrue())
			Expect(sb.stderr.String()).To(ContainSubstring("Summary: 2 would be imported, 0 skipped"))
		})
	})

	It("reads storage location from OPENCODE_CONFIG_DIR", func() {
		custom := filepath.Join(sb.root, "custom")
		sb.env = sb.env.With("OPENCODE_CONFIG_DIR", custom)

		Expect(run(sb.file("backup.json", twoProjectBackup))).To(Equal(0))
		_, err := os.Stat(filepath.Join(custom, "storage", "project", "abc123.json"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("round-trips an export into another machine", func() {
		source := newSandbox()
		source.writeProject("abc123", `{"id":"abc123","worktree":"/w","vcs":"git","icon":{"color":"blue"},"time":{"created":5,"updated":6,"initialized":7},"sandboxes":["/s"]}`)
		Expect(commands.Execute(commands.NewExportCmd(source.stdout, source.stderr, source.env), nil, source.stderr)).To(Equal(0))

		backup := sb.file("backup.json", source.stdout.String())
		Expect(run(backup)).To(Equal(0))

		var p types.Project
		Expect(json.Unmarshal([]byte(sb.readProject("abc123")), &p)).To(Succeed())
		Expect(p.VCS).To(Equal("git"))
		Expect(p.Icon.Color).To(Equal("blue"))
		Expect(*p.Time.Initialized).To(Equal(int64(7)))
		Expect(p.Sandboxes).To(Equal([]string{"/s"}))
	})
})
