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

var _ = Describe("opencode-export", func() {
	var sb *sandbox

	BeforeEach(func() {
		sb = newSandbox()
	})

	run := func(args ...string) int {
		cmd := commands.NewExportCmd(sb.stdout, sb.stderr, sb.env)
		return commands.Execute(cmd, args, sb.stderr)
	}

	Context("with projects in storage", func() {
		BeforeEach(func() {
			sb.writeProject("abc123", `{"id":"abc123","worktree":"/home/u/proj","name":"Proj","time":{"created":1,"updated":2},"sandboxes":[]}`)
			sb.writeProject("def456", `{"id":"def456","worktree":"/home/u/other","time":{"created":3,"updated":4}}`)
		})

		It("writes only the JSON document to stdout", func() {
			Expect(run()).To(Equal(0))

			var doc types.ExportDocument
			Expect(json.Unmarshal(sb.stdout.Bytes(), &doc)).To(Succeed())
			Expect(doc.Version).To(Equal("1.0.0"))
			Expect(doc.ExportedAt).To(BeNumerically(">", 0))
			Expect(doc.Projects).To(HaveLen(2))
			Expect(doc.Projects[0].ID).To(Equal("abc123"))
			Expect(doc.Projects[1].Sandboxes).To(BeEmpty())
			Expect(sb.stdout.String()).To(ContainSubstring("\n  \"version\""))

			Expect(sb.stderr.String()).To(ContainSubstring("Proj"))
			Expect(sb.stderr.String()).NotTo(ContainSubstring(`"exportedAt"`))
		})

		It("writes the document to the --output file", func() {
			out := filepath.Join(sb.root, "backups", "projects.json")
			Expect(run("--output", out)).To(Equal(0))
			Expect(sb.stdout.Len()).To(BeZero())

			data, err := os.ReadFile(out)
			Expect(err).NotTo(HaveOccurred())
			var doc types.ExportDocument
			Expect(json.Unmarshal(data, &doc)).To(Succeed())
			Expect(doc.Projects).To(HaveLen(2))
		})

		It("honours OPENCODE_CONFIG_DIR from --env-file", func() {
			other := filepath.Join(sb.root, "custom")
			envFile := sb.file("sync.env", "OPENCODE_CONFIG_DIR="+other+"\n")

			Expect(run("--env-file", envFile)).To(Equal(1))
			Expect(sb.stdout.Len()).To(BeZero())
			Expect(sb.stderr.String()).To(ContainSubstring(filepath.Join(other, "storage")))
		})
	})

	It("fails with exit code 1 when storage is missing", func() {
		Expect(run()).To(Equal(1))
		Expect(sb.stdout.Len()).To(BeZero())
		Expect(sb.stderr.String()).To(ContainSubstring("Storage directory not found"))
		Expect(sb.stderr.String()).To(ContainSubstring("Error:"))
	})

	It("logs the failure when --print-logs is set", func() {
		Expect(run("--print-logs")).To(Equal(1))
		Expect(sb.stderr.String()).To(ContainSubstring("command failed"))
		Expect(sb.stderr.String()).To(ContainSubstring("storage directory not found"))
	})

	It("rejects positional arguments", func() {
		Expect(run("extra")).To(Equal(1))
		Expect(sb.stdout.Len()).To(BeZero())
	})

	It("prints the version", func() {
		Expect(run("--version")).To(Equal(0))
		Expect(sb.stderr.String()).To(HavePrefix("opencode-export " + commands.Version))
	})

	It("prints logs to stderr only with --print-logs", func() {
		sb.writeProject("abc123", `{"id":"abc123","worktree":"/w","time":{"created":1,"updated":2}}`)

		Expect(run("--print-logs", "--log-level", "DEBUG")).To(Equal(0))
		Expect(sb.stderr.String()).To(ContainSubstring("resolved paths"))

		var doc types.ExportDocument
		Expect(json.Unmarshal(sb.stdout.Bytes(), &doc)).To(Succeed())
	})
})
