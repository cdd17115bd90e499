package commands_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/opencode-ai/opencode-sync/internal/commands"
)

var _ = Describe("configure-oh-my-opencode", func() {
	var sb *sandbox

	BeforeEach(func() {
		sb = newSandbox()
	})

	run := func(args ...string) int {
		cmd := commands.NewConfigurePluginCmd(sb.stderr, sb.env)
		return commands.Execute(cmd, args, sb.stderr)
	}

	configPath := func() string {
		return filepath.Join(sb.env.Home, ".config", "opencode", "opencode.json")
	}

	It("creates the default config with the plugin enabled", func() {
		Expect(run()).To(Equal(0))

		data, err := os.ReadFile(configPath())
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("{\n  \"plugin\": [\n    \"oh-my-opencode\"\n  ]\n}"))
		Expect(sb.stderr.String()).To(ContainSubstring("[configure-oh-my-opencode] "))
	})

	It("is idempotent", func() {
		Expect(run()).To(Equal(0))
		first, err := os.ReadFile(configPath())
		Expect(err).NotTo(HaveOccurred())

		sb.reset()
		Expect(run()).To(Equal(0))
		second, err := os.ReadFile(configPath())
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(strings.Count(string(second), "oh-my-opencode")).To(Equal(1))
		Expect(sb.stderr.String()).To(ContainSubstring("already enabled"))
	})

	It("uses OPENCODE_CONFIG when set", func() {
		custom := filepath.Join(sb.root, "cfg", "custom.json")
		sb.env = sb.env.With("OPENCODE_CONFIG", custom)

		Expect(run()).To(Equal(0))
		Expect(custom).To(BeAnExistingFile())
		Expect(configPath()).NotTo(BeAnExistingFile())
	})

	It("uses XDG_CONFIG_HOME when set", func() {
		xdg := filepath.Join(sb.root, "xdg")
		sb.env = sb.env.With("XDG_CONFIG_HOME", xdg)

		Expect(run()).To(Equal(0))
		Expect(filepath.Join(xdg, "opencode", "opencode.json")).To(BeAnExistingFile())
	})

	It("leaves an unparseable config untouched and fails", func() {
		Expect(os.MkdirAll(filepath.Dir(configPath()), 0755)).To(Succeed())
		original := "{\n  // comment\n  \"theme\": \"dark\"\n}\n"
		Expect(os.WriteFile(configPath(), []byte(original), 0644)).To(Succeed())

		Expect(run()).To(Equal(1))
		data, err := os.ReadFile(configPath())
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(original))
		Expect(sb.stderr.String()).To(ContainSubstring("ABORTING: Cannot parse opencode.json."))
	})

	It("rejects positional arguments", func() {
		Expect(run("extra")).To(Equal(1))
		Expect(configPath()).NotTo(BeAnExistingFile())
	})
})
