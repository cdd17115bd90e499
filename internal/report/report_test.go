package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterTaggedLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "configure-oh-my-opencode")

	r.Infof("Checking config at: %s", "/x/opencode.json")
	r.Donef("Configuration updated.")

	assert.Equal(t,
		"[configure-oh-my-opencode] Checking config at: /x/opencode.json\n"+
			"[configure-oh-my-opencode] [done] Configuration updated.\n",
		buf.String())
}

func TestReporterMarkers(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "")

	r.Warnf("Failed to read project file: %s", "bad.json")
	r.Skipf("existing project: %s", "abc")
	r.Errorf("Storage directory not found!")

	assert.Equal(t,
		"[warn] Failed to read project file: bad.json\n"+
			"[skip] existing project: abc\n"+
			"[error] Storage directory not found!\n",
		buf.String())
}

func TestReporterItemAndBlock(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "")

	r.Item("my-project", "Worktree: /w", "Sandboxes: 2")
	r.Blank()
	r.Block("const backup = {};")
	r.Block("done\n")

	assert.Equal(t,
		"  - my-project\n    Worktree: /w\n    Sandboxes: 2\n\nconst backup = {};\ndone\n",
		buf.String())
}
