package backup

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// recordDiff returns a line diff from before to after, headed with the file
// name. Unchanged lines are prefixed with a space, removed lines with "-"
// and added lines with "+". It returns "" when the contents are identical.
func recordDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("--- %s\n", name))
	builder.WriteString(fmt.Sprintf("+++ %s\n", name))

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(d.Text) {
			builder.WriteString(prefix + line + "\n")
		}
	}

	return builder.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
