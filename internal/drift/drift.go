// Package drift compares a generated header on disk against a fresh
// render of the same inputs.
package drift

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Report is the outcome of one comparison.
type Report struct {
	Clean   bool
	Added   int    // lines the fresh render adds
	Removed int    // lines only the on-disk file has
	Diff    string // changed lines, "-"/"+" prefixed, "@@" between hunks
}

// Compare diffs the on-disk bytes against the freshly rendered bytes.
// Equal inputs yield a clean report with an empty diff.
func Compare(existing, rendered []byte) Report {
	if bytes.Equal(existing, rendered) {
		return Report{Clean: true}
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(string(existing), string(rendered))
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	rep := Report{}
	var out strings.Builder
	gap := false
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			if out.Len() > 0 {
				gap = true
			}
			continue
		}
		if gap {
			out.WriteString("@@\n")
			gap = false
		}
		prefix := "+ "
		if d.Type == diffmatchpatch.DiffDelete {
			prefix = "- "
		}
		for _, line := range splitLines(d.Text) {
			out.WriteString(prefix)
			out.WriteString(line)
			out.WriteByte('\n')
			if d.Type == diffmatchpatch.DiffDelete {
				rep.Removed++
			} else {
				rep.Added++
			}
		}
	}
	rep.Diff = out.String()
	return rep
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
