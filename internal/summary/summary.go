// Package summary renders the styled statistics block shown after a
// successful compile on interactive terminals.
package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/termenv"

	"github.com/kmarsden/langgen/internal/langres"
)

// maxDetailLines caps the fallback detail lists; anything beyond is
// collapsed into a trailing count.
const maxDetailLines = 6

// Enabled reports whether stdout is a terminal that should get the
// summary block. Pipes and CI logs keep the plain contract output only.
func Enabled() bool {
	return termenv.ColorProfile() != termenv.Ascii
}

// Renderer holds the style set for summary blocks.
type Renderer struct {
	title lipgloss.Style
	label lipgloss.Style
	num   lipgloss.Style
	warn  lipgloss.Style
	dim   lipgloss.Style
}

// NewRenderer returns a Renderer. Styling is dropped when noColor is
// set, NO_COLOR is exported, or the terminal cannot show color.
func NewRenderer(noColor bool) *Renderer {
	if noColor || termenv.EnvNoColor() || !Enabled() {
		plain := lipgloss.NewStyle()
		return &Renderer{title: plain, label: plain, num: plain, warn: plain, dim: plain}
	}
	return &Renderer{
		title: lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		num:   lipgloss.NewStyle().Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render returns the summary block for one compile result, indented and
// newline-terminated.
func (r *Renderer) Render(res *langres.Result, base string) string {
	var b strings.Builder

	b.WriteString(r.title.Render(fmt.Sprintf("%s → %s", res.Language, res.Output)))
	b.WriteString("\n")
	if res.InputFile != "" {
		b.WriteString(r.dim.Render("from " + res.InputFile))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := []struct {
		label string
		cells []cell
	}{
		{"Strings", []cell{
			{"base", res.StringStats.Base, false},
			{"target", res.StringStats.Target, false},
			{"total", res.StringStats.Total, false},
			{"fallback", res.StringStats.Fallback, true},
		}},
		{"Sounds", []cell{
			{"base", res.SoundStats.Base, false},
			{"target", res.SoundStats.Target, false},
			{"common", res.SoundStats.Common, false},
			{"fallback", res.SoundStats.Fallback, true},
		}},
	}

	labelWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, row := range rows {
		b.WriteString(r.label.Render(pad(row.label, labelWidth)))
		for _, c := range row.cells {
			style := r.num
			if c.warn && c.count > 0 {
				style = r.warn
			}
			b.WriteString(fmt.Sprintf("   %s %s", r.dim.Render(c.name), style.Render(fmt.Sprintf("%d", c.count))))
		}
		b.WriteString("\n")
	}

	if detail := r.fallbackDetail(res, base); detail != "" {
		b.WriteString("\n")
		b.WriteString(detail)
	}

	return indent.String(b.String(), 2)
}

type cell struct {
	name  string
	count int
	warn  bool
}

// fallbackDetail lists what actually fell back: string keys supplied by
// the base language and sound files whose base copy was selected.
func (r *Renderer) fallbackDetail(res *langres.Result, base string) string {
	var files []string
	if res.Language != base {
		for _, s := range res.LangSounds {
			if s.Variant == base {
				files = append(files, s.File)
			}
		}
	}
	if len(res.FallbackKeys) == 0 && len(files) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.label.Render(fmt.Sprintf("Fallback to %s", base)))
	b.WriteString("\n")

	nameWidth := 0
	for _, f := range files {
		if w := runewidth.StringWidth(f); w > nameWidth {
			nameWidth = w
		}
	}
	for _, k := range res.FallbackKeys {
		if w := runewidth.StringWidth(k); w > nameWidth {
			nameWidth = w
		}
	}

	lines := 0
	for _, k := range res.FallbackKeys {
		if lines == maxDetailLines {
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", pad(k, nameWidth), r.dim.Render("string")))
		lines++
	}
	for _, f := range files {
		if lines == maxDetailLines {
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", pad(f, nameWidth), r.dim.Render("sound")))
		lines++
	}
	if rest := len(res.FallbackKeys) + len(files) - lines; rest > 0 {
		b.WriteString(r.dim.Render(fmt.Sprintf("  … and %d more", rest)))
		b.WriteString("\n")
	}
	return b.String()
}

// pad right-pads s with spaces to the given display width. Widths are
// measured in terminal cells so CJK keys and filenames stay aligned.
func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
