package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/kmarsden/langgen/internal/langres"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages found under the assets root",
	Long:  `Display all locales under the assets root's locales/ directory, with their native names, string counts, and how many keys fall back to the base language.`,
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	layout, err := requireAssets()
	if err != nil {
		return err
	}

	codes, err := layout.DetectLanguages()
	if err != nil {
		return fmt.Errorf("detecting languages: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Languages in %s:\n", layout.LocalesDir())
	if len(codes) == 0 {
		fmt.Fprintln(out, "  (none)")
		return nil
	}

	base, err := langres.LoadBase(layout.LanguageFile(cfg.BaseLanguage))
	if err != nil {
		return err
	}

	type row struct {
		code   string
		name   string
		detail string
	}
	rows := make([]row, 0, len(codes))
	for _, code := range codes {
		doc, err := langres.LoadTarget(layout.LanguageFile(code))
		if err != nil {
			rows = append(rows, row{code: code, detail: fmt.Sprintf("invalid: %v", err)})
			continue
		}
		detail := fmt.Sprintf("%d strings", len(doc.Strings))
		if code == cfg.BaseLanguage {
			detail += " (base)"
		} else if missing := missingFromBase(base.Strings, doc.Strings); missing > 0 {
			detail += fmt.Sprintf(", %d fall back to %s", missing, cfg.BaseLanguage)
		}
		rows = append(rows, row{code: code, name: doc.Language.Name, detail: detail})
	}

	codeWidth, nameWidth := 0, 0
	for _, r := range rows {
		if len(r.code) > codeWidth {
			codeWidth = len(r.code)
		}
		// Native names are frequently CJK; measure display cells.
		if w := runewidth.StringWidth(r.name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %-*s  %s  %s\n", codeWidth, r.code, padCell(r.name, nameWidth), r.detail)
	}

	return nil
}

// missingFromBase counts base keys the target lacks.
func missingFromBase(base, target map[string]string) int {
	missing := 0
	for key := range base {
		if _, ok := target[key]; !ok {
			missing++
		}
	}
	return missing
}

// padCell right-pads s to a display width; %-*s would count bytes and
// misalign wide characters.
func padCell(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
