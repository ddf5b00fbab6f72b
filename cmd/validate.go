package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmarsden/langgen/internal/langcode"
	"github.com/kmarsden/langgen/internal/langres"
)

var validateLanguage string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate locale resource documents",
	Long: `Check one or all locales for problems: missing required fields, keys
unusable as constant identifiers, constant-name collisions, empty or
over-long values, and keys that fall back to the base language. Exits
non-zero when any locale has errors.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateLanguage, "language", "l", "", "validate a single language code")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	layout, err := requireAssets()
	if err != nil {
		return err
	}

	var codes []string
	if validateLanguage != "" {
		codes = []string{validateLanguage}
	} else {
		codes, err = layout.DetectLanguages()
		if err != nil {
			return fmt.Errorf("detecting languages: %w", err)
		}
		if len(codes) == 0 {
			return fmt.Errorf("no locales found in %s", layout.LocalesDir())
		}
	}

	base, err := langres.LoadBase(layout.LanguageFile(cfg.BaseLanguage))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, code := range codes {
		doc, err := langres.LoadTarget(layout.LanguageFile(code))
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", code, err)
			failed++
			continue
		}

		if canonical, cErr := langcode.Canonical(code); cErr == nil && canonical != code {
			fmt.Fprintf(out, "%s: warning: directory code differs from canonical %q\n", code, canonical)
		}

		opts := langres.LintOptions{MaxValueGraphemes: cfg.MaxValueGraphemes}
		if code != cfg.BaseLanguage {
			opts.BaseStrings = base.Strings
		}
		findings := langres.Lint(doc, opts)
		if len(findings) == 0 {
			fmt.Fprintf(out, "%s: ok (%d strings)\n", code, len(doc.Strings))
			continue
		}

		fmt.Fprintf(out, "%s:\n", code)
		for _, f := range findings {
			fmt.Fprintf(out, "  %s: %s\n", f.Severity, f.Message)
		}
		if langres.HasErrors(findings) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d of %d locales", failed, len(codes))
	}
	return nil
}
