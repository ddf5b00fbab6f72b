package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmarsden/langgen/internal/drift"
	"github.com/kmarsden/langgen/internal/langcode"
	"github.com/kmarsden/langgen/internal/langres"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated header is up to date",
	Long: `Render the header without writing it and compare the result against
the file on disk. Exits non-zero when the file is missing or stale, so
CI can catch resource changes that were not regenerated.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&language, "language", "l", "", "language code the header was generated for")
	checkCmd.Flags().StringVarP(&output, "output", "o", "", "generated header file path")
	_ = checkCmd.MarkFlagRequired("language")
	_ = checkCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := langcode.Check(language); err != nil {
		return err
	}

	// Progress lines stay quiet in check mode; only the verdict prints.
	compiler := langres.NewCompiler(cfg.BaseLanguage, cfg.AudioExtension, io.Discard)
	res, err := compiler.Compile(cmd.Context(), langres.Request{
		Language:  language,
		Output:    output,
		AssetsDir: cfg.AssetsDir,
		SkipWrite: true,
	})
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(output)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist; run langgen to create it", output)
		}
		return fmt.Errorf("reading %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	rep := drift.Compare(existing, res.Rendered)
	if rep.Clean {
		fmt.Fprintf(out, "%s is up to date\n", output)
		return nil
	}

	fmt.Fprintf(out, "%s is stale (+%d -%d lines):\n", output, rep.Added, rep.Removed)
	fmt.Fprint(out, rep.Diff)
	return fmt.Errorf("generated header is out of date: %s", output)
}
