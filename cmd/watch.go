package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kmarsden/langgen/internal/langcode"
	"github.com/kmarsden/langgen/internal/langres"
	"github.com/kmarsden/langgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the header whenever resources change",
	Long: `Build the header, then keep watching the base, target and common
resource directories and rebuild after changes settle. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&language, "language", "l", "", "language code (e.g. zh-CN, en-US, ja-JP)")
	watchCmd.Flags().StringVarP(&output, "output", "o", "", "output header file path")
	_ = watchCmd.MarkFlagRequired("language")
	_ = watchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := langcode.Check(language); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	compiler := langres.NewCompiler(cfg.BaseLanguage, cfg.AudioExtension, io.Discard)
	req := langres.Request{Language: language, Output: output, AssetsDir: cfg.AssetsDir}

	layout, _, err := compiler.ResolveLayout(req)
	if err != nil {
		return err
	}

	rebuild := func() error {
		res, err := compiler.Compile(ctx, req)
		if err != nil {
			fmt.Fprintf(out, "rebuild failed: %v\n", err)
			return err
		}
		fmt.Fprintf(out, "regenerated %s (%d strings, %d sounds)\n",
			res.Output, res.StringStats.Total, len(res.LangSounds)+len(res.CommonSounds))
		return nil
	}

	// Broken resources must not kill the loop; the point of watch mode
	// is rebuilding once the user fixes them.
	_ = rebuild()

	dirs := []string{
		layout.LanguageDir(cfg.BaseLanguage),
		layout.LanguageDir(language),
		layout.CommonDir(),
	}
	fmt.Fprintf(out, "Watching %s for changes (Ctrl-C to stop)\n", layout.Root())
	return watch.Run(ctx, dirs, cfg.WatchDebounce, rebuild)
}
