// Package cmd implements the langgen command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmarsden/langgen/internal/assets"
	"github.com/kmarsden/langgen/internal/config"
	"github.com/kmarsden/langgen/internal/langcode"
	"github.com/kmarsden/langgen/internal/langres"
	"github.com/kmarsden/langgen/internal/log"
	"github.com/kmarsden/langgen/internal/summary"
	"github.com/kmarsden/langgen/internal/telemetry"
)

var (
	cfg config.Config

	cfgFile   string
	assetsDir string
	verbose   bool
	noColor   bool
	traceRuns bool

	language string
	output   string

	telemetryShutdown telemetry.Shutdown
)

var rootCmd = &cobra.Command{
	Use:   "langgen",
	Short: "Generate language configuration headers from JSON resources",
	Long: `langgen compiles one language's JSON string resources and audio files
into a generated C++ header, merging against a base language (en-US by
default) so that keys and sounds the target language lacks fall back to
the base language's versions.`,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runGenerate,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .langgen.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", "", "assets root holding locales/ and common/ (default derived from the output path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	rootCmd.PersistentFlags().BoolVar(&traceRuns, "trace", false, "trace compile phases to stdout")

	rootCmd.Flags().StringVarP(&language, "language", "l", "", "language code (e.g. zh-CN, en-US, ja-JP)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output header file path")
	_ = rootCmd.MarkFlagRequired("language")
	_ = rootCmd.MarkFlagRequired("output")
}

// Execute runs the root command. Errors become a single "Error: ..."
// line on standard output and exit status 1, the contract the
// surrounding build scripts match on.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and wires logging and telemetry before any
// command body runs. Flags override config file values.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if assetsDir != "" {
		cfg.AssetsDir = assetsDir
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if traceRuns && cfg.Telemetry.Exporter == "none" {
		cfg.Telemetry.Exporter = "stdout"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.Setup(cfg.Log.Level, cfg.Log.Categories); err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry)
	if err != nil {
		// Tracing problems must never fail a build.
		log.ErrorErr(log.CatTelemetry, "telemetry disabled", err)
		return nil
	}
	telemetryShutdown = shutdown
	return nil
}

// teardown flushes telemetry and log buffers after the command body.
func teardown(cmd *cobra.Command, args []string) error {
	if telemetryShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetryShutdown(ctx); err != nil {
			log.ErrorErr(log.CatTelemetry, "flushing telemetry", err)
		}
		telemetryShutdown = nil
	}
	log.Close()
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := langcode.Check(language); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	compiler := langres.NewCompiler(cfg.BaseLanguage, cfg.AudioExtension, out)
	res, err := compiler.Compile(cmd.Context(), langres.Request{
		Language:  language,
		Output:    output,
		AssetsDir: cfg.AssetsDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully generated language config file: %s\n", res.Output)

	if summary.Enabled() {
		fmt.Fprint(out, summary.NewRenderer(noColor).Render(res, cfg.BaseLanguage))
	}
	return nil
}

// requireAssets returns the layout for the configured assets root. The
// commands that browse locales have no output path to derive a root
// from, so for them an explicit root is mandatory.
func requireAssets() (assets.Layout, error) {
	if cfg.AssetsDir == "" {
		return assets.Layout{}, errors.New("assets root required: pass --assets or set assets_dir in the config file")
	}
	return assets.New(cfg.AssetsDir)
}
