package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmarsden/langgen/internal/config"
	"github.com/kmarsden/langgen/internal/log"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .langgen.yaml config file",
	Long:  `Create a commented configuration file with default settings, at --config if given or .langgen.yaml in the working directory.`,
	// The root setup would reject an explicit --config path that does
	// not exist yet, which is exactly the file init is about to create.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Defaults()
		return log.Setup(cfg.Log.Level, nil)
	},
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigFile
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
