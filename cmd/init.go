package cmd

import (
	"log"

	"github.com/josephlewis42/procsh/core/config"
	"github.com/spf13/cobra"
)

// initCmd creates the config directory with the default config.yaml. Sessions
// started against that directory also append their events to its app.log.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config directory holding the default config.yaml.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		progress := log.New(cmd.ErrOrStderr(), "", 0)
		cfg, err := config.Initialize(cfgPath, progress)
		if err != nil {
			return err
		}

		if cfg.EventLog {
			progress.Printf("- Events will be recorded in %s", config.AppLogName)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
