package cmd

import (
	"fmt"

	"github.com/josephlewis42/procsh/commands"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig(cmd, newDiagnosticLogger(cmd))
		if err != nil {
			return err
		}

		for _, v := range commands.ListBuiltins() {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.QuitCommand)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
