package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/josephlewis42/procsh/core/config"
	"github.com/josephlewis42/procsh/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// summarizeEvents folds every entry of a JSON-lines event log into a report.
func summarizeEvents(r io.Reader) (*logger.Report, error) {
	report := &logger.Report{}
	if err := logger.ReadJSONLinesLog(r, report.Update); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", config.AppLogName, err)
	}
	return report, nil
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the events recorded by past sessions.",
}

var eventsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print per-verb counts and outcomes as YAML.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig(cmd, newDiagnosticLogger(cmd))
		if err != nil {
			return err
		}

		eventLog, err := cfg.ReadAppLog()
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no events recorded under %s, run init to enable the event log", cfgPath)
		}
		if err != nil {
			return err
		}
		defer eventLog.Close()

		report, err := summarizeEvents(eventLog)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	eventsCmd.AddCommand(eventsReportCmd)
	rootCmd.AddCommand(eventsCmd)
}
