package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/procsh/commands"
	"github.com/josephlewis42/procsh/core/config"
	"github.com/josephlewis42/procsh/core/logger"
	"github.com/josephlewis42/procsh/core/proc"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	verbose  bool
	oneShot  string
	exitCode int
)

const defaultConfigPath = "."

// loadConfig reads the configuration named by --config. Without the flag the
// current directory is only a guess, so a missing or foreign config.yaml there
// falls back to the defaults instead of stopping the shell.
func loadConfig(cmd *cobra.Command, diag *log.Logger) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	switch {
	case err == nil:
		return configuration, nil
	case errors.Is(err, fs.ErrNotExist):
		diag.Println("Couldn't load config: did you run init? Using defaults.")
		return config.Default(), nil
	case !cmd.Flags().Changed("config"):
		diag.Printf("Ignoring %s in %s: %v. Using defaults.", config.ConfigurationName, cfgPath, err)
		return config.Default(), nil
	default:
		return nil, err
	}
}

func newDiagnosticLogger(cmd *cobra.Command) *log.Logger {
	if verbose {
		return log.New(cmd.ErrOrStderr(), "[procsh] ", 0)
	}
	return log.New(io.Discard, "", 0)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openEventLog returns the event logger configured for the session and the
// file backing it.
func openEventLog(cfg *config.Configuration, diag *log.Logger) (*logger.Logger, io.Closer) {
	if !cfg.EventLog || !cfg.HasStorage() {
		return logger.Discard(), nopCloser{}
	}

	fd, err := cfg.OpenAppLog()
	if err != nil {
		diag.Printf("Couldn't open event log, events won't be recorded: %v", err)
		return logger.Discard(), nopCloser{}
	}

	return logger.NewJsonLinesLogRecorder(fd), fd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "procsh",
	Short: "A minimal interactive process shell.",
	Long: `procsh reads one line at a time and runs it as a builtin:
cd, pwd, echo, kill, ps, exec and fork. Type \quit to leave.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		diag := newDiagnosticLogger(cmd)
		proc.SetLogger(diag)

		cfg, err := loadConfig(cmd, diag)
		if err != nil {
			return err
		}

		events, eventLog := openEventLog(cfg, diag)
		defer eventLog.Close()

		shell := commands.NewShell(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		shell.Events = events.NewSession()
		shell.Log = diag

		if cmd.Flags().Changed("command") {
			exitCode = shell.RunOnce(oneShot)
			return nil
		}

		exitCode = shell.Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, "config directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.Flags().StringVarP(&oneShot, "command", "c", "", "run a single line and exit")
}
