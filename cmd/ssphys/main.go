package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/odvcencio/ssphys/pkg/config"
)

const version = "ssphys 0.3.0-dev"

var (
	configPath string
	verbosity  int
	colorFlag  string

	// loaded is set by the root command before any subcommand runs.
	loaded *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ssphys",
		Short:         "Inspect SourceSafe physical database files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if colorFlag != "" {
				cfg.Color = colorFlag
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			loaded = cfg
			return setupLogging(cmd.ErrOrStderr(), cfg, verbosity)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ./"+config.FileName+")")
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log more; repeat for debug and trace output")
	root.PersistentFlags().StringVar(&colorFlag, "color", "", "colour output: auto, always or never")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newXMLCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newRecordsCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newBranchesCmd())
	root.AddCommand(newGetCmd())
	return root
}

// settings returns the loaded config, or the defaults when a subcommand
// runs without the root.
func settings() *config.Config {
	if loaded == nil {
		return config.Default()
	}
	return loaded
}

func setupLogging(w io.Writer, cfg *config.Config, verbose int) error {
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose > 0 {
		lvl = logrus.WarnLevel + logrus.Level(verbose)
		if lvl > logrus.TraceLevel {
			lvl = logrus.TraceLevel
		}
	}
	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      useColor(w),
		DisableColors:    !useColor(w),
	})
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
