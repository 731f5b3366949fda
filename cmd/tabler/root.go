package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabler/internal/logger"
)

type rootFlags struct {
	verbose  bool
	logLevel string
	logFile  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "tabler",
		Short:         "Tabler renders sortable, filterable tables from YAML definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file instead of stderr")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newViewCmd(flags))
	cmd.AddCommand(newMoveCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the command logger. fallback receives output when no log
// file is set; the returned closer releases the log file.
func newLogger(flags *rootFlags, fallback io.Writer) (*logger.Logger, func() error, error) {
	level := flags.logLevel
	if flags.verbose {
		level = "debug"
	}

	writer := fallback
	closer := func() error { return nil }
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		writer = file
		closer = file.Close
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: flags.logFile == "",
		Writer:        writer,
	})
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return log, closer, nil
}
