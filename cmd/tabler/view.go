package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
	"github.com/alexisbeaulieu97/tabler/internal/logger"
	"github.com/alexisbeaulieu97/tabler/internal/tui"
)

type viewOptions struct {
	sort string
}

func newViewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view <definition.yaml>",
		Short: "Browse a table interactively",
		Long: `Open a table definition in an interactive viewer. Move with the arrow
keys or the mouse, press 1-9 to sort by a column, / to filter and ? for help.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.sort, "sort", "", "Initial sort, column[:asc|desc]")

	return cmd
}

func runView(cmd *cobra.Command, rootFlags *rootFlags, opts *viewOptions, path string) error {
	abs, err := validateDefinitionPath(path)
	if err != nil {
		return newCommandError("view", "locating definition", err, "Pass the path of a table definition YAML file.")
	}
	if !supportsUnicode(cmd.OutOrStdout()) {
		return newCommandError("view", "starting viewer", errors.New("stdout is not a terminal"), "Use 'tabler render' for non-interactive output.")
	}

	// The viewer owns the terminal, so logs only go to --log-file.
	log := logger.Nop()
	if rootFlags.logFile != "" {
		fileLog, closeLog, err := newLogger(rootFlags, nil)
		if err != nil {
			return newCommandError("view", "creating logger", err, "Check --log-level and --log-file.")
		}
		defer closeLog()
		log = fileLog
	}

	service := tableview.NewService(log)
	load := func(ctx context.Context) (*tableview.View, error) {
		view, err := service.Load(ctx, abs, tableview.Options{Unicode: true})
		if err != nil {
			return nil, err
		}
		if opts.sort != "" {
			if err := view.ApplySort(opts.sort); err != nil {
				return nil, err
			}
		}
		return view, nil
	}

	model := tui.NewModel(cmd.Context(), load, tui.Options{Unicode: true})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
	final, err := program.Run()
	if err != nil {
		log.Error(err, "viewer failed")
		return fmt.Errorf("failed to run viewer: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return newCommandError("view", "loading table", m.Err(), "Run 'tabler validate' on the definition for details.")
	}
	return nil
}
