package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
	"github.com/alexisbeaulieu97/tabler/pkg/diff"
)

type moveOptions struct {
	from []int
	to   int
}

func newMoveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &moveOptions{}

	cmd := &cobra.Command{
		Use:   "move <definition.yaml>",
		Short: "Preview reordering rows of a reorderable list",
		Long: `Move the rows at the --from storage offsets so that they land before the
row that was at offset --to, and print the change in row order as a diff.
Offsets count from 0; --to may equal the row count to move rows to the end.
The definition file is not modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().IntSliceVar(&opts.from, "from", nil, "Storage offsets of the rows to move (comma separated)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "Destination offset in the original order")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runMove(cmd *cobra.Command, rootFlags *rootFlags, opts *moveOptions, path string) error {
	abs, err := validateDefinitionPath(path)
	if err != nil {
		return newCommandError("move", "locating definition", err, "Pass the path of a table definition YAML file.")
	}

	log, closeLog, err := newLogger(rootFlags, cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("move", "creating logger", err, "Check --log-level and --log-file.")
	}
	defer closeLog()

	view, err := tableview.NewService(log).Load(cmd.Context(), abs, tableview.Options{})
	if err != nil {
		return newCommandError("move", "loading table", err, "Run 'tabler validate' on the definition for details.")
	}
	if !view.Table().Reorderable() {
		return newCommandError("move", "reordering rows", errors.New("table is not reorderable"), "Set 'reorderable: true' on a list layout.")
	}

	before := orderLines(view)
	if err := view.Table().Move(view.Rows(), opts.from, opts.to); err != nil {
		return newCommandError("move", "reordering rows", err, fmt.Sprintf("Offsets must lie in 0..%d.", view.Rows().Len()))
	}
	after := orderLines(view)

	out := diff.Lines(before, after, "storage order", "after move")
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Row order unchanged.")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// orderLines renders one line per row in storage order: id then cells.
func orderLines(view *tableview.View) []string {
	items := view.Rows().Items()
	lines := make([]string, len(items))
	for i, row := range items {
		lines[i] = strings.Join(append([]string{row.ID}, view.Cells(row)...), " ")
	}
	return lines
}
