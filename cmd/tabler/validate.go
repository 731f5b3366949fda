package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
)

func newValidateCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition.yaml>",
		Short: "Check a table definition and its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootFlags, args[0])
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, rootFlags *rootFlags, path string) error {
	abs, err := validateDefinitionPath(path)
	if err != nil {
		return newCommandError("validate", "locating definition", err, "Pass the path of a table definition YAML file.")
	}

	log, closeLog, err := newLogger(rootFlags, cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("validate", "creating logger", err, "Check --log-level and --log-file.")
	}
	defer closeLog()

	view, err := tableview.NewService(log).Load(cmd.Context(), abs, tableview.Options{})
	if err != nil {
		return newCommandError("validate", "checking "+path, err, "Fix the reported field and run validate again.")
	}

	def := view.Definition
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d columns, %d rows, %s layout, %s source\n",
		def.Name, len(def.Columns), view.Rows().Len(), view.Table().Layout(), def.Source.Kind)
	return nil
}
