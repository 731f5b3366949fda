package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/tabler/internal/app/tableview"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
)

type renderOptions struct {
	jsonOutput bool
	sort       string
	filters    []string
	search     string
	hover      string
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <definition.yaml>",
		Short: "Print the projected rows of a table definition",
		Long: `Load a table definition, apply sort, filters and hover, and print the
visible rows in projection order.

Filters take the form column<op>value where op is one of
  =  equal          !=  not equal
  ~  contains       ^   prefix
  >  greater than   <   less than`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort by column[:asc|desc]")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "Filter rows (repeatable), e.g. owner=ada or size>3")
	cmd.Flags().StringVar(&opts.search, "search", "", "Match text across every column")
	cmd.Flags().StringVar(&opts.hover, "hover", "", "Mark the row with this id as hovered")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, opts *renderOptions, path string) error {
	abs, err := validateDefinitionPath(path)
	if err != nil {
		return newCommandError("render", "locating definition", err, "Pass the path of a table definition YAML file.")
	}

	log, closeLog, err := newLogger(rootFlags, cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("render", "creating logger", err, "Check --log-level and --log-file.")
	}
	defer closeLog()

	useUnicode := supportsUnicode(cmd.OutOrStdout())
	view, err := tableview.NewService(log).Load(cmd.Context(), abs, tableview.Options{Unicode: useUnicode})
	if err != nil {
		return newCommandError("render", "loading table", err, "Run 'tabler validate' on the definition for details.")
	}

	if opts.sort != "" {
		if err := view.ApplySort(opts.sort); err != nil {
			return newCommandError("render", "applying --sort", err, "Use column or column:asc / column:desc.")
		}
	}
	for _, expr := range opts.filters {
		if err := view.AddFilter(expr); err != nil {
			return newCommandError("render", "applying --filter", err, "Use column=value; see 'tabler render --help'.")
		}
	}
	view.SetSearch(opts.search)
	if opts.hover != "" {
		if err := view.Hover(opts.hover); err != nil {
			return newCommandError("render", "applying --hover", err, "Pass the id of an existing row.")
		}
	}

	projection, err := view.Project()
	if err != nil {
		return newCommandError("render", "projecting rows", err, "Check that filter values match the column types.")
	}

	if opts.jsonOutput {
		return renderJSON(cmd.OutOrStdout(), view, projection)
	}
	return renderTable(cmd.OutOrStdout(), view, projection, useUnicode)
}

func renderTable(out io.Writer, view *tableview.View, projection *tableview.Projection, useUnicode bool) error {
	fmt.Fprintln(out, projection.Header)
	fmt.Fprintln(out)

	grid := view.Table().Layout() == table.LayoutGrid

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	headings := []string{" "}
	if grid {
		headings = append(headings, "CELL")
	}
	for _, col := range view.Columns {
		heading := col.Heading()
		if projection.Sort.Active() && string(projection.Sort.Key) == col.Key {
			heading += " " + projection.Sort.Direction.Arrow(useUnicode)
		}
		headings = append(headings, heading)
	}
	fmt.Fprintln(writer, strings.Join(headings, "\t"))

	for _, row := range projection.All() {
		fields := []string{hoverMarker(row.IsHovered, useUnicode)}
		if grid {
			fields = append(fields, fmt.Sprintf("%d,%d", row.Cell.Row, row.Cell.Column))
		}
		fields = append(fields, view.Cells(row.Element)...)
		if row.Overlay != "" {
			fields[len(fields)-1] += fmt.Sprintf(" [%s]", row.Overlay)
		}
		fmt.Fprintln(writer, strings.Join(fields, "\t"))
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	if projection.Len() == 0 {
		fmt.Fprintln(out, "No rows match.")
	}
	if hidden := projection.Hidden(); hidden > 0 {
		fmt.Fprintf(out, "\n%d of %d rows hidden by filters.\n", hidden, projection.Total)
	}
	return nil
}

func hoverMarker(hovered, useUnicode bool) string {
	switch {
	case !hovered:
		return " "
	case useUnicode:
		return "›"
	default:
		return ">"
	}
}

type renderJSONSort struct {
	Column    string `json:"column,omitempty"`
	Direction string `json:"direction"`
}

type renderJSONCell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type renderJSONRow struct {
	ID           string         `json:"id"`
	Position     int            `json:"position"`
	StorageIndex int            `json:"storage_index"`
	Hovered      bool           `json:"hovered"`
	Even         bool           `json:"even"`
	Cell         renderJSONCell `json:"cell"`
	Background   string         `json:"background,omitempty"`
	Overlay      string         `json:"overlay,omitempty"`
	Fields       map[string]any `json:"fields"`
}

type renderJSONPayload struct {
	Version  string          `json:"version"`
	Table    string          `json:"table"`
	Layout   string          `json:"layout"`
	Header   string          `json:"header"`
	Sort     renderJSONSort  `json:"sort"`
	Total    int             `json:"total"`
	Visible  int             `json:"visible"`
	Hidden   int             `json:"hidden"`
	Warnings []string        `json:"warnings,omitempty"`
	Rows     []renderJSONRow `json:"rows"`
}

func renderJSON(out io.Writer, view *tableview.View, projection *tableview.Projection) error {
	payload := renderJSONPayload{
		Version: "1.0",
		Table:   view.Definition.Name,
		Layout:  view.Table().Layout().String(),
		Header:  projection.Header,
		Sort: renderJSONSort{
			Column:    string(projection.Sort.Key),
			Direction: projection.Sort.Direction.String(),
		},
		Total:   projection.Total,
		Visible: projection.Len(),
		Hidden:  projection.Hidden(),
		Rows:    make([]renderJSONRow, 0, projection.Len()),
	}

	for _, warning := range projection.Warnings {
		payload.Warnings = append(payload.Warnings, warning.Error())
	}

	for _, row := range projection.All() {
		payload.Rows = append(payload.Rows, renderJSONRow{
			ID:           row.Element.ID,
			Position:     row.Position,
			StorageIndex: row.StorageIndex,
			Hovered:      row.IsHovered,
			Even:         row.IsEven,
			Cell:         renderJSONCell{Row: row.Cell.Row, Column: row.Cell.Column},
			Background:   row.Background,
			Overlay:      row.Overlay,
			Fields:       row.Element.Fields,
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
