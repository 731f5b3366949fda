package tableview

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/tabler/internal/config"
	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
	"github.com/alexisbeaulieu97/tabler/internal/logger"
	"github.com/alexisbeaulieu97/tabler/internal/records"
)

// Table and Projection are the record-typed domain types used by hosts.
type (
	Table      = table.Table[records.Record, string]
	Collection = table.Collection[records.Record, string]
	Projection = table.Projection[records.Record]
	Row        = table.RowProjection[records.Record]
)

// Service turns table definitions into live views.
type Service struct {
	log *logger.Logger
}

// NewService constructs a table view service. A nil logger discards output.
func NewService(log *logger.Logger) *Service {
	return &Service{log: log}
}

// Options tunes how a view is built.
type Options struct {
	// Unicode selects unicode sort arrows in the header line.
	Unicode bool
	// OnMove is called after every successful reorder.
	OnMove func(from []int, to int)
	// OnHover is called when a row gains or loses the hover.
	OnHover func(id string, hovered bool)
}

// Load parses the definition at path and opens a view over its rows.
func (s *Service) Load(ctx context.Context, path string, opts Options) (*View, error) {
	def, err := config.ParseDefinition(path)
	if err != nil {
		return nil, err
	}
	return s.Open(ctx, def, opts)
}

// Open builds a view from an already validated definition.
func (s *Service) Open(ctx context.Context, def *config.Definition, opts Options) (*View, error) {
	rows, err := records.Load(ctx, def)
	if err != nil {
		return nil, err
	}

	collection, err := table.NewCollection(records.RecordID, rows...)
	if err != nil {
		return nil, fmt.Errorf("load rows of %q: %w", def.Name, err)
	}

	layout, err := table.ParseLayout(def.Layout)
	if err != nil {
		return nil, err
	}

	initial, err := initialSort(def.Sort)
	if err != nil {
		return nil, err
	}

	var base table.Predicate[records.Record]
	if def.Filter != nil {
		column, _ := def.ColumnByKey(def.Filter.Column)
		base, err = records.PredicateFor(*def.Filter, column)
		if err != nil {
			return nil, fmt.Errorf("filter on %q: %w", def.Filter.Column, err)
		}
	}

	log := s.log.WithFields(map[string]any{"table": def.Name})

	view := &View{
		Definition: def,
		Columns:    def.Columns,
		rows:       collection,
		base:       base,
		log:        log,
	}

	cfg := table.Config[records.Record, string]{
		Layout:        layout,
		GridColumns:   def.GridColumns,
		Filter:        base,
		Comparators:   records.Comparators(def.Columns),
		InitialSort:   initial,
		Header:        headerRenderer(def, opts.Unicode),
		RowBackground: records.FieldDecorator(def.Decorations.Background),
		RowOverlay:    records.FieldDecorator(def.Decorations.Overlay),
	}
	if def.Reorderable {
		cfg.OnMove = func(from []int, to int) {
			view.moves++
			log.WithFields(map[string]any{"from": from, "to": to}).Debug("rows moved")
			if opts.OnMove != nil {
				opts.OnMove(from, to)
			}
		}
	}
	if def.Hover {
		cfg.OnHover = func(id string, hovered bool) {
			log.WithFields(map[string]any{"row": id, "hovered": hovered}).Debug("hover changed")
			if opts.OnHover != nil {
				opts.OnHover(id, hovered)
			}
		}
	}

	view.table = table.New(records.RecordID, cfg)
	log.WithFields(map[string]any{
		"rows":   collection.Len(),
		"layout": layout.String(),
		"source": def.Source.Kind,
	}).Debug("table opened")

	return view, nil
}

func initialSort(sort *config.Sort) (table.SortDescriptor, error) {
	if sort == nil {
		return table.SortDescriptor{}, nil
	}
	dir, err := table.ParseDirection(sort.Direction)
	if err != nil {
		return table.SortDescriptor{}, err
	}
	if sort.Direction == "" {
		dir = table.Ascending
	}
	return table.SortDescriptor{Key: table.ColumnKey(sort.Column), Direction: dir}, nil
}

func headerRenderer(def *config.Definition, unicode bool) table.HeaderRenderer {
	title := def.Name
	return func(ctx table.HeaderContext) string {
		var b strings.Builder
		b.WriteString(title)
		if ctx.VisibleRows == ctx.TotalRows {
			fmt.Fprintf(&b, " · %d rows", ctx.TotalRows)
		} else {
			fmt.Fprintf(&b, " · %d of %d rows", ctx.VisibleRows, ctx.TotalRows)
		}
		if ctx.Sort.Active() {
			fmt.Fprintf(&b, " · sorted by %s %s", ctx.Sort.Key, ctx.Sort.Direction.Arrow(unicode))
		}
		if !unicode {
			return strings.ReplaceAll(b.String(), " · ", " | ")
		}
		return b.String()
	}
}
