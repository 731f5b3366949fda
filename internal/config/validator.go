package config

import (
	"fmt"

	"github.com/alexisbeaulieu97/tabler/internal/domain/table"
	tablererrors "github.com/alexisbeaulieu97/tabler/pkg/errors"
)

// ValidateDefinition performs schema and cross-field validation on a definition.
func ValidateDefinition(def *Definition) error {
	if def == nil {
		return tablererrors.NewValidationError("definition", "definition is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(def); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(def.Columns))
	for i, col := range def.Columns {
		if first, exists := seen[col.Key]; exists {
			return tablererrors.NewValidationError(fieldForColumn(i, "key"), fmt.Sprintf("duplicate column key %q (first declared at columns[%d])", col.Key, first), nil)
		}
		seen[col.Key] = i
	}

	if def.Sort != nil {
		if _, ok := seen[def.Sort.Column]; !ok {
			return tablererrors.NewValidationError("sort.column", fmt.Sprintf("references unknown column %q", def.Sort.Column), nil)
		}
	}

	if def.Filter != nil {
		col, ok := def.ColumnByKey(def.Filter.Column)
		if !ok {
			return tablererrors.NewValidationError("filter.column", fmt.Sprintf("references unknown column %q", def.Filter.Column), nil)
		}
		if (def.Filter.Op == "gt" || def.Filter.Op == "lt") && col.Type == ColumnBool {
			return tablererrors.NewValidationError("filter.op", fmt.Sprintf("%s is not defined for bool column %q", def.Filter.Op, col.Key), nil)
		}
	}

	for field, key := range map[string]string{"decorations.background": def.Decorations.Background, "decorations.overlay": def.Decorations.Overlay} {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			return tablererrors.NewValidationError(field, fmt.Sprintf("references unknown column %q", key), nil)
		}
	}

	layout, _ := table.ParseLayout(def.Layout)
	if def.GridColumns > 0 && layout != table.LayoutGrid {
		return tablererrors.NewValidationError("grid_columns", "only valid for the grid layout", nil)
	}
	if def.Reorderable && layout != table.LayoutList {
		return tablererrors.NewValidationError("reorderable", fmt.Sprintf("the %s layout cannot be reordered", layout), nil)
	}

	switch def.Source.Kind {
	case SourceFile, SourceGit:
		if def.Source.Path == "" {
			return tablererrors.NewValidationError("source.path", fmt.Sprintf("required for %s sources", def.Source.Kind), nil)
		}
		if len(def.Rows) > 0 {
			return tablererrors.NewValidationError("rows", fmt.Sprintf("inline rows cannot be combined with a %s source", def.Source.Kind), nil)
		}
	default:
		if def.Source.Path != "" {
			return tablererrors.NewValidationError("source.path", "not used by inline sources", nil)
		}
	}

	return nil
}
