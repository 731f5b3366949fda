package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	tablererrors "github.com/alexisbeaulieu97/tabler/pkg/errors"
)

// convertValidationError normalizes validator errors into tabler validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return tablererrors.NewValidationError(field, msg, err)
	}

	return tablererrors.NewValidationError("definition", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, toSnake(part))
	}
	return strings.Join(lowered, ".")
}

// toSnake turns GridColumns into grid_columns while keeping index suffixes.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldForColumn(index int, field string) string {
	return fmt.Sprintf("columns[%d].%s", index, field)
}
