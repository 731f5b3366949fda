package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Column types understood by the record comparators.
const (
	ColumnString = "string"
	ColumnNumber = "number"
	ColumnTime   = "time"
	ColumnBool   = "bool"
)

// Source kinds.
const (
	SourceInline = "inline"
	SourceFile   = "file"
	SourceGit    = "git"
)

// Definition is a complete table definition document.
type Definition struct {
	Version     string           `yaml:"version" validate:"required,semver"`
	Name        string           `yaml:"name" validate:"required,min=1,max=100"`
	Description string           `yaml:"description,omitempty"`
	Layout      string           `yaml:"layout,omitempty" validate:"omitempty,layout"`
	GridColumns int              `yaml:"grid_columns,omitempty" validate:"omitempty,min=1,max=12"`
	Reorderable bool             `yaml:"reorderable,omitempty"`
	Banding     bool             `yaml:"banding,omitempty"`
	Hover       bool             `yaml:"hover,omitempty"`
	Columns     []Column         `yaml:"columns" validate:"required,min=1,dive"`
	Sort        *Sort            `yaml:"sort,omitempty"`
	Filter      *Filter          `yaml:"filter,omitempty"`
	Decorations Decorations      `yaml:"decorations,omitempty"`
	Source      Source           `yaml:"source,omitempty"`
	Rows        []map[string]any `yaml:"rows,omitempty"`
}

// UnmarshalYAML applies defaults: banding and hover are on unless disabled,
// and a missing source kind means inline rows.
func (d *Definition) UnmarshalYAML(value *yaml.Node) error {
	type rawDefinition Definition
	var temp rawDefinition
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*d = Definition(temp)
	if !hasYAMLKey(value, "banding") {
		d.Banding = true
	}
	if !hasYAMLKey(value, "hover") {
		d.Hover = true
	}
	if d.Source.Kind == "" {
		d.Source.Kind = SourceInline
	}
	return nil
}

// Column describes one displayed field.
type Column struct {
	Key      string `yaml:"key" validate:"required,column_key"`
	Title    string `yaml:"title,omitempty" validate:"max=60"`
	Type     string `yaml:"type,omitempty" validate:"omitempty,oneof=string number time bool"`
	Width    int    `yaml:"width,omitempty" validate:"omitempty,min=1,max=200"`
	Sortable bool   `yaml:"sortable,omitempty"`
}

// UnmarshalYAML defaults columns to sortable strings.
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	type rawColumn Column
	var temp rawColumn
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*c = Column(temp)
	if c.Type == "" {
		c.Type = ColumnString
	}
	if !hasYAMLKey(value, "sortable") {
		c.Sortable = true
	}
	return nil
}

// Heading returns the column title, falling back to the upper-cased key.
func (c Column) Heading() string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return strings.ToUpper(c.Key)
}

// Sort is the initial sort of the table.
type Sort struct {
	Column    string `yaml:"column" validate:"required,column_key"`
	Direction string `yaml:"direction,omitempty" validate:"omitempty,direction"`
}

// Filter is a single-column predicate applied to every projection.
type Filter struct {
	Column string `yaml:"column" validate:"required,column_key"`
	Op     string `yaml:"op" validate:"required,oneof=eq ne contains prefix gt lt"`
	Value  string `yaml:"value"`
}

// Decorations names the columns whose values become per-row background and
// overlay tokens.
type Decorations struct {
	Background string `yaml:"background,omitempty" validate:"omitempty,column_key"`
	Overlay    string `yaml:"overlay,omitempty" validate:"omitempty,column_key"`
}

// Source describes where rows come from.
type Source struct {
	Kind    string `yaml:"kind,omitempty" validate:"omitempty,oneof=inline file git"`
	Path    string `yaml:"path,omitempty"`
	Limit   int    `yaml:"limit,omitempty" validate:"omitempty,min=1,max=10000"`
	IDField string `yaml:"id_field,omitempty" validate:"omitempty,column_key"`
}

// IdentityField returns the row field holding the identity.
func (s Source) IdentityField() string {
	if s.IDField != "" {
		return s.IDField
	}
	if s.Kind == SourceGit {
		return "hash"
	}
	return "id"
}

// ColumnByKey looks up a column.
func (d *Definition) ColumnByKey(key string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

func hasYAMLKey(node *yaml.Node, key string) bool {
	if node == nil || node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		if strings.EqualFold(k.Value, key) {
			return true
		}
	}
	return false
}
