package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	tablererrors "github.com/alexisbeaulieu97/tabler/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseDefinition loads a table definition from disk, validates it, and
// resolves a relative source path against the definition's directory.
func ParseDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tablererrors.NewParseError(path, 0, err)
	}

	def, err := ParseDefinitionBytes(path, data)
	if err != nil {
		return nil, err
	}

	if def.Source.Path != "" && !filepath.IsAbs(def.Source.Path) {
		def.Source.Path = filepath.Join(filepath.Dir(path), def.Source.Path)
	}
	return def, nil
}

// ParseDefinitionBytes decodes and validates an in-memory definition. name is
// only used in error messages.
func ParseDefinitionBytes(name string, data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, tablererrors.NewParseError(name, LineOf(err), err)
	}

	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}

	return &def, nil
}

// LineOf extracts the line number from a yaml decoder error, or 0 when the
// error carries none.
func LineOf(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
