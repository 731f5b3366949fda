package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("table.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "table.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: table.yaml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("rows.yaml", 0, stdErrors.New("missing"))
	require.Equal(t, "parse error: rows.yaml: missing", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("columns[1].key", "duplicate column key", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "columns[1].key", validationErr.Field)
	require.Contains(t, err.Error(), "duplicate column key")

	bare := NewValidationError("", "empty document", nil)
	require.Equal(t, "validation error: empty document", bare.Error())
}

func TestSourceErrorIncludesKindAndPath(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("repository does not exist")
	err := NewSourceError("git", "/tmp/repo", underlying)

	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
	require.Equal(t, "git", sourceErr.Kind)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "source error [git] /tmp/repo: repository does not exist", err.Error())
}

func TestNilReceivers(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var sourceErr *SourceError

	require.Empty(t, parseErr.Error())
	require.Nil(t, parseErr.Unwrap())
	require.Empty(t, validationErr.Error())
	require.Nil(t, validationErr.Unwrap())
	require.Empty(t, sourceErr.Error())
	require.Nil(t, sourceErr.Unwrap())
}
