package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/tabler/internal/config"
	tablererrors "github.com/alexisbeaulieu97/tabler/pkg/errors"
)

// DefaultGitLimit caps the number of commits read when a git source sets no limit.
const DefaultGitLimit = 100

// GitColumns are the fields produced by the git source.
var GitColumns = []string{"hash", "short", "author", "email", "message", "when"}

// Load reads the rows a definition points at.
func Load(ctx context.Context, def *config.Definition) ([]Record, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is nil")
	}
	idField := def.Source.IdentityField()

	switch def.Source.Kind {
	case config.SourceFile:
		return LoadFile(def.Source.Path, idField)
	case config.SourceGit:
		return LoadGit(ctx, def.Source.Path, def.Source.Limit)
	default:
		records, err := FromMaps(def.Rows, idField)
		if err != nil {
			return nil, tablererrors.NewSourceError(config.SourceInline, "", err)
		}
		return records, nil
	}
}

// FromMaps converts decoded rows into records, reading the identity from
// idField. Every row must carry a non-empty identity.
func FromMaps(rows []map[string]any, idField string) ([]Record, error) {
	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		raw, ok := row[idField]
		if !ok || raw == nil {
			return nil, fmt.Errorf("row %d has no %q field", i, idField)
		}
		id := strings.TrimSpace(formatValue(raw))
		if id == "" {
			return nil, fmt.Errorf("row %d has an empty %q field", i, idField)
		}
		fields := make(map[string]any, len(row))
		for k, v := range row {
			fields[k] = v
		}
		out = append(out, Record{ID: id, Fields: fields})
	}
	return out, nil
}

// LoadFile reads a YAML list of rows.
func LoadFile(path, idField string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tablererrors.NewSourceError(config.SourceFile, path, err)
	}

	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, tablererrors.NewParseError(path, config.LineOf(err), err)
	}

	records, err := FromMaps(rows, idField)
	if err != nil {
		return nil, tablererrors.NewSourceError(config.SourceFile, path, err)
	}
	return records, nil
}

// LoadGit reads up to limit commits reachable from HEAD of the repository at
// path, newest first.
func LoadGit(ctx context.Context, path string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultGitLimit
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, tablererrors.NewSourceError(config.SourceGit, path, err)
	}

	iter, err := repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, tablererrors.NewSourceError(config.SourceGit, path, err)
	}
	defer iter.Close()

	out := make([]Record, 0, limit)
	for len(out) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		commit, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, tablererrors.NewSourceError(config.SourceGit, path, err)
		}
		out = append(out, commitRecord(commit))
	}
	return out, nil
}

func commitRecord(c *object.Commit) Record {
	hash := c.Hash.String()
	message, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return Record{
		ID: hash,
		Fields: map[string]any{
			"hash":    hash,
			"short":   hash[:7],
			"author":  c.Author.Name,
			"email":   c.Author.Email,
			"message": message,
			"when":    c.Author.When,
		},
	}
}
