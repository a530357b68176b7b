package mapping

import (
	"context"

	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

// Column binds one spreadsheet column to an entity field. Exactly one
// column per table is the Identifier; imports use it to match rows against
// existing entities. Columns without a Set func are export-only.
type Column[T any] struct {
	Name       string
	Identifier bool
	Get        func(entity *T) string
	Set        func(ctx context.Context, entity *T, value string) error
}

// Table is an ordered, validated set of columns for one entity type.
type Table[T any] struct {
	columns    []Column[T]
	identifier Column[T]
}

func NewTable[T any](columns []Column[T]) (*Table[T], error) {
	t := &Table[T]{columns: columns}
	seen := make(map[string]bool, len(columns))
	identifiers := 0
	for _, c := range columns {
		if c.Name == "" {
			return nil, srvErrors.NewColumnMappingError(c.Name, "column name must not be empty")
		}
		if seen[c.Name] {
			return nil, srvErrors.NewColumnMappingError(c.Name, "duplicate column name")
		}
		seen[c.Name] = true
		if c.Get == nil {
			return nil, srvErrors.NewColumnMappingError(c.Name, "missing value getter")
		}
		if c.Identifier {
			identifiers++
			t.identifier = c
		}
	}
	if identifiers != 1 {
		return nil, srvErrors.NewColumnMappingError("", "table requires exactly one identifier column")
	}
	return t, nil
}

// Headers returns the column names in table order.
func (t *Table[T]) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Name
	}
	return headers
}

// Identifier returns the column imports match rows against.
func (t *Table[T]) Identifier() Column[T] {
	return t.identifier
}

// Export renders one entity as a row in table order.
func (t *Table[T]) Export(entity *T) []string {
	row := make([]string, len(t.columns))
	for i, c := range t.columns {
		row[i] = c.Get(entity)
	}
	return row
}

// Apply copies cell values onto the entity. Only columns present in the row
// are applied; the identifier cell is skipped since it was used to resolve
// the entity. Each failing setter is reported once, keyed by column name,
// and the remaining columns are still applied.
func (t *Table[T]) Apply(ctx context.Context, entity *T, cells map[string]string) map[string]error {
	var failures map[string]error
	for _, c := range t.columns {
		if c.Set == nil || c.Identifier {
			continue
		}
		value, ok := cells[c.Name]
		if !ok {
			continue
		}
		if err := c.Set(ctx, entity, value); err != nil {
			if failures == nil {
				failures = make(map[string]error)
			}
			failures[c.Name] = err
		}
	}
	return failures
}
