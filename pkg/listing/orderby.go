package listing

import (
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ApplyOrderBy compiles the requested sort state against the view's columns.
// With no explicit request the defaults come from columns declaring a
// default direction, in ascending Order(). Requested fields that match no
// column are ignored.
func (c *Compiler) ApplyOrderBy(b sq.SelectBuilder, sortBy []string, sortDesc []bool, columns []*Column) sq.SelectBuilder {
	if len(sortBy) == 0 {
		var defaults []*Column
		for _, col := range columns {
			if col.Default() != "" {
				defaults = append(defaults, col)
			}
		}
		sort.SliceStable(defaults, func(i, j int) bool {
			return defaults[i].Order() < defaults[j].Order()
		})
		sortBy = make([]string, len(defaults))
		sortDesc = make([]bool, len(defaults))
		for i, col := range defaults {
			sortBy[i] = col.Value()
			sortDesc[i] = col.Default() != "ASC"
		}
	}

	for index, field := range sortBy {
		column := findColumn(columns, field)
		if column == nil {
			continue
		}
		direction := "ASC"
		if index < len(sortDesc) && sortDesc[index] {
			direction = "DESC"
		}
		if underlying := column.Columns(); len(underlying) > 0 {
			for _, sub := range underlying {
				b = c.orderBy(b, sub, direction)
			}
			continue
		}
		if custom := column.Custom(); custom != nil {
			b = custom(c.alias, b, direction)
			continue
		}
		b = c.orderBy(b, field, direction)
	}
	return b
}

func (c *Compiler) orderBy(b sq.SelectBuilder, field, direction string) sq.SelectBuilder {
	if strings.Contains(field, ".") {
		return b.OrderBy(field + " " + direction)
	}
	return b.OrderBy(c.alias + "." + field + " " + direction)
}

func findColumn(columns []*Column, value string) *Column {
	for _, col := range columns {
		if col.Value() == value {
			return col
		}
	}
	return nil
}
