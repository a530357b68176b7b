package listing

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// OrderFunc replaces a column's default ordering clause entirely. It receives
// the query alias, the builder and the resolved direction ("ASC" or "DESC").
type OrderFunc func(alias string, b sq.SelectBuilder, direction string) sq.SelectBuilder

// Column describes one displayable, sortable and exportable field of a result
// set. Columns are built once per request by a view model and are not mutated
// after that.
type Column struct {
	text        string
	align       string
	sortable    bool
	value       string
	customClass string
	def         string
	columns     []string
	custom      OrderFunc
	tooltip     string
	width       string
	order       int
}

func NewColumn(text, align string, sortable bool, value string) *Column {
	if align == "" {
		align = "center"
	}
	return &Column{
		text:     text,
		align:    align,
		sortable: sortable,
		value:    value,
	}
}

// ActionColumn is the conventional trailing column hosting per-row actions.
func ActionColumn() *Column {
	return NewColumn("Actions", "center", false, "actions")
}

func (c *Column) Text() string  { return c.text }
func (c *Column) Value() string { return c.value }

// Default returns the declared default sort direction, empty when the column
// does not participate in default ordering.
func (c *Column) Default() string { return c.def }

// SetDefault forces the direction to uppercase; an empty value clears it.
func (c *Column) SetDefault(direction string) *Column {
	c.def = strings.ToUpper(direction)
	return c
}

func (c *Column) SetDefaultASC() *Column {
	c.def = "ASC"
	return c
}

func (c *Column) SetDefaultDESC() *Column {
	c.def = "DESC"
	return c
}

// Columns returns the underlying field keys when one display column maps to
// several physical fields, e.g. a full-name column backed by name+surname.
func (c *Column) Columns() []string { return c.columns }

func (c *Column) SetColumns(columns ...string) *Column {
	c.columns = columns
	return c
}

func (c *Column) Custom() OrderFunc { return c.custom }

func (c *Column) SetCustom(fn OrderFunc) *Column {
	c.custom = fn
	return c
}

func (c *Column) SetCustomClass(class string) *Column {
	c.customClass = class
	return c
}

func (c *Column) SetTooltip(tooltip string) *Column {
	c.tooltip = tooltip
	return c
}

func (c *Column) SetWidth(width string) *Column {
	c.width = width
	return c
}

// Order is the tie-break used when selecting default sort columns.
func (c *Column) Order() int { return c.order }

func (c *Column) SetOrder(order int) *Column {
	c.order = order
	return c
}

// Serialize produces the client-facing shape echoed in the response envelope.
func (c *Column) Serialize() map[string]any {
	return map[string]any{
		"text":     c.text,
		"align":    c.align,
		"sortable": c.sortable,
		"value":    c.value,
		"class":    c.customClass,
		"tooltip":  emptyAsNil(c.tooltip),
		"width":    emptyAsNil(c.width),
	}
}

// SerializeColumns maps a column list to its wire representation.
func SerializeColumns(columns []*Column) []map[string]any {
	out := make([]map[string]any, 0, len(columns))
	for _, c := range columns {
		out = append(out, c.Serialize())
	}
	return out
}

func emptyAsNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
