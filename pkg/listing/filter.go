package listing

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Expression is the predicate strategy a filter compiles to.
type Expression string

const (
	ExpressionNone    Expression = "NONE"
	ExpressionAnd     Expression = "AND"
	ExpressionOr      Expression = "OR"
	ExpressionListAnd Expression = "LIST_AND"
	ExpressionListOr  Expression = "LIST_OR"
	ExpressionBetween Expression = "BETWEEN"
	ExpressionCustom  Expression = "CUSTOM"
)

// DateType marks filters whose values are calendar dates; these receive
// day-floor/day-ceil range handling and timezone conversion.
const DateType = "date"

// SoftDeletedField is the reserved field name: a filter bound to it takes
// over soft-delete handling from the compiler.
const SoftDeletedField = "soft_deleted"

// CurrentUser is the authenticated principal as the listing engine sees it.
// Only the timezone is needed here, for converting date-range boundaries.
type CurrentUser interface {
	Location() *time.Location
}

// PredicateFunc implements a CUSTOM filter. It receives the query alias, the
// builder, the processed value, the full submitted filter data, the filter
// descriptor and the current user, and returns the updated builder.
type PredicateFunc func(alias string, b sq.SelectBuilder, value any, data map[string]any, f *Filter, user CurrentUser) sq.SelectBuilder

// FilterOptions is the option bag serialized to the client. Range forces
// multi-value submission; RangeOptions lists the date presets offered.
type FilterOptions struct {
	Range        bool        `json:"range,omitempty"`
	RangeOptions []DateRange `json:"rangeOptions,omitempty"`
}

// HasRangeOption reports whether a preset with the given name is offered.
func (o *FilterOptions) HasRangeOption(name string) bool {
	if o == nil {
		return false
	}
	for _, r := range o.RangeOptions {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Filter describes one user-adjustable query predicate. The descriptor is
// declarative: the compiler in this package turns it into squirrel
// predicates. Expression must be set before compilation; a filter with
// nothing to contribute uses ExpressionNone explicitly.
type Filter struct {
	label           string
	name            string
	url             string
	dependants      []string
	values          any
	data            []Option
	multiple        bool
	typ             string
	options         *FilterOptions
	custom          PredicateFunc
	expectsList     bool
	field           string
	fields          []string
	expression      Expression
	group           string
	groupExpression Expression
	session         string
}

// Option is one selectable filter choice.
type Option struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
}

func NewFilter(label, name string) *Filter {
	return &Filter{label: label, name: name}
}

// YesNoFilter is the canned two-option filter used across views.
func YesNoFilter(label, name string) *Filter {
	return NewFilter(label, name).SetData(
		Option{ID: 1, Name: "Yes"},
		Option{ID: 0, Name: "No"},
	)
}

func (f *Filter) Label() string { return f.label }
func (f *Filter) Name() string  { return f.name }

func (f *Filter) SetURL(url string) *Filter {
	f.url = url
	return f
}

func (f *Filter) SetDependants(dependants ...string) *Filter {
	f.dependants = dependants
	return f
}

func (f *Filter) Values() any { return f.values }

func (f *Filter) SetValues(values any) *Filter {
	f.values = values
	return f
}

func (f *Filter) SetData(data ...Option) *Filter {
	f.data = data
	return f
}

func (f *Filter) Multiple() bool { return f.multiple }

func (f *Filter) SetMultiple(multiple bool) *Filter {
	f.multiple = multiple
	return f
}

func (f *Filter) Type() string { return f.typ }

// SetType installs the default last-30-days range for date filters that have
// no values yet.
func (f *Filter) SetType(typ string) *Filter {
	f.typ = typ
	if typ == DateType && f.values == nil {
		f.values = BasicDateStartAndEnd()
	}
	return f
}

func (f *Filter) Options() *FilterOptions { return f.options }

// SetOptions forces multi-value submission for range filters.
func (f *Filter) SetOptions(options *FilterOptions) *Filter {
	f.options = options
	if options != nil && options.Range {
		f.multiple = true
	}
	return f
}

func (f *Filter) Custom() PredicateFunc { return f.custom }

func (f *Filter) SetCustom(fn PredicateFunc) *Filter {
	f.custom = fn
	return f
}

// ExpectsList declares whether a custom predicate wants its value coerced to
// a list (true) or a scalar (false). This replaces inspecting the function
// signature at compile time.
func (f *Filter) SetExpectsList(expectsList bool) *Filter {
	f.expectsList = expectsList
	return f
}

// Field returns the single bound field, empty when Fields is used instead.
func (f *Filter) Field() string    { return f.field }
func (f *Filter) Fields() []string { return f.fields }

func (f *Filter) SetField(field string) *Filter {
	f.field = field
	return f
}

// SetFields binds the filter to several underlying fields; the submitted
// value is matched against any of them.
func (f *Filter) SetFields(fields ...string) *Filter {
	f.fields = fields
	return f
}

func (f *Filter) Expression() Expression { return f.expression }

func (f *Filter) SetExpression(expression Expression) *Filter {
	f.expression = expression
	return f
}

func (f *Filter) Group() string { return f.group }

func (f *Filter) SetGroup(group string) *Filter {
	f.group = group
	return f
}

func (f *Filter) GroupExpression() Expression { return f.groupExpression }

func (f *Filter) SetGroupExpression(expression Expression) *Filter {
	f.groupExpression = expression
	return f
}

// Session returns the session bucket override, empty to use the view's own.
func (f *Filter) Session() string { return f.session }

func (f *Filter) SetSession(session string) *Filter {
	f.session = session
	return f
}

// Serialize produces the client-facing shape of the filter.
func (f *Filter) Serialize() map[string]any {
	return map[string]any{
		"label":      f.label,
		"name":       f.name,
		"url":        emptyAsNil(f.url),
		"dependants": f.dependants,
		"values":     f.values,
		"multiple":   f.multiple,
		"type":       emptyAsNil(f.typ),
		"options":    f.options,
		"data":       f.data,
		"session":    emptyAsNil(f.session),
	}
}

// SerializeFilters maps a filter list to its wire representation.
func SerializeFilters(filters []*Filter) []map[string]any {
	out := make([]map[string]any, 0, len(filters))
	for _, f := range filters {
		out = append(out, f.Serialize())
	}
	return out
}
