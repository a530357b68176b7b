package listing

import (
	"errors"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

var errEmptyBetween = errors.New("empty between value")

// SoftDeletePolicy controls the automatic not-deleted clause appended when no
// filter handled soft deletion explicitly.
type SoftDeletePolicy int

const (
	// SoftDeleteNone: the entity has no soft-delete flag.
	SoftDeleteNone SoftDeletePolicy = iota
	// SoftDeleteHide: restrict to non-deleted rows unless a filter bound to
	// the soft-delete field received a value.
	SoftDeleteHide
	// SoftDeleteShow: the entity has the flag but opts out of the clause.
	SoftDeleteShow
)

// Relation declares a joinable relation for dotted search/sort paths. Keys in
// the view model's relation map are dotted prefixes ("brand",
// "brand.owner"); each hop is left-joined at most once per query.
type Relation struct {
	Table string
	Alias string
	On    string
}

// Compiler turns filter descriptors, search terms and sort state into
// squirrel predicates over one view's base query. A compiler is built per
// request and carries the request-scoped flags the pipeline steps share.
type Compiler struct {
	alias      string
	user       CurrentUser
	softDelete SoftDeletePolicy
	relations  map[string]Relation

	keywordSearch bool
	joined        map[string]bool
	now           func() time.Time
}

func NewCompiler(alias string, user CurrentUser, softDelete SoftDeletePolicy, relations map[string]Relation) *Compiler {
	return &Compiler{
		alias:      alias,
		user:       user,
		softDelete: softDelete,
		relations:  relations,
		joined:     make(map[string]bool),
		now:        time.Now,
	}
}

// KeywordSearch reports whether this request degenerated to a keyword lookup,
// which makes declarative filters inert.
func (c *Compiler) KeywordSearch() bool { return c.keywordSearch }

// SetKeywordSearch marks the request as keyword-driven before filters are
// applied; the pagination engine sets it when a search term is present.
func (c *Compiler) SetKeywordSearch(on bool) { c.keywordSearch = on }

type pendingFilter struct {
	filter *Filter
	value  any
	data   map[string]any
}

// ApplyFilters compiles the filter list against the submitted values and
// attaches the resulting predicate tree to the builder.
func (c *Compiler) ApplyFilters(b sq.SelectBuilder, filters []*Filter, data map[string]any) (sq.SelectBuilder, error) {
	softDeleteHandled := false
	var pred sq.Sqlizer
	groupOrder := []string{}
	groups := map[string][]pendingFilter{}

	impliedDate := map[string]bool{}
	for _, f := range filters {
		if f.Type() == DateType && !f.Options().HasRangeOption(DateEmpty.Name) {
			impliedDate[f.Name()] = true
		}
	}

	for _, f := range filters {
		name := f.Name()
		if f.Field() == SoftDeletedField && !isEmptyValue(data[name]) {
			softDeleteHandled = true
		}
		if f.Expression() == "" {
			return b, srvErrors.NewFilterConfigurationError(name)
		}
		if f.Expression() == ExpressionNone {
			continue
		}
		if isEmptyValue(data[name]) && impliedDate[name] {
			now := c.now().Format(dateFormat)
			if f.Expression() == ExpressionBetween {
				data[name] = []any{now}
			} else {
				data[name] = now
			}
		}
		value, ok := data[name]
		if !ok {
			continue
		}
		if isEmptyValue(value) && !isIntegerZero(value) {
			continue
		}
		if f.Group() != "" {
			groupName := f.Group()
			if _, seen := groups[groupName]; !seen {
				groupOrder = append(groupOrder, groupName)
			}
			groups[groupName] = append(groups[groupName], pendingFilter{filter: f, value: value, data: data})
			continue
		}
		var contribution sq.Sqlizer
		var attachOr bool
		b, contribution, attachOr = c.processFilter(b, f, value, data)
		pred = attach(pred, contribution, attachOr)
	}

	for _, groupName := range groupOrder {
		joinExpression := ExpressionAnd
		var members []sq.Sqlizer
		for _, pending := range groups[groupName] {
			if pending.filter.GroupExpression() != "" {
				joinExpression = pending.filter.GroupExpression()
			}
			var contribution sq.Sqlizer
			b, contribution, _ = c.processFilter(b, pending.filter, pending.value, pending.data)
			if contribution != nil {
				members = append(members, contribution)
			}
		}
		if len(members) == 0 {
			continue
		}
		var groupPred sq.Sqlizer
		if joinExpression == ExpressionOr {
			groupPred = sq.Or(members)
		} else {
			groupPred = sq.And(members)
		}
		// Groups always attach to the outer query under AND; the group
		// expression only joins the members among themselves.
		pred = attach(pred, groupPred, false)
	}

	if !softDeleteHandled && c.softDelete == SoftDeleteHide {
		pred = attach(pred, sq.Eq{c.qualify(SoftDeletedField): false}, false)
	}
	if pred != nil {
		b = b.Where(pred)
	}
	return b, nil
}

// processFilter builds one filter's predicate contribution. Custom filters
// receive the builder and contribute to it directly. The boolean result
// reports whether the contribution attaches with OR instead of AND.
func (c *Compiler) processFilter(b sq.SelectBuilder, f *Filter, value any, data map[string]any) (sq.SelectBuilder, sq.Sqlizer, bool) {
	if c.keywordSearch && f.Field() != SoftDeletedField {
		return b, nil, false
	}
	switch f.Expression() {
	case ExpressionAnd, ExpressionOr:
		attachOr := f.Expression() == ExpressionOr
		if fields := f.Fields(); len(fields) > 0 {
			return b, c.orAcrossFields(fields, value), attachOr
		}
		return b, eqOrIn(c.qualify(f.Field()), value), attachOr
	case ExpressionListAnd, ExpressionListOr:
		attachOr := f.Expression() == ExpressionListOr
		return b, sq.Eq{c.qualify(f.Field()): toIntList(value)}, attachOr
	case ExpressionBetween:
		a, z, err := betweenPair(value)
		if err != nil {
			// Malformed range input drops this one filter, not the request.
			return b, nil, false
		}
		if f.Type() == DateType {
			a, z = c.dateBounds(a, z)
		}
		col := c.qualify(f.Field())
		return b, sq.Expr(col+" BETWEEN ? AND ?", a, z), false
	case ExpressionCustom:
		if f.Custom() == nil {
			return b, nil, false
		}
		if f.Type() == DateType {
			a, z, err := betweenPair(value)
			if err != nil {
				return b, nil, false
			}
			da, dz := c.dateBounds(a, z)
			return f.Custom()(c.alias, b, []any{da, dz}, data, f, c.user), nil, false
		}
		return f.Custom()(c.alias, b, coerceForCustom(value, f.expectsList), data, f, c.user), nil, false
	default:
		return b, nil, false
	}
}

func (c *Compiler) orAcrossFields(fields []string, value any) sq.Sqlizer {
	members := make([]sq.Sqlizer, 0, len(fields))
	for _, field := range fields {
		members = append(members, eqOrIn(c.qualify(field), value))
	}
	return sq.Or(members)
}

func (c *Compiler) qualify(field string) string {
	if strings.Contains(field, ".") {
		return field
	}
	return c.alias + "." + field
}

// dateBounds floors a to local midnight and ceils b to 23:59:59 in the
// current user's timezone, returning UTC timestamp strings.
func (c *Compiler) dateBounds(a, b any) (string, string) {
	loc := time.Local
	if c.user != nil && c.user.Location() != nil {
		loc = c.user.Location()
	}
	start := midnight(parseDateValue(a, loc, c.now))
	end := endOfDay(parseDateValue(b, loc, c.now))
	return start.UTC().Format(dateFormat), end.UTC().Format(dateFormat)
}

func parseDateValue(v any, loc *time.Location, now func() time.Time) time.Time {
	s := strings.TrimSpace(toString(v))
	for _, layout := range []string{dateFormat, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return now().In(loc)
}

func eqOrIn(col string, value any) sq.Sqlizer {
	if list, ok := asList(value); ok {
		return sq.Eq{col: list}
	}
	return sq.Eq{col: value}
}

// betweenPair normalizes a submitted value into a closed (a, b) range: a
// single value becomes (a, a), an empty submission is an error the caller
// swallows.
func betweenPair(value any) (any, any, error) {
	list, ok := asList(value)
	if !ok {
		list = []any{value}
	}
	switch len(list) {
	case 0:
		return nil, nil, errEmptyBetween
	case 1:
		return list[0], list[0], nil
	default:
		return list[0], list[1], nil
	}
}

// toIntList flattens list submissions, splitting comma-joined entries and
// coercing each to an integer.
func toIntList(value any) []int {
	list, ok := asList(value)
	if !ok {
		list = []any{value}
	}
	var out []int
	for _, item := range list {
		switch v := item.(type) {
		case string:
			for _, part := range strings.Split(v, ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					out = append(out, n)
				}
			}
		case float64:
			out = append(out, int(v))
		case int:
			out = append(out, v)
		}
	}
	return out
}

func coerceForCustom(value any, expectsList bool) any {
	list, isList := asList(value)
	if expectsList && !isList {
		return []any{value}
	}
	if !expectsList && isList {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return value
}

func attach(pred, contribution sq.Sqlizer, attachOr bool) sq.Sqlizer {
	if contribution == nil {
		return pred
	}
	if pred == nil {
		return contribution
	}
	if attachOr {
		return sq.Or{pred, contribution}
	}
	return sq.And{pred, contribution}
}

// asList normalizes the submitted value shapes JSON decoding produces.
func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// isEmptyValue mirrors the loose emptiness the filter contract promises:
// nil, "", "0", false, empty lists and numeric zero are all empty. A numeric
// zero is put back by isIntegerZero at the call site, since status=0 is a
// legitimate filter value.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == "" || v == "0"
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case []int:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func isIntegerZero(value any) bool {
	switch v := value.(type) {
	case int:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return strconv.FormatFloat(toFloat(v), 'f', -1, 64)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
