package listing

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

// SearchMode is the top-level combinator for multi-term searches.
type SearchMode string

const (
	SearchOr  SearchMode = "OR"
	SearchAnd SearchMode = "AND"
)

// KeywordsIdentifierField is the reserved searchable field: when present in
// a view's field specs, the search degenerates to an exact-match lookup on
// that field and declarative filters become inert for the request.
const KeywordsIdentifierField = "keywords_identifier"

// SearchField is one entry of a view's searchable-field list. Implemented by
// FieldName, FieldGroup, FieldFunc and FieldCondition.
type SearchField interface {
	isSearchField()
}

// FieldName is a plain column or a dotted relation path ("brand.name").
type FieldName string

func (FieldName) isSearchField() {}

// FieldGroup matches the search term against several columns concatenated
// with single spaces, optionally guarded by an extra raw condition.
type FieldGroup struct {
	Fields    []string
	Condition string
}

func (FieldGroup) isSearchField() {}

// FieldFunc delegates one field's contribution to the view model.
type FieldFunc func(alias string, b sq.SelectBuilder, term string) sq.SelectBuilder

func (FieldFunc) isSearchField() {}

// FieldCondition is a raw condition AND-ed onto every term's OR-group.
type FieldCondition string

func (FieldCondition) isSearchField() {}

// ApplySearch compiles a free-text search over the view's field specs. The
// raw term is split on '|' into independent terms, each OR-ed across all
// specs, and the per-term groups are OR-ed together. Only SearchOr is
// accepted; the AND mode has never been reachable and stays rejected.
func (c *Compiler) ApplySearch(b sq.SelectBuilder, fields []SearchField, searchTerm string, mode SearchMode) (sq.SelectBuilder, error) {
	if strings.TrimSpace(searchTerm) == "" {
		return b, nil
	}
	if len(fields) == 0 {
		return b, nil
	}
	if mode != SearchOr {
		return b, srvErrors.NewInvalidSearchModeError(string(mode))
	}

	var condition FieldCondition
	hasKeywordsIdentifier := false
	for _, spec := range fields {
		switch s := spec.(type) {
		case FieldCondition:
			condition = s
		case FieldName:
			if string(s) == KeywordsIdentifierField {
				hasKeywordsIdentifier = true
			}
		}
	}

	var termGroups []sq.Sqlizer
	for _, rawTerm := range strings.Split(strings.TrimSpace(searchTerm), "|") {
		term := strings.TrimSpace(stripWideRunes(rawTerm))
		var orGroup []sq.Sqlizer
		c.keywordSearch = false

		if hasKeywordsIdentifier {
			orGroup = append(orGroup, sq.Eq{c.qualify(KeywordsIdentifierField): term})
			c.keywordSearch = true
		} else {
			pattern := "%" + term + "%"
			for _, spec := range fields {
				switch s := spec.(type) {
				case FieldFunc:
					b = s(c.alias, b, term)
				case FieldGroup:
					if len(s.Fields) == 0 {
						return b, srvErrors.NewEmptySearchFieldGroupError()
					}
					var groupPred sq.Sqlizer
					b, groupPred = c.groupLike(b, s, pattern)
					orGroup = append(orGroup, groupPred)
				case FieldName:
					if string(s) == KeywordsIdentifierField {
						continue
					}
					var col string
					b, col = c.resolveFieldPath(b, string(s))
					orGroup = append(orGroup, sq.ILike{col: pattern})
				}
			}
		}
		if len(orGroup) == 0 {
			continue
		}
		var group sq.Sqlizer = sq.Or(orGroup)
		if condition != "" {
			group = sq.And{group, sq.Expr(c.qualify(string(condition)))}
		}
		termGroups = append(termGroups, group)
	}
	if len(termGroups) == 0 {
		return b, nil
	}
	return b.Where(sq.Or(termGroups)), nil
}

// groupLike concatenates the group's columns with single spaces and matches
// the whole phrase. Dotted members resolve through the relation map; the
// alias of the last resolved member qualifies an optional item condition.
func (c *Compiler) groupLike(b sq.SelectBuilder, group FieldGroup, pattern string) (sq.SelectBuilder, sq.Sqlizer) {
	lastAlias := c.alias
	parts := make([]string, 0, len(group.Fields))
	for _, field := range group.Fields {
		var col string
		b, col = c.resolveFieldPath(b, field)
		if idx := strings.LastIndex(col, "."); idx > 0 {
			lastAlias = col[:idx]
		}
		parts = append(parts, "COALESCE("+col+", '')")
	}
	concatenated := strings.Join(parts, " || ' ' || ")
	var pred sq.Sqlizer = sq.ILike{concatenated: pattern}
	if group.Condition != "" {
		pred = sq.And{pred, sq.Expr(lastAlias + "." + group.Condition)}
	}
	return b, pred
}

// resolveFieldPath joins the relation chain of a dotted path once per
// relation and returns the fully qualified column. Plain fields qualify with
// the view alias.
func (c *Compiler) resolveFieldPath(b sq.SelectBuilder, field string) (sq.SelectBuilder, string) {
	if !strings.Contains(field, ".") {
		return b, c.alias + "." + field
	}
	parts := strings.Split(field, ".")
	finalField := parts[len(parts)-1]
	finalAlias := c.alias
	for i := 1; i < len(parts); i++ {
		path := strings.Join(parts[:i], ".")
		rel, ok := c.relations[path]
		if !ok {
			// Unmapped relation paths pass through as raw qualified fields.
			return b, field
		}
		if !c.joined[path] {
			b = b.LeftJoin(rel.Table + " " + rel.Alias + " ON " + rel.On)
			c.joined[path] = true
		}
		finalAlias = rel.Alias
	}
	return b, finalAlias + "." + finalField
}

// stripWideRunes removes code points outside the basic multilingual plane,
// chiefly emoji pasted into search boxes.
func stripWideRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}
		return r
	}, s)
}
