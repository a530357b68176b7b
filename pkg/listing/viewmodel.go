package listing

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// ViewModel is the per-entity adapter the generic list, search, paginate and
// export machinery operates over. Implementations are stateless; one is
// resolved per request.
type ViewModel interface {
	// Alias is the query alias the compilers qualify plain fields with.
	Alias() string
	// SessionBucket names the persisted-state namespace for this view.
	SessionBucket() string
	// HasAccess gates the whole view for the current user.
	HasAccess(user CurrentUser) bool

	Filters() []*Filter
	Columns() []*Column
	SearchFields() []SearchField
	// Relations declares the joinable paths dotted search/sort fields use.
	Relations() map[string]Relation
	SoftDelete() SoftDeletePolicy

	// BaseQuery returns a fresh unfiltered select for this view.
	BaseQuery() sq.SelectBuilder
	// ScanRow shapes one result row into its client representation.
	ScanRow(rows *sql.Rows) (map[string]any, error)

	// ExportLimit caps export row counts; zero means unlimited.
	ExportLimit() int
}

// Querier is the subset of database/sql the listing engine needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
