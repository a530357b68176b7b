package viewmodels

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/pkg/listing"
)

// StoreViewModel drives the admin stores table.
type StoreViewModel struct{}

func NewStoreViewModel() *StoreViewModel {
	return &StoreViewModel{}
}

func (*StoreViewModel) Alias() string         { return "s" }
func (*StoreViewModel) SessionBucket() string { return "admin_stores" }

func (*StoreViewModel) HasAccess(user listing.CurrentUser) bool {
	u, ok := user.(*models.User)
	return ok && u.HasRole(models.RoleAdmin)
}

func (*StoreViewModel) Filters() []*listing.Filter {
	return []*listing.Filter{
		listing.NewFilter("Brand", "brand").
			SetURL("/api/filters/brands").
			SetField("brand_id").
			SetMultiple(true).
			SetExpression(listing.ExpressionAnd),
		listing.NewFilter("Status", "status").
			SetField("status").
			SetMultiple(true).
			SetData(StoreStatusOptions()...).
			SetExpression(listing.ExpressionAnd),
	}
}

func (*StoreViewModel) Columns() []*listing.Column {
	return []*listing.Column{
		listing.NewColumn("Name", "center", true, "name").SetDefaultASC(),
		listing.NewColumn("Brand", "center", true, "brand").
			SetCustom(func(_ string, b sq.SelectBuilder, direction string) sq.SelectBuilder {
				return b.OrderBy("b.name " + direction)
			}),
		listing.NewColumn("Industry", "center", true, "industry"),
		listing.NewColumn("Status", "center", true, "status"),
		listing.ActionColumn(),
	}
}

func (*StoreViewModel) SearchFields() []listing.SearchField {
	return []listing.SearchField{
		listing.FieldName("name"),
		listing.FieldName("api_id"),
		listing.FieldName("b.name"),
	}
}

// Relations is empty; the brand join is part of the base query so the
// brand column can always render.
func (*StoreViewModel) Relations() map[string]listing.Relation { return nil }

func (*StoreViewModel) SoftDelete() listing.SoftDeletePolicy { return listing.SoftDeleteNone }

func (*StoreViewModel) BaseQuery() sq.SelectBuilder {
	return sq.Select("s.id", "s.name", "COALESCE(b.name, '')", "COALESCE(s.industry, '')", "s.status").
		From("stores s").
		LeftJoin("brands b ON b.id = s.brand_id")
}

func (*StoreViewModel) ScanRow(rows *sql.Rows) (map[string]any, error) {
	var (
		id                    int64
		name, brand, industry string
		status                int
	)
	if err := rows.Scan(&id, &name, &brand, &industry, &status); err != nil {
		return nil, err
	}
	return map[string]any{
		"id":       id,
		"name":     name,
		"brand":    brand,
		"industry": industry,
		"status":   status,
		"statuses": StoreStatusOptions(),
	}, nil
}

func (*StoreViewModel) ExportLimit() int { return 0 }

// StoreStatusOptions is the status select mapping shared by the status
// filter and each rendered row.
func StoreStatusOptions() []listing.Option {
	statuses := models.StoreStatuses()
	options := make([]listing.Option, len(statuses))
	for i, status := range statuses {
		options[i] = listing.Option{ID: int(status), Name: status.Name()}
	}
	return options
}
