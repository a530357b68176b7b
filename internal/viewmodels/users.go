package viewmodels

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/pkg/listing"
)

// UserViewModel drives the admin users table.
type UserViewModel struct{}

func NewUserViewModel() *UserViewModel {
	return &UserViewModel{}
}

func (*UserViewModel) Alias() string         { return "u" }
func (*UserViewModel) SessionBucket() string { return "admin_users" }

func (*UserViewModel) HasAccess(user listing.CurrentUser) bool {
	u, ok := user.(*models.User)
	return ok && u.HasRole(models.RoleAdmin)
}

func (*UserViewModel) Filters() []*listing.Filter {
	return []*listing.Filter{
		// Roles are stored as a JSON array, so role matching is a LIKE on
		// the encoded value rather than a field equality.
		listing.NewFilter("Primary Role", "primary-role").
			SetData(
				listing.Option{ID: models.RoleAdmin, Name: "Admin"},
				listing.Option{ID: models.RoleUser, Name: "User"},
			).
			SetSession("admin_users").
			SetMultiple(true).
			SetExpression(listing.ExpressionCustom).
			SetExpectsList(true).
			SetCustom(func(alias string, b sq.SelectBuilder, value any, _ map[string]any, _ *listing.Filter, _ listing.CurrentUser) sq.SelectBuilder {
				values, _ := value.([]any)
				if len(values) == 0 {
					return b
				}
				matches := make(sq.Or, 0, len(values))
				for _, v := range values {
					matches = append(matches, sq.Like{alias + ".roles": fmt.Sprintf("%%%v%%", v)})
				}
				return b.Where(matches)
			}),
		listing.YesNoFilter("Deleted", "deleted").
			SetField(listing.SoftDeletedField).
			SetExpression(listing.ExpressionAnd),
	}
}

func (*UserViewModel) Columns() []*listing.Column {
	return []*listing.Column{
		listing.NewColumn("Full Name", "start", true, "fullname").
			SetColumns("name", "surname").
			SetDefaultASC(),
		listing.NewColumn("Primary Role", "center", false, "role"),
		listing.ActionColumn(),
	}
}

func (*UserViewModel) SearchFields() []listing.SearchField {
	return []listing.SearchField{
		listing.FieldGroup{Fields: []string{"name", "surname"}},
		listing.FieldName("username"),
	}
}

func (*UserViewModel) Relations() map[string]listing.Relation { return nil }

func (*UserViewModel) SoftDelete() listing.SoftDeletePolicy { return listing.SoftDeleteHide }

func (*UserViewModel) BaseQuery() sq.SelectBuilder {
	return sq.Select("u.id", "u.name", "u.surname", "u.username", "u.roles").
		From("users u")
}

func (*UserViewModel) ScanRow(rows *sql.Rows) (map[string]any, error) {
	var (
		id                               int64
		name, surname, username, encoded string
	)
	if err := rows.Scan(&id, &name, &surname, &username, &encoded); err != nil {
		return nil, err
	}

	var roles []string
	if err := json.Unmarshal([]byte(encoded), &roles); err != nil {
		return nil, fmt.Errorf("decoding roles: %w", err)
	}
	user := models.User{Name: name, Surname: surname, Roles: roles}

	return map[string]any{
		"id":       id,
		"fullname": user.FullName(),
		"username": username,
		"role":     models.HumanizeRole(user.PrimaryRole()),
	}, nil
}

func (*UserViewModel) ExportLimit() int { return 0 }
