package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/retailops/backoffice/internal/models"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

type UsersStore struct {
	db QueryInterceptor
}

func NewUsersStore(db QueryInterceptor) *UsersStore {
	return &UsersStore{db: db}
}

var userColumns = []string{
	"id", "name", "surname", "username", "password",
	"roles", "timezone", "soft_deleted", "created_at",
}

// FindByUsername resolves an active user for login. Soft-deleted accounts
// are treated as absent.
func (s *UsersStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username, "soft_deleted": false}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return s.scanUser(s.db.QueryRowContext(ctx, query, args...))
}

func (s *UsersStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return s.scanUser(s.db.QueryRowContext(ctx, query, args...))
}

func (s *UsersStore) Create(ctx context.Context, user *models.User) error {
	roles, err := json.Marshal(user.Roles)
	if err != nil {
		return fmt.Errorf("encoding roles: %w", err)
	}

	query, args, err := sq.Insert("users").
		Columns("name", "surname", "username", "password", "roles", "timezone").
		Values(user.Name, user.Surname, user.Username, user.Password, string(roles), user.Timezone).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return s.db.QueryRowContext(ctx, query, args...).Scan(&user.ID)
}

func (s *UsersStore) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var roles string
	err := row.Scan(
		&user.ID, &user.Name, &user.Surname, &user.Username, &user.Password,
		&roles, &user.Timezone, &user.SoftDeleted, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(roles), &user.Roles); err != nil {
		return nil, fmt.Errorf("decoding roles: %w", err)
	}
	return &user, nil
}
