package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/retailops/backoffice/pkg/listing"
)

// ViewStateStore persists per-user listing state (filters, search terms,
// paging and sort order) so views reopen where the user left them.
type ViewStateStore struct {
	db QueryInterceptor
}

func NewViewStateStore(db QueryInterceptor) *ViewStateStore {
	return &ViewStateStore{db: db}
}

func (s *ViewStateStore) Get(ctx context.Context, userID int64, key string) (string, error) {
	query, args, err := sq.Select("state_value").
		From("view_state").
		Where(sq.Eq{"user_id": userID, "state_key": key}).
		ToSql()
	if err != nil {
		return "", err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *ViewStateStore) Set(ctx context.Context, userID int64, key, value string) error {
	query, args, err := sq.Insert("view_state").
		Columns("user_id", "state_key", "state_value").
		Values(userID, key, value).
		Suffix("ON CONFLICT (user_id, state_key) DO UPDATE SET state_value = EXCLUDED.state_value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// ForUser scopes the store to one user, satisfying listing.StateStore.
func (s *ViewStateStore) ForUser(userID int64) listing.StateStore {
	return &userViewState{store: s, userID: userID}
}

type userViewState struct {
	store  *ViewStateStore
	userID int64
}

func (u *userViewState) Get(ctx context.Context, key string) (string, error) {
	return u.store.Get(ctx, u.userID, key)
}

func (u *userViewState) Set(ctx context.Context, key, value string) error {
	return u.store.Set(ctx, u.userID, key, value)
}
