package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	querier   QueryInterceptor
	stores    *StoresStore
	brands    *BrandsStore
	users     *UsersStore
	viewState *ViewStateStore
}

func NewStore(db *sql.DB) *Store {
	q := newQueryInterceptor(db)
	return &Store{
		db:        db,
		querier:   q,
		stores:    NewStoresStore(db, q),
		brands:    NewBrandsStore(q),
		users:     NewUsersStore(q),
		viewState: NewViewStateStore(q),
	}
}

func (s *Store) Stores() *StoresStore {
	return s.stores
}

func (s *Store) Brands() *BrandsStore {
	return s.brands
}

func (s *Store) Users() *UsersStore {
	return s.users
}

func (s *Store) ViewState() *ViewStateStore {
	return s.viewState
}

// Querier exposes the logging query surface for callers that build their
// own SQL, such as the listing engine.
func (s *Store) Querier() QueryInterceptor {
	return s.querier
}

func (s *Store) Close() error {
	return s.db.Close()
}
