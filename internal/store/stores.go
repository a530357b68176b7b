package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/retailops/backoffice/internal/models"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

type StoresStore struct {
	sql *sql.DB
	db  QueryInterceptor
}

func NewStoresStore(sqlDB *sql.DB, db QueryInterceptor) *StoresStore {
	return &StoresStore{sql: sqlDB, db: db}
}

var storeSelectColumns = []string{
	"s.id", "s.name", "s.brand_id", "COALESCE(b.name, '')",
	"COALESCE(s.industry, '')", "s.status", "s.api_id",
	"s.facebook_verified", "COALESCE(s.facebook_id, '')",
	"COALESCE(s.facebook_page_name, '')", "COALESCE(s.facebook_url, '')",
	"s.google_verified", "COALESCE(s.google_place_id, '')",
	"COALESCE(s.google_location_id, '')", "COALESCE(s.google_maps_url, '')",
	"s.trip_advisor_verified", "COALESCE(s.trip_advisor_id, '')",
	"COALESCE(s.trip_advisor_partner_property_id, '')", "COALESCE(s.trip_advisor_url, '')",
	"s.zomato_verified", "COALESCE(s.zomato_id, '')", "COALESCE(s.zomato_url, '')",
	"s.instagram_verified", "COALESCE(s.instagram_id, '')", "COALESCE(s.instagram_url, '')",
	"s.latitude", "s.longitude", "s.created_at", "s.updated_at",
}

// FindByAPIID loads a store, including its brand name, by the external
// identifier imports match against.
func (s *StoresStore) FindByAPIID(ctx context.Context, apiID string) (*models.Store, error) {
	query, args, err := sq.Select(storeSelectColumns...).
		From("stores s").
		LeftJoin("brands b ON b.id = s.brand_id").
		Where(sq.Eq{"s.api_id": apiID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	store, err := scanStore(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("store")
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ExportQuery is the base select exports compile their filters onto. It
// uses the same aliases as the stores list view.
func (s *StoresStore) ExportQuery() sq.SelectBuilder {
	return sq.Select(storeSelectColumns...).
		From("stores s").
		LeftJoin("brands b ON b.id = s.brand_id")
}

// ScanStoreRow reads one ExportQuery result row.
func ScanStoreRow(rows *sql.Rows) (*models.Store, error) {
	return scanStore(rows)
}

// SaveBatch persists the given stores in a single transaction. New stores
// (zero ID) are inserted and receive their generated ID; the rest are
// updated in place. Imports call this once per flushed batch, so each batch
// commits independently of any later failure.
func (s *StoresStore) SaveBatch(ctx context.Context, stores []*models.Store) error {
	if len(stores) == 0 {
		return nil
	}

	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting batch transaction: %w", err)
	}

	for _, store := range stores {
		if store.ID == 0 {
			err = insertStore(ctx, tx, store)
		} else {
			err = updateStore(ctx, tx, store)
		}
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func insertStore(ctx context.Context, tx *sql.Tx, store *models.Store) error {
	query, args, err := sq.Insert("stores").
		Columns(
			"name", "brand_id", "industry", "status", "api_id",
			"facebook_verified", "facebook_id", "facebook_page_name", "facebook_url",
			"google_verified", "google_place_id", "google_location_id", "google_maps_url",
			"trip_advisor_verified", "trip_advisor_id", "trip_advisor_partner_property_id", "trip_advisor_url",
			"zomato_verified", "zomato_id", "zomato_url",
			"instagram_verified", "instagram_id", "instagram_url",
			"latitude", "longitude",
		).
		Values(
			store.Name, store.BrandID, store.Industry, int(store.Status), store.APIID,
			store.FacebookVerified, store.FacebookID, store.FacebookPageName, store.FacebookURL,
			store.GoogleVerified, store.GooglePlaceID, store.GoogleLocationID, store.GoogleMapsURL,
			store.TripAdvisorVerified, store.TripAdvisorID, store.TripAdvisorPartnerPropertyID, store.TripAdvisorURL,
			store.ZomatoVerified, store.ZomatoID, store.ZomatoURL,
			store.InstagramVerified, store.InstagramID, store.InstagramURL,
			store.Latitude, store.Longitude,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return tx.QueryRowContext(ctx, query, args...).Scan(&store.ID)
}

func updateStore(ctx context.Context, tx *sql.Tx, store *models.Store) error {
	query, args, err := sq.Update("stores").
		SetMap(map[string]any{
			"name":                             store.Name,
			"brand_id":                         store.BrandID,
			"industry":                         store.Industry,
			"status":                           int(store.Status),
			"facebook_verified":                store.FacebookVerified,
			"facebook_id":                      store.FacebookID,
			"facebook_page_name":               store.FacebookPageName,
			"facebook_url":                     store.FacebookURL,
			"google_verified":                  store.GoogleVerified,
			"google_place_id":                  store.GooglePlaceID,
			"google_location_id":               store.GoogleLocationID,
			"google_maps_url":                  store.GoogleMapsURL,
			"trip_advisor_verified":            store.TripAdvisorVerified,
			"trip_advisor_id":                  store.TripAdvisorID,
			"trip_advisor_partner_property_id": store.TripAdvisorPartnerPropertyID,
			"trip_advisor_url":                 store.TripAdvisorURL,
			"zomato_verified":                  store.ZomatoVerified,
			"zomato_id":                        store.ZomatoID,
			"zomato_url":                       store.ZomatoURL,
			"instagram_verified":               store.InstagramVerified,
			"instagram_id":                     store.InstagramID,
			"instagram_url":                    store.InstagramURL,
			"latitude":                         store.Latitude,
			"longitude":                        store.Longitude,
		}).
		Set("updated_at", sq.Expr("current_timestamp")).
		Where(sq.Eq{"id": store.ID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func scanStore(row interface{ Scan(dest ...any) error }) (*models.Store, error) {
	var store models.Store
	var status int
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&store.ID, &store.Name, &store.BrandID, &store.BrandName,
		&store.Industry, &status, &store.APIID,
		&store.FacebookVerified, &store.FacebookID,
		&store.FacebookPageName, &store.FacebookURL,
		&store.GoogleVerified, &store.GooglePlaceID,
		&store.GoogleLocationID, &store.GoogleMapsURL,
		&store.TripAdvisorVerified, &store.TripAdvisorID,
		&store.TripAdvisorPartnerPropertyID, &store.TripAdvisorURL,
		&store.ZomatoVerified, &store.ZomatoID, &store.ZomatoURL,
		&store.InstagramVerified, &store.InstagramID, &store.InstagramURL,
		&lat, &lng, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	store.Status = models.StoreStatus(status)
	if lat.Valid {
		store.Latitude = &lat.Float64
	}
	if lng.Valid {
		store.Longitude = &lng.Float64
	}
	return &store, nil
}
