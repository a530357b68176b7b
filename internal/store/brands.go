package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/retailops/backoffice/internal/models"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

type BrandsStore struct {
	db QueryInterceptor
}

func NewBrandsStore(db QueryInterceptor) *BrandsStore {
	return &BrandsStore{db: db}
}

func (s *BrandsStore) FindByName(ctx context.Context, name string) (*models.Brand, error) {
	query, args, err := sq.Select("id", "name").
		From("brands").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var brand models.Brand
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&brand.ID, &brand.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("brand")
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (s *BrandsStore) Create(ctx context.Context, name string) (*models.Brand, error) {
	query, args, err := sq.Insert("brands").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}

	brand := models.Brand{Name: name}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&brand.ID); err != nil {
		return nil, err
	}
	return &brand, nil
}

// List returns all brands ordered by name for filter option lists.
func (s *BrandsStore) List(ctx context.Context) ([]models.Brand, error) {
	query, args, err := sq.Select("id", "name").
		From("brands").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var brand models.Brand
		if err := rows.Scan(&brand.ID, &brand.Name); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}
