package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/store"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

// StoreService holds store domain logic shared between imports and the
// admin endpoints.
type StoreService struct {
	brands *store.BrandsStore
	logger *zap.SugaredLogger
}

func NewStoreService(brands *store.BrandsStore) *StoreService {
	return &StoreService{
		brands: brands,
		logger: zap.S().Named("services.stores"),
	}
}

// DiscoverBrandByName resolves a brand by name, creating it when no brand
// with that name exists yet. Spreadsheet imports rely on this so a new
// brand column value never fails a row.
func (s *StoreService) DiscoverBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	brand, err := s.brands.FindByName(ctx, name)
	if err == nil {
		return brand, nil
	}
	if !srvErrors.IsResourceNotFoundError(err) {
		return nil, err
	}

	s.logger.Infow("creating brand discovered during import", "name", name)
	return s.brands.Create(ctx, name)
}
