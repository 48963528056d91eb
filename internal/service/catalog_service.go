package service

import (
	"context"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"go.uber.org/zap"
)

// CatalogStore is the catalog read access the service needs. Satisfied by
// store.Store.
type CatalogStore interface {
	GetSpareParts(ctx context.Context) ([]models.SparePart, error)
	GetSparePartByID(ctx context.Context, id string) (*models.SparePart, error)
}

// CatalogService serves the public spare-parts listing
type CatalogService struct {
	store  CatalogStore
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ListParts retrieves the full catalog
func (cs *CatalogService) ListParts(ctx context.Context) ([]models.SparePart, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListParts")
	defer span.End()

	return cs.store.GetSpareParts(ctx)
}

// GetPart retrieves one part with its full detail
func (cs *CatalogService) GetPart(ctx context.Context, id string) (*models.SparePart, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetPart")
	defer span.End()

	return cs.store.GetSparePartByID(ctx, id)
}
