package suppliers

import (
	"context"

	"lothub/internal/catalog"
	"lothub/internal/pages"
	"lothub/internal/reviews"
	"lothub/pkg/models"
)

// CatalogStore stitches the feature repos into the engine's read interface.
type CatalogStore struct {
	SupplierRepo *Repo
	ReviewRepo   *reviews.Repo
	PageRepo     *pages.Repo
}

var _ catalog.Store = (*CatalogStore)(nil)

func NewCatalogStore(s *Repo, rv *reviews.Repo, p *pages.Repo) *CatalogStore {
	return &CatalogStore{SupplierRepo: s, ReviewRepo: rv, PageRepo: p}
}

func (cs *CatalogStore) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	return cs.SupplierRepo.Suppliers(ctx)
}

func (cs *CatalogStore) SupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	return cs.SupplierRepo.SupplierByID(ctx, id)
}

func (cs *CatalogStore) Reviews(ctx context.Context, supplierID int64) ([]models.Review, error) {
	return cs.ReviewRepo.Reviews(ctx, supplierID)
}

func (cs *CatalogStore) CategoryPages(ctx context.Context) ([]models.CategoryPage, error) {
	return cs.PageRepo.CategoryPages(ctx)
}

func (cs *CatalogStore) CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	return cs.PageRepo.CategoryPage(ctx, slug)
}
