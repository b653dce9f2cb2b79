package catalog

import (
	"context"

	"lothub/pkg/models"
)

// Store is the engine's read-only view of the catalog. The SQL layer
// implements it for the server; tests substitute in-memory fakes.
type Store interface {
	Suppliers(ctx context.Context) ([]models.Supplier, error)
	SupplierByID(ctx context.Context, id int64) (*models.Supplier, error)
	Reviews(ctx context.Context, supplierID int64) ([]models.Review, error)
	CategoryPages(ctx context.Context) ([]models.CategoryPage, error)
	CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error)
}

// Mutator is the single write surface the reconciler uses. Nothing else in
// the engine mutates catalog state.
type Mutator interface {
	UpdateCategoryPageSupplierIDs(ctx context.Context, slug string, orderedIDs []int64) error
}
