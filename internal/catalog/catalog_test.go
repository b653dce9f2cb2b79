package catalog

import (
	"context"

	"lothub/pkg/models"
)

// fakeStore serves engine tests without a database.
type fakeStore struct {
	suppliers []models.Supplier
	reviews   map[int64][]models.Review
	pages     []models.CategoryPage
}

func (f *fakeStore) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	return f.suppliers, nil
}

func (f *fakeStore) SupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	for i := range f.suppliers {
		if f.suppliers[i].ID == id {
			return &f.suppliers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Reviews(ctx context.Context, supplierID int64) ([]models.Review, error) {
	return f.reviews[supplierID], nil
}

func (f *fakeStore) CategoryPages(ctx context.Context) ([]models.CategoryPage, error) {
	return f.pages, nil
}

func (f *fakeStore) CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	for i := range f.pages {
		if f.pages[i].Slug == slug {
			return &f.pages[i], nil
		}
	}
	return nil, nil
}
