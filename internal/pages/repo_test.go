package pages_test

import (
	"context"
	"testing"

	"lothub/internal/pages"
	"lothub/internal/testutil"
	"lothub/pkg/models"
)

func TestUpsertAndReadBack(t *testing.T) {
	repo := pages.NewRepo(testutil.NewStore(t))
	ctx := context.Background()

	err := repo.Upsert(ctx, models.CategoryPage{
		Slug:          "amazon-returns",
		TopicCategory: "retailer",
		SupplierIDs:   []string{"3", "1"},
		Title:         "Amazon Return Pallets",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	p, err := repo.CategoryPage(ctx, "amazon-returns")
	if err != nil {
		t.Fatalf("CategoryPage: %v", err)
	}
	if p == nil {
		t.Fatal("page not found after upsert")
	}
	if p.TopicCategory != "retailer" || p.Title != "Amazon Return Pallets" {
		t.Fatalf("read back = %+v", p)
	}
	if len(p.SupplierIDs) != 2 || p.SupplierIDs[0] != "3" || p.SupplierIDs[1] != "1" {
		t.Fatalf("supplier_ids = %v, want [3 1] in order", p.SupplierIDs)
	}
}

func TestUpdateSupplierIDsPreservesOrder(t *testing.T) {
	repo := pages.NewRepo(testutil.NewStore(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, models.CategoryPage{Slug: "electronics"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.UpdateCategoryPageSupplierIDs(ctx, "electronics", []int64{7, 2, 5}); err != nil {
		t.Fatalf("UpdateCategoryPageSupplierIDs: %v", err)
	}

	p, err := repo.CategoryPage(ctx, "electronics")
	if err != nil || p == nil {
		t.Fatalf("CategoryPage: %+v, %v", p, err)
	}
	want := []string{"7", "2", "5"}
	if len(p.SupplierIDs) != 3 {
		t.Fatalf("supplier_ids = %v, want %v", p.SupplierIDs, want)
	}
	for i := range want {
		if p.SupplierIDs[i] != want[i] {
			t.Fatalf("supplier_ids = %v, want %v", p.SupplierIDs, want)
		}
	}
}

func TestUpdateSupplierIDsUnknownPage(t *testing.T) {
	repo := pages.NewRepo(testutil.NewStore(t))

	err := repo.UpdateCategoryPageSupplierIDs(context.Background(), "missing", []int64{1})
	if err == nil {
		t.Fatal("expected error for unknown page")
	}
}

func TestMissingPageIsNilNotError(t *testing.T) {
	repo := pages.NewRepo(testutil.NewStore(t))

	p, err := repo.CategoryPage(context.Background(), "missing")
	if err != nil {
		t.Fatalf("CategoryPage: %v", err)
	}
	if p != nil {
		t.Fatalf("got %+v, want nil", p)
	}
}

func TestEmptySelectionRoundtrips(t *testing.T) {
	repo := pages.NewRepo(testutil.NewStore(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, models.CategoryPage{Slug: "general"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	p, err := repo.CategoryPage(ctx, "general")
	if err != nil || p == nil {
		t.Fatalf("CategoryPage: %+v, %v", p, err)
	}
	if len(p.SupplierIDs) != 0 {
		t.Fatalf("supplier_ids = %v, want empty", p.SupplierIDs)
	}
}
