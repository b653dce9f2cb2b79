package suppliers_test

import (
	"context"
	"testing"

	"lothub/internal/suppliers"
	"lothub/internal/testutil"
	"lothub/pkg/models"
)

func seedRepo(t *testing.T) *suppliers.Repo {
	t.Helper()
	db := testutil.NewStore(t)
	repo := suppliers.NewRepo(db)
	ctx := context.Background()

	for _, tax := range []struct{ table, slug, name string }{
		{"regions", "us", "United States"},
		{"categories", "electronics", "Electronics"},
		{"categories", "apparel", "Apparel"},
		{"lot_sizes", "pallet", "Pallet"},
		{"lot_sizes", "truckload", "Truckload"},
	} {
		if err := repo.UpsertTaxonomy(ctx, tax.table, tax.slug, tax.name); err != nil {
			t.Fatalf("seed taxonomy: %v", err)
		}
	}
	return repo
}

func TestCreateAndReadBack(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.Supplier{
		Name:       "B-Stock Inc.",
		Slug:       "b-stock",
		Region:     "us",
		Categories: []string{"electronics", "apparel"},
		LotSizes:   []string{"truckload"},
		TrustScore: 88,
		HomeRank:   90,
		IsVerified: true,
		Keywords:   "retailer returns",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.SupplierByID(ctx, id)
	if err != nil {
		t.Fatalf("SupplierByID: %v", err)
	}
	if s == nil {
		t.Fatal("supplier not found after create")
	}
	if s.Name != "B-Stock Inc." || s.Region != "us" || !s.IsVerified || s.TrustScore != 88 {
		t.Fatalf("read back = %+v", s)
	}
	if len(s.Categories) != 2 || len(s.LotSizes) != 1 {
		t.Fatalf("taxonomy = %v / %v, want 2 categories and 1 lot size", s.Categories, s.LotSizes)
	}

	bySlug, err := repo.BySlug(ctx, "b-stock")
	if err != nil || bySlug == nil || bySlug.ID != id {
		t.Fatalf("BySlug = %+v, %v", bySlug, err)
	}
}

func TestSuppliersListingOrder(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	specs := []models.Supplier{
		{Name: "Low Rank", Slug: "low", HomeRank: 10},
		{Name: "Top Rank", Slug: "top", HomeRank: 95},
		{Name: "Also Top", Slug: "also-top", HomeRank: 95},
	}
	for _, s := range specs {
		if _, err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create %s: %v", s.Slug, err)
		}
	}

	all, err := repo.Suppliers(ctx)
	if err != nil {
		t.Fatalf("Suppliers: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// home_rank desc, then id asc: the two 95s in insertion order, then low
	if all[0].Slug != "top" || all[1].Slug != "also-top" || all[2].Slug != "low" {
		t.Fatalf("order = [%s %s %s]", all[0].Slug, all[1].Slug, all[2].Slug)
	}
}

func TestUpdateRewritesTaxonomyLinks(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.Supplier{
		Name: "Via Trading", Slug: "via-trading", Categories: []string{"apparel"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.Update(ctx, models.Supplier{
		ID: id, Name: "Via Trading", Slug: "via-trading",
		Categories: []string{"electronics"}, LotSizes: []string{"pallet"},
		HomeRank: 50,
	})
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}

	s, err := repo.SupplierByID(ctx, id)
	if err != nil || s == nil {
		t.Fatalf("SupplierByID: %+v, %v", s, err)
	}
	if len(s.Categories) != 1 || s.Categories[0] != "electronics" {
		t.Fatalf("categories = %v, want [electronics]", s.Categories)
	}
	if s.HomeRank != 50 {
		t.Fatalf("home_rank = %d, want 50", s.HomeRank)
	}
}

func TestCreateDropsUnseededTaxonomy(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.Supplier{
		Name:       "New Guy",
		Slug:       "new-guy",
		Region:     "atlantis",
		Categories: []string{"electronics", "totally-unseeded"},
		LotSizes:   []string{"totally-unseeded"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.SupplierByID(ctx, id)
	if err != nil || s == nil {
		t.Fatalf("SupplierByID: %+v, %v", s, err)
	}
	if len(s.Categories) != 1 || s.Categories[0] != "electronics" {
		t.Fatalf("categories = %v, want [electronics]", s.Categories)
	}
	if len(s.LotSizes) != 0 {
		t.Fatalf("lot sizes = %v, want none", s.LotSizes)
	}
	if s.Region != "" {
		t.Fatalf("region = %q, want empty for unseeded slug", s.Region)
	}
}

func TestMissingSupplierIsNilNotError(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	s, err := repo.SupplierByID(ctx, 12345)
	if err != nil {
		t.Fatalf("SupplierByID: %v", err)
	}
	if s != nil {
		t.Fatalf("got %+v, want nil", s)
	}

	s, err = repo.BySlug(ctx, "nope")
	if err != nil || s != nil {
		t.Fatalf("BySlug = %+v, %v; want nil, nil", s, err)
	}
}
