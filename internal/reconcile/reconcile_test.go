package reconcile

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"lothub/pkg/models"
)

type memStore struct {
	suppliers []models.Supplier
	pages     map[string]*models.CategoryPage
	order     []string
	writes    int
}

func newMemStore() *memStore {
	return &memStore{
		suppliers: []models.Supplier{
			{ID: 1, Name: "B-Stock Inc."},
			{ID: 2, Name: "Liquidation.com"},
			{ID: 3, Name: "Via Trading"},
		},
		pages: map[string]*models.CategoryPage{},
	}
}

func (m *memStore) addPage(slug string, supplierIDs ...string) {
	m.pages[slug] = &models.CategoryPage{Slug: slug, SupplierIDs: supplierIDs}
	m.order = append(m.order, slug)
}

func (m *memStore) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	return m.suppliers, nil
}

func (m *memStore) SupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	for i := range m.suppliers {
		if m.suppliers[i].ID == id {
			return &m.suppliers[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) Reviews(ctx context.Context, supplierID int64) ([]models.Review, error) {
	return nil, nil
}

func (m *memStore) CategoryPages(ctx context.Context) ([]models.CategoryPage, error) {
	out := make([]models.CategoryPage, 0, len(m.order))
	for _, slug := range m.order {
		out = append(out, *m.pages[slug])
	}
	return out, nil
}

func (m *memStore) CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	return m.pages[slug], nil
}

func (m *memStore) UpdateCategoryPageSupplierIDs(ctx context.Context, slug string, orderedIDs []int64) error {
	page, ok := m.pages[slug]
	if !ok {
		return errors.New("no such page")
	}
	raw := make([]string, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		raw = append(raw, strconv.FormatInt(id, 10))
	}
	page.SupplierIDs = raw
	m.writes++
	return nil
}

func TestRun_RewritesDriftedPagesAndSkipsMatching(t *testing.T) {
	store := newMemStore()
	store.addPage("electronics", "3", "1")
	store.addPage("apparel", "1", "2")
	store.addPage("tools")

	r := &Runner{Store: store, Mutator: store, TargetNames: []string{"B-Stock", "Liquidation.com"}}
	res, err := r.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Updated != 2 || res.Skipped != 1 {
		t.Fatalf("updated=%d skipped=%d, want 2/1", res.Updated, res.Skipped)
	}
	for _, slug := range []string{"electronics", "apparel", "tools"} {
		got := store.pages[slug].SupplierIDs
		if len(got) != 2 || got[0] != "1" || got[1] != "2" {
			t.Errorf("page %s = %v, want [1 2]", slug, got)
		}
	}
}

func TestRun_SecondRunIsNoop(t *testing.T) {
	store := newMemStore()
	store.addPage("electronics", "3")
	store.addPage("apparel")

	r := &Runner{Store: store, Mutator: store, TargetNames: []string{"B-Stock", "Liquidation.com"}}

	first, err := r.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Updated != 2 {
		t.Fatalf("first run updated = %d, want 2", first.Updated)
	}

	second, err := r.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Updated != 0 || second.Skipped != 2 {
		t.Fatalf("second run updated=%d skipped=%d, want 0/2", second.Updated, second.Skipped)
	}
}

func TestRun_DryRunReportsWithoutWriting(t *testing.T) {
	store := newMemStore()
	store.addPage("electronics", "3")

	r := &Runner{Store: store, Mutator: store, TargetNames: []string{"Via Trading", "B-Stock"}}
	res, err := r.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Updated != 1 || store.writes != 0 {
		t.Fatalf("updated=%d writes=%d, want 1 reported and 0 written", res.Updated, store.writes)
	}
	if len(res.Changes) != 1 || res.Changes[0].Slug != "electronics" {
		t.Fatalf("changes = %+v, want one for electronics", res.Changes)
	}
	if got := store.pages["electronics"].SupplierIDs; len(got) != 1 || got[0] != "3" {
		t.Fatalf("page mutated during dry run: %v", got)
	}
}

func TestRun_UnresolvedTargetAbortsBeforeAnyWrite(t *testing.T) {
	store := newMemStore()
	store.addPage("electronics", "3")

	r := &Runner{Store: store, Mutator: store, TargetNames: []string{"B-Stock", "Select Liquidation"}}
	_, err := r.Run(context.Background(), false)
	if err == nil {
		t.Fatal("expected precondition failure for unresolved name")
	}
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
	if store.writes != 0 {
		t.Fatalf("writes = %d, want 0 after aborted run", store.writes)
	}
	if got := store.pages["electronics"].SupplierIDs; len(got) != 1 || got[0] != "3" {
		t.Fatalf("page mutated despite abort: %v", got)
	}
}

type brokenMutator struct{}

func (brokenMutator) UpdateCategoryPageSupplierIDs(ctx context.Context, slug string, orderedIDs []int64) error {
	return errors.New("disk full")
}

func TestRun_WriteFailuresAreNotAborts(t *testing.T) {
	store := newMemStore()
	store.addPage("electronics", "3")
	store.addPage("apparel", "3")

	r := &Runner{Store: store, Mutator: brokenMutator{}, TargetNames: []string{"B-Stock", "Liquidation.com"}}
	res, err := r.Run(context.Background(), false)
	if err == nil {
		t.Fatal("expected error when every write fails")
	}
	// writes were attempted, so this is a partial failure even with zero
	// pages updated or skipped
	if errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, must not be ErrAborted", err)
	}
	if res.Updated != 0 || res.Skipped != 0 {
		t.Fatalf("updated=%d skipped=%d, want 0/0", res.Updated, res.Skipped)
	}
}

func TestRun_TargetOrderFollowsNameOrder(t *testing.T) {
	store := newMemStore()
	store.addPage("general")

	r := &Runner{Store: store, Mutator: store, TargetNames: []string{"Via Trading", "B-Stock", "Liquidation.com"}}
	if _, err := r.Run(context.Background(), false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := store.pages["general"].SupplierIDs
	want := []string{"3", "1", "2"}
	if len(got) != len(want) {
		t.Fatalf("selection = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selection = %v, want %v", got, want)
		}
	}
}
