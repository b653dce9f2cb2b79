package catalog

import (
	"context"
	"testing"

	"lothub/pkg/models"
)

func directoryStore() *fakeStore {
	return &fakeStore{
		suppliers: []models.Supplier{
			{ID: 1, Name: "B-Stock Inc.", HomeRank: 90, Region: "us", Categories: []string{"electronics", "apparel"}, LotSizes: []string{"truckload"}},
			{ID: 2, Name: "Liquidation.com", HomeRank: 90, Region: "us", Categories: []string{"electronics"}, LotSizes: []string{"pallet"}},
			{ID: 3, Name: "Via Trading", HomeRank: 70, Region: "us", Categories: []string{"apparel"}, LotSizes: []string{"pallet", "case"}},
			{ID: 4, Name: "888 Lots", HomeRank: 70, Region: "us", Categories: []string{"general"}, LotSizes: []string{"case"}, Keywords: "amazon returns"},
			{ID: 5, Name: "Gem Wholesale", HomeRank: 40, Region: "uk", Categories: []string{"electronics"}, LotSizes: []string{"pallet"}, Badge: "EU shipping"},
		},
	}
}

func TestList_OrderIsHomeRankDescThenIDAsc(t *testing.T) {
	d := NewDirectory(directoryStore())

	page, err := d.List(context.Background(), Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []int64{1, 2, 3, 4, 5}
	if !equalIDs(ids(page.Items), want) {
		t.Fatalf("order = %v, want %v", ids(page.Items), want)
	}
	if page.NextCursor != nil {
		t.Fatalf("next_cursor = %d, want nil at end of set", *page.NextCursor)
	}
}

func TestList_CursorWalksWholeSetWithoutSkipsOrDups(t *testing.T) {
	d := NewDirectory(directoryStore())
	ctx := context.Background()

	var walked []int64
	q := Query{Limit: 2}
	for {
		page, err := d.List(ctx, q)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		walked = append(walked, ids(page.Items)...)
		if page.NextCursor == nil {
			break
		}
		q.Cursor = *page.NextCursor
	}
	if !equalIDs(walked, []int64{1, 2, 3, 4, 5}) {
		t.Fatalf("walked = %v, want [1 2 3 4 5]", walked)
	}
}

func TestList_CursorStableUnderConcurrentInsert(t *testing.T) {
	store := directoryStore()
	d := NewDirectory(store)
	ctx := context.Background()

	first, err := d.List(ctx, Query{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if first.NextCursor == nil {
		t.Fatal("expected a next cursor")
	}

	// a new top-ranked supplier lands between requests
	store.suppliers = append(store.suppliers, models.Supplier{ID: 6, Name: "Newcomer", HomeRank: 99})

	second, err := d.List(ctx, Query{Limit: 2, Cursor: *first.NextCursor})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// the insert sorts before the boundary, so page two is unchanged
	if !equalIDs(ids(second.Items), []int64{3, 4}) {
		t.Fatalf("page two = %v, want [3 4]", ids(second.Items))
	}
}

func TestList_RepeatedCallsAreIdempotent(t *testing.T) {
	d := NewDirectory(directoryStore())
	ctx := context.Background()
	q := Query{Category: "electronics", Limit: 2}

	a, err := d.List(ctx, q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	b, err := d.List(ctx, q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalIDs(ids(a.Items), ids(b.Items)) {
		t.Fatalf("items differ between identical calls: %v vs %v", ids(a.Items), ids(b.Items))
	}
	if (a.NextCursor == nil) != (b.NextCursor == nil) {
		t.Fatal("next_cursor presence differs between identical calls")
	}
	if a.NextCursor != nil && *a.NextCursor != *b.NextCursor {
		t.Fatalf("next_cursor differs: %d vs %d", *a.NextCursor, *b.NextCursor)
	}
}

func TestList_FiltersAreANDed(t *testing.T) {
	d := NewDirectory(directoryStore())

	page, err := d.List(context.Background(), Query{Category: "electronics", LotSize: "pallet", Region: "us"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !equalIDs(ids(page.Items), []int64{2}) {
		t.Fatalf("items = %v, want [2]", ids(page.Items))
	}
}

func TestList_SearchMatchesNameKeywordsAndBadge(t *testing.T) {
	d := NewDirectory(directoryStore())
	ctx := context.Background()

	cases := []struct {
		search string
		want   []int64
	}{
		{"b-stock", []int64{1}},
		{"amazon", []int64{4}},
		{"eu shipping", []int64{5}},
	}
	for _, tc := range cases {
		page, err := d.List(ctx, Query{Search: tc.search})
		if err != nil {
			t.Fatalf("List(%q): %v", tc.search, err)
		}
		if !equalIDs(ids(page.Items), tc.want) {
			t.Errorf("search %q = %v, want %v", tc.search, ids(page.Items), tc.want)
		}
	}
}

func TestList_UnknownFilterValueYieldsEmptyNotError(t *testing.T) {
	d := NewDirectory(directoryStore())

	page, err := d.List(context.Background(), Query{Category: "no-such-category"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 0 || page.NextCursor != nil {
		t.Fatalf("items = %v, want empty page", ids(page.Items))
	}
}

func TestList_StaleCursorYieldsEmptyPage(t *testing.T) {
	d := NewDirectory(directoryStore())

	page, err := d.List(context.Background(), Query{Cursor: 404})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("items = %v, want empty page for unknown cursor", ids(page.Items))
	}
}

func TestList_LimitDefaultsAndCaps(t *testing.T) {
	store := &fakeStore{}
	for i := int64(1); i <= 150; i++ {
		store.suppliers = append(store.suppliers, models.Supplier{ID: i, Name: "S"})
	}
	d := NewDirectory(store)
	ctx := context.Background()

	page, err := d.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != DefaultLimit {
		t.Fatalf("default page size = %d, want %d", len(page.Items), DefaultLimit)
	}

	page, err = d.List(ctx, Query{Limit: 1000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) != DefaultLimit {
		t.Fatalf("oversized limit page size = %d, want %d", len(page.Items), DefaultLimit)
	}
}
