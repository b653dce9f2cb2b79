package catalog

import (
	"context"
	"sort"
	"strings"

	"lothub/pkg/models"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// Query is one directory listing request. All filters are optional and
// ANDed; empty strings mean "no filter". Cursor is the ID of the last
// supplier of the previous page, zero for the first page.
type Query struct {
	Search   string
	Category string
	Region   string
	LotSize  string
	Cursor   int64
	Limit    int
}

type Page struct {
	Items      []models.Supplier `json:"items"`
	NextCursor *int64            `json:"next_cursor"`
}

// Directory answers paginated, filtered supplier listing requests.
//
// Ordering is home_rank descending with id ascending as tiebreak, the one
// deterministic order every page of a listing shares. The cursor marks a
// position in that order, not a row offset, so inserts between requests
// cannot skip or duplicate results.
type Directory struct {
	Store Store
}

func NewDirectory(store Store) *Directory {
	return &Directory{Store: store}
}

func (d *Directory) List(ctx context.Context, q Query) (Page, error) {
	all, err := d.Store.Suppliers(ctx)
	if err != nil {
		return Page{}, err
	}

	matched := make([]models.Supplier, 0, len(all))
	for _, s := range all {
		if q.matches(s) {
			matched = append(matched, s)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return sortsBefore(matched[i], matched[j])
	})

	if q.Cursor > 0 {
		boundary, err := d.Store.SupplierByID(ctx, q.Cursor)
		if err != nil {
			return Page{}, err
		}
		if boundary == nil {
			// stale or bogus cursor: past the end, not an error
			return Page{Items: []models.Supplier{}}, nil
		}
		matched = afterBoundary(matched, *boundary)
	}

	limit := q.Limit
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	page := Page{Items: matched}
	if len(matched) > limit {
		page.Items = matched[:limit]
		last := page.Items[limit-1].ID
		page.NextCursor = &last
	}
	return page, nil
}

func (q Query) matches(s models.Supplier) bool {
	if kw := strings.ToLower(strings.TrimSpace(q.Search)); kw != "" {
		haystack := strings.ToLower(s.Name + " " + s.Keywords + " " + s.Badge)
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	if q.Region != "" && !strings.EqualFold(q.Region, s.Region) {
		return false
	}
	if q.Category != "" && !containsFold(s.Categories, q.Category) {
		return false
	}
	if q.LotSize != "" && !containsFold(s.LotSizes, q.LotSize) {
		return false
	}
	return true
}

func containsFold(haystack []string, want string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, want) {
			return true
		}
	}
	return false
}

// sortsBefore is the single listing order: home_rank desc, then id asc.
func sortsBefore(a, b models.Supplier) bool {
	if a.HomeRank != b.HomeRank {
		return a.HomeRank > b.HomeRank
	}
	return a.ID < b.ID
}

func afterBoundary(sorted []models.Supplier, boundary models.Supplier) []models.Supplier {
	i := sort.Search(len(sorted), func(i int) bool {
		return sortsBefore(boundary, sorted[i])
	})
	return sorted[i:]
}
