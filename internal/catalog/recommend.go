package catalog

import (
	"context"
	"strconv"
	"strings"

	"lothub/pkg/models"
)

// Resolver turns a category page's configured supplier selection into the
// ordered supplier list to render. Recommended is the house default set,
// injected so call sites (and tests) control it instead of a package global.
type Resolver struct {
	Store       Store
	Recommended []string
}

func NewResolver(store Store, recommended []string) *Resolver {
	return &Resolver{Store: store, Recommended: recommended}
}

// Featured resolves the suppliers to feature on page.
//
// A non-empty page.SupplierIDs is a curated selection: entries are parsed to
// IDs, deduplicated by first occurrence, and fetched in exactly that order.
// Unparsable entries and IDs with no supplier are dropped silently.
//
// An empty selection falls back to the recommended set, resolved name by
// name through MatchName in the set's order. Names with no catalog match are
// dropped. An empty result is valid either way.
func (r *Resolver) Featured(ctx context.Context, page *models.CategoryPage) ([]models.Supplier, error) {
	if page == nil {
		return nil, nil
	}

	if len(page.SupplierIDs) > 0 {
		return r.byIDs(ctx, page.SupplierIDs)
	}
	return r.byRecommended(ctx)
}

func (r *Resolver) byIDs(ctx context.Context, raw []string) ([]models.Supplier, error) {
	seen := make(map[int64]bool, len(raw))
	out := make([]models.Supplier, 0, len(raw))

	for _, entry := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(entry), 10, 64)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true

		s, err := r.Store.SupplierByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *Resolver) byRecommended(ctx context.Context) ([]models.Supplier, error) {
	all, err := r.Store.Suppliers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Supplier, 0, len(r.Recommended))
	for _, name := range r.Recommended {
		if s := MatchName(name, all); s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}
