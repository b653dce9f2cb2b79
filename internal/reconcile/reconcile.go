package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lothub/internal/catalog"
)

// ErrAborted marks failures that happen before any page write is attempted
// (unresolvable target names, catalog load errors). Callers can tell such a
// run apart from one whose page writes failed.
var ErrAborted = errors.New("reconcile aborted")

// Runner rewrites every category page's pinned supplier selection to match
// the target set. It is an operator maintenance tool, not a request-path
// component: idempotent, safe to re-run, safe to abort between pages.
type Runner struct {
	Store       catalog.Store
	Mutator     catalog.Mutator
	TargetNames []string
}

type Change struct {
	Slug   string
	Before []string
	After  []int64
}

type Result struct {
	Updated int
	Skipped int
	Changes []Change
}

// Run resolves the target names against the current catalog and brings every
// category page's supplier_ids in line with the resolved ordered IDs.
//
// If any target name fails to resolve, Run aborts before touching a single
// page: a partial target set must never be written. With dryRun set, changes
// are reported and counted but nothing is written. Page writes are
// independent; a failed write is recorded and the run moves on.
func (r *Runner) Run(ctx context.Context, dryRun bool) (Result, error) {
	target, err := r.resolveTarget(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	pages, err := r.Store.CategoryPages(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: load category pages: %w", ErrAborted, err)
	}

	var res Result
	var writeErrs []error
	for _, page := range pages {
		if selectionEqual(page.SupplierIDs, target) {
			res.Skipped++
			continue
		}

		if !dryRun {
			if err := r.Mutator.UpdateCategoryPageSupplierIDs(ctx, page.Slug, target); err != nil {
				writeErrs = append(writeErrs, fmt.Errorf("update %s: %w", page.Slug, err))
				continue
			}
		}
		res.Updated++
		res.Changes = append(res.Changes, Change{Slug: page.Slug, Before: page.SupplierIDs, After: target})
	}

	return res, errors.Join(writeErrs...)
}

// resolveTarget maps the configured names to supplier IDs, in name order.
// Every name must resolve; anything less is a hard precondition failure.
func (r *Runner) resolveTarget(ctx context.Context) ([]int64, error) {
	if len(r.TargetNames) == 0 {
		return nil, errors.New("no target supplier names configured")
	}

	all, err := r.Store.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	ids := make([]int64, 0, len(r.TargetNames))
	var missing []string
	for _, name := range r.TargetNames {
		s := catalog.MatchName(name, all)
		if s == nil {
			missing = append(missing, name)
			continue
		}
		ids = append(ids, s.ID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unresolved target names: %s", strings.Join(missing, ", "))
	}
	return ids, nil
}

// selectionEqual compares a stored selection (ID strings) to the target IDs
// by order and value. Unparsable entries never equal a target ID.
func selectionEqual(current []string, target []int64) bool {
	if len(current) != len(target) {
		return false
	}
	for i, raw := range current {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id != target[i] {
			return false
		}
	}
	return true
}
