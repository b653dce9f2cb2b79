package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"lothub/internal/pages"
	"lothub/internal/reconcile"
	"lothub/internal/reviews"
	"lothub/internal/suppliers"
	"lothub/pkg/database"
	"lothub/pkg/utils"
)

// Repairs drift between category pages and the house recommended set: every
// page whose pinned selection differs from the canonical ordered IDs gets
// rewritten. Run with -dry-run first to see what would change.
func main() {
	var (
		dryRun  = flag.Bool("dry-run", false, "report changes without writing")
		targets = flag.String("targets", "", "comma-separated supplier names overriding LOTHUB_RECOMMENDED")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	names := utils.LoadDirectoryConfig().Recommended
	if *targets != "" {
		names = nil
		for _, part := range strings.Split(*targets, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}

	supplierRepo := suppliers.NewRepo(db)
	pageRepo := pages.NewRepo(db)
	store := suppliers.NewCatalogStore(supplierRepo, reviews.NewRepo(db), pageRepo)

	runner := &reconcile.Runner{
		Store:       store,
		Mutator:     pageRepo,
		TargetNames: names,
	}

	mode := "write"
	if *dryRun {
		mode = "dry-run"
	}
	log.Printf("reconciling category pages (%s) against %d target names", mode, len(names))

	res, err := runner.Run(ctx, *dryRun)
	if errors.Is(err, reconcile.ErrAborted) {
		// resolution or load failure: nothing was touched
		log.Printf("%v", err)
		os.Exit(1)
	}

	for _, ch := range res.Changes {
		fmt.Printf("  %-30s %v -> %v\n", ch.Slug, ch.Before, ch.After)
	}
	fmt.Printf("updated: %d, skipped: %d\n", res.Updated, res.Skipped)

	if err != nil {
		// some page writes failed; the rest went through
		log.Printf("partial failure: %v", err)
		os.Exit(2)
	}
}
