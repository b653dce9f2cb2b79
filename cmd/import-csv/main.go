package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"lothub/internal/pages"
	"lothub/internal/suppliers"
	"lothub/pkg/database"
	"lothub/pkg/models"
)

func main() {
	var (
		taxonomyIn  = flag.String("taxonomy", "data/taxonomy.csv", "input CSV path for regions/categories/lot sizes")
		suppliersIn = flag.String("suppliers", "data/suppliers.csv", "input CSV path for suppliers")
		pagesIn     = flag.String("pages", "data/category_pages.csv", "input CSV path for category pages")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	supplierRepo := suppliers.NewRepo(db)
	pageRepo := pages.NewRepo(db)

	if err := importTaxonomy(ctx, supplierRepo, *taxonomyIn); err != nil {
		log.Fatalf("import taxonomy failed: %v", err)
	}
	if err := importSuppliers(ctx, supplierRepo, *suppliersIn); err != nil {
		log.Fatalf("import suppliers failed: %v", err)
	}
	if err := importPages(ctx, pageRepo, *pagesIn); err != nil {
		log.Fatalf("import category pages failed: %v", err)
	}

	log.Printf("✅ imported taxonomy, suppliers and category pages")
}

// taxonomy.csv: kind,slug,name where kind is region|category|lot_size
func importTaxonomy(ctx context.Context, repo *suppliers.Repo, path string) error {
	return eachRow(path, func(header map[string]int, row []string) error {
		kind := valueAt(header, row, "kind")
		slug := strings.ToLower(valueAt(header, row, "slug"))
		name := valueAt(header, row, "name")
		if slug == "" || name == "" {
			return nil
		}

		var table string
		switch kind {
		case "region":
			table = "regions"
		case "category":
			table = "categories"
		case "lot_size":
			table = "lot_sizes"
		default:
			return fmt.Errorf("unknown taxonomy kind %q for %s", kind, slug)
		}
		return repo.UpsertTaxonomy(ctx, table, slug, name)
	})
}

func importSuppliers(ctx context.Context, repo *suppliers.Repo, path string) error {
	return eachRow(path, func(header map[string]int, row []string) error {
		name := valueAt(header, row, "name")
		slug := strings.ToLower(valueAt(header, row, "slug"))
		if name == "" || slug == "" {
			return nil
		}

		s := models.Supplier{
			Name:        name,
			Slug:        slug,
			Region:      strings.ToLower(valueAt(header, row, "region")),
			Categories:  splitList(valueAt(header, row, "categories")),
			LotSizes:    splitList(valueAt(header, row, "lot_sizes")),
			TrustScore:  parseIntDefault(valueAt(header, row, "trust_score"), 0),
			HomeRank:    parseIntDefault(valueAt(header, row, "home_rank"), 0),
			IsVerified:  parseBool(valueAt(header, row, "is_verified")),
			IsScam:      parseBool(valueAt(header, row, "is_scam")),
			Website:     valueAt(header, row, "website"),
			Badge:       valueAt(header, row, "badge"),
			Keywords:    valueAt(header, row, "keywords"),
			Description: valueAt(header, row, "description"),
		}

		existing, err := repo.BySlug(ctx, slug)
		if err != nil {
			return err
		}
		if existing != nil {
			s.ID = existing.ID
			_, err = repo.Update(ctx, s)
			return err
		}
		_, err = repo.Create(ctx, s)
		return err
	})
}

// category_pages.csv: slug,topic_category,supplier_ids,title,intro where
// supplier_ids is a pipe-separated ordered list
func importPages(ctx context.Context, repo *pages.Repo, path string) error {
	return eachRow(path, func(header map[string]int, row []string) error {
		slug := strings.ToLower(valueAt(header, row, "slug"))
		if slug == "" {
			return nil
		}
		return repo.Upsert(ctx, models.CategoryPage{
			Slug:          slug,
			TopicCategory: valueAt(header, row, "topic_category"),
			SupplierIDs:   splitList(valueAt(header, row, "supplier_ids")),
			Title:         valueAt(header, row, "title"),
			Intro:         valueAt(header, row, "intro"),
		})
	})
}

func eachRow(path string, fn func(header map[string]int, row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		if err := fn(header, row); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
