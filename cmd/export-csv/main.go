package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lothub/internal/suppliers"
	"lothub/pkg/database"
)

func main() {
	var (
		suppliersOut = flag.String("suppliers", "data/suppliers.csv", "output CSV path for suppliers")
		reviewsOut   = flag.String("reviews", "data/reviews.csv", "output CSV path for reviews")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportSuppliers(ctx, db, *suppliersOut); err != nil {
		log.Fatalf("export suppliers failed: %v", err)
	}
	if err := exportReviews(ctx, db, *reviewsOut); err != nil {
		log.Fatalf("export reviews failed: %v", err)
	}

	log.Printf("✅ exported suppliers to %s and reviews to %s", *suppliersOut, *reviewsOut)
}

func exportSuppliers(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"name", "slug", "region", "categories", "lot_sizes", "trust_score",
		"home_rank", "is_verified", "is_scam", "website", "badge", "keywords", "description",
	}); err != nil {
		return err
	}

	// repo reads pull the category and lot size links along
	all, err := suppliers.NewRepo(db).Suppliers(ctx)
	if err != nil {
		return err
	}

	for _, s := range all {
		if err := w.Write([]string{
			s.Name,
			s.Slug,
			s.Region,
			strings.Join(s.Categories, "|"),
			strings.Join(s.LotSizes, "|"),
			strconv.Itoa(s.TrustScore),
			strconv.Itoa(s.HomeRank),
			boolField(s.IsVerified),
			boolField(s.IsScam),
			s.Website,
			s.Badge,
			s.Keywords,
			s.Description,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportReviews(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "supplier_id", "user_id", "rating",
		"accuracy", "logistics", "value", "communication",
		"text", "created_at",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, supplier_id, user_id, rating,
               accuracy, logistics, value, communication,
               text, created_at
        FROM reviews
        ORDER BY created_at DESC
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			supplierID int64
			userID     string
			rating     int64
			accuracy   sql.NullInt64
			logistics  sql.NullInt64
			value      sql.NullInt64
			comm       sql.NullInt64
			body       sql.NullString
			createdAt  sql.NullTime
		)

		if err := rows.Scan(&id, &supplierID, &userID, &rating,
			&accuracy, &logistics, &value, &comm, &body, &createdAt); err != nil {
			return err
		}

		created := ""
		if createdAt.Valid {
			created = createdAt.Time.Format(time.RFC3339)
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			strconv.FormatInt(supplierID, 10),
			userID,
			strconv.FormatInt(rating, 10),
			nullIntField(accuracy),
			nullIntField(logistics),
			nullIntField(value),
			nullIntField(comm),
			body.String,
			created,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func nullIntField(n sql.NullInt64) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}
