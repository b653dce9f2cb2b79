package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"lothub/internal/suppliers"
	"lothub/pkg/database"
)

// MirrorSupplier is the stable shape served by mirror-server. Field
// names stay frozen so static mirrors survive schema changes.
type MirrorSupplier struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Region     string   `json:"region"`
	Tags       []string `json:"tags"`
	LotSizes   []string `json:"lot_sizes"`
	TrustScore int      `json:"trust_score"`
	Verified   bool     `json:"verified"`
	Scam       bool     `json:"scam"`
	Website    string   `json:"website"`
	Badge      string   `json:"badge"`
	Summary    string   `json:"summary"`
}

func main() {
	var (
		outPath = flag.String("out", "data/mirror.json", "output JSON path")
		limit   = flag.Int("limit", 500, "how many suppliers to export")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	all, err := suppliers.NewRepo(db).Suppliers(ctx)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	if len(all) > *limit {
		all = all[:*limit]
	}

	out := make([]MirrorSupplier, 0, len(all))
	for _, s := range all {
		out = append(out, MirrorSupplier{
			Slug:       s.Slug,
			Name:       s.Name,
			Region:     s.Region,
			Tags:       orEmpty(s.Categories),
			LotSizes:   orEmpty(s.LotSizes),
			TrustScore: s.TrustScore,
			Verified:   s.IsVerified,
			Scam:       s.IsScam,
			Website:    s.Website,
			Badge:      s.Badge,
			Summary:    s.Description,
		})
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("mkdir failed: %v", err)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal failed: %v", err)
	}

	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}

	log.Printf("✅ exported %d suppliers to %s", len(out), *outPath)
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
