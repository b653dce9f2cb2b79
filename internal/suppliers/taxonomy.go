package suppliers

import (
	"context"
	"fmt"

	"lothub/pkg/models"
)

// Taxonomy reads back the filter vocabularies (regions, categories, lot
// sizes) the directory UI offers.

func (r *Repo) Regions(ctx context.Context) ([]models.Region, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT slug, name FROM regions ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var out []models.Region
	for rows.Next() {
		var v models.Region
		if err := rows.Scan(&v.Slug, &v.Name); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT slug, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var v models.Category
		if err := rows.Scan(&v.Slug, &v.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repo) LotSizes(ctx context.Context) ([]models.LotSize, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT slug, name FROM lot_sizes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list lot sizes: %w", err)
	}
	defer rows.Close()

	var out []models.LotSize
	for rows.Next() {
		var v models.LotSize
		if err := rows.Scan(&v.Slug, &v.Name); err != nil {
			return nil, fmt.Errorf("scan lot size: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// UpsertTaxonomy seeds lookup rows; used by the CSV importer.
func (r *Repo) UpsertTaxonomy(ctx context.Context, table, slug, name string) error {
	switch table {
	case "regions", "categories", "lot_sizes":
	default:
		return fmt.Errorf("unknown taxonomy table %q", table)
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO `+table+` (slug, name) VALUES (?, ?)
		ON CONFLICT(slug) DO UPDATE SET name = excluded.name
	`, slug, name)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}
