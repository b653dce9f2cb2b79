package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"lothub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) CategoryPages(ctx context.Context) ([]models.CategoryPage, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT slug, topic_category, supplier_ids, title, intro
		FROM category_pages
		ORDER BY slug ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list category pages: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryPage
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) CategoryPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT slug, topic_category, supplier_ids, title, intro
		FROM category_pages
		WHERE slug = ?
	`, strings.TrimSpace(slug))

	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPage(row scannable) (*models.CategoryPage, error) {
	var p models.CategoryPage
	var idsJSON string
	var title, intro sql.NullString

	if err := row.Scan(&p.Slug, &p.TopicCategory, &idsJSON, &title, &intro); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan category page: %w", err)
	}

	p.Title = title.String
	p.Intro = intro.String
	// a malformed selection reads as empty, which resolves to the house default
	_ = json.Unmarshal([]byte(idsJSON), &p.SupplierIDs)
	return &p, nil
}

// UpdateCategoryPageSupplierIDs overwrites one page's pinned selection with
// the ordered IDs. This is the reconciler's write surface.
func (r *Repo) UpdateCategoryPageSupplierIDs(ctx context.Context, slug string, orderedIDs []int64) error {
	raw := make([]string, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		raw = append(raw, strconv.FormatInt(id, 10))
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode supplier ids: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE category_pages SET supplier_ids = ? WHERE slug = ?
	`, string(b), slug)
	if err != nil {
		return fmt.Errorf("update supplier ids: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("update supplier ids: page %q not found", slug)
	}
	return nil
}

// Upsert writes a whole page row; used by admin edits and the CSV importer.
func (r *Repo) Upsert(ctx context.Context, p models.CategoryPage) error {
	if p.SupplierIDs == nil {
		p.SupplierIDs = []string{}
	}
	b, err := json.Marshal(p.SupplierIDs)
	if err != nil {
		return fmt.Errorf("encode supplier ids: %w", err)
	}
	if p.TopicCategory == "" {
		p.TopicCategory = "category"
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO category_pages (slug, topic_category, supplier_ids, title, intro)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
		  topic_category = excluded.topic_category,
		  supplier_ids = excluded.supplier_ids,
		  title = excluded.title,
		  intro = excluded.intro
	`, p.Slug, p.TopicCategory, string(b), p.Title, p.Intro)
	if err != nil {
		return fmt.Errorf("upsert category page: %w", err)
	}
	return nil
}
