package suppliers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lothub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const supplierCols = `
	s.id, s.name, s.slug, s.region_slug, s.trust_score, s.home_rank,
	s.is_verified, s.is_scam, s.website, s.badge, s.keywords, s.description
`

// Suppliers returns the full catalog in listing order (home_rank desc, id
// asc). The engine layers filtering and pagination on top of this.
func (r *Repo) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+supplierCols+`
		FROM suppliers s
		ORDER BY s.home_rank DESC, s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	if err := r.attachTaxonomy(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) SupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	return r.one(ctx, "s.id = ?", id)
}

func (r *Repo) BySlug(ctx context.Context, slug string) (*models.Supplier, error) {
	return r.one(ctx, "s.slug = ?", strings.TrimSpace(slug))
}

func (r *Repo) one(ctx context.Context, cond string, arg any) (*models.Supplier, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+supplierCols+`
		FROM suppliers s
		WHERE `+cond, arg)

	s, err := scanSupplier(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	single := []models.Supplier{*s}
	if err := r.attachTaxonomy(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSupplier(row scannable) (*models.Supplier, error) {
	var s models.Supplier
	var region, website, badge, kw, desc sql.NullString
	var verified, scam int
	if err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &region, &s.TrustScore, &s.HomeRank,
		&verified, &scam, &website, &badge, &kw, &desc,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan supplier: %w", err)
	}

	s.Region = region.String
	s.IsVerified = verified != 0
	s.IsScam = scam != 0
	s.Website = website.String
	s.Badge = badge.String
	s.Keywords = kw.String
	s.Description = desc.String
	return &s, nil
}

// attachTaxonomy fills Categories and LotSizes for the given suppliers with
// two bulk queries instead of a pair per row.
func (r *Repo) attachTaxonomy(ctx context.Context, suppliers []models.Supplier) error {
	if len(suppliers) == 0 {
		return nil
	}

	cats, err := r.slugsBySupplier(ctx, `SELECT supplier_id, category_slug FROM supplier_categories`)
	if err != nil {
		return fmt.Errorf("load supplier categories: %w", err)
	}
	lots, err := r.slugsBySupplier(ctx, `SELECT supplier_id, lot_size_slug FROM supplier_lot_sizes`)
	if err != nil {
		return fmt.Errorf("load supplier lot sizes: %w", err)
	}

	for i := range suppliers {
		suppliers[i].Categories = orEmpty(cats[suppliers[i].ID])
		suppliers[i].LotSizes = orEmpty(lots[suppliers[i].ID])
	}
	return nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (r *Repo) slugsBySupplier(ctx context.Context, query string) (map[int64][]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, err
		}
		out[id] = append(out[id], slug)
	}
	return out, rows.Err()
}

// Create inserts a supplier and its taxonomy links in one transaction.
// Used by admin CRUD and submission approval; the engine never calls it.
func (r *Repo) Create(ctx context.Context, s models.Supplier) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create supplier: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	region, err := regionOrNull(ctx, tx, s.Region)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO suppliers (name, slug, region_slug, trust_score, home_rank,
			is_verified, is_scam, website, badge, keywords, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.Name, s.Slug, region, s.TrustScore, s.HomeRank,
		boolInt(s.IsVerified), boolInt(s.IsScam),
		nullable(s.Website), nullable(s.Badge), nullable(s.Keywords), nullable(s.Description))
	if err != nil {
		return 0, fmt.Errorf("insert supplier: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if err := replaceLinks(ctx, tx, "supplier_categories", "category_slug", "categories", id, s.Categories); err != nil {
		return 0, err
	}
	if err := replaceLinks(ctx, tx, "supplier_lot_sizes", "lot_size_slug", "lot_sizes", id, s.LotSizes); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create supplier: %w", err)
	}
	return id, nil
}

// Update rewrites the supplier record and its taxonomy links.
func (r *Repo) Update(ctx context.Context, s models.Supplier) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin update supplier: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	region, err := regionOrNull(ctx, tx, s.Region)
	if err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE suppliers
		SET name = ?, slug = ?, region_slug = ?, trust_score = ?, home_rank = ?,
			is_verified = ?, is_scam = ?, website = ?, badge = ?, keywords = ?, description = ?
		WHERE id = ?
	`, s.Name, s.Slug, region, s.TrustScore, s.HomeRank,
		boolInt(s.IsVerified), boolInt(s.IsScam),
		nullable(s.Website), nullable(s.Badge), nullable(s.Keywords), nullable(s.Description), s.ID)
	if err != nil {
		return false, fmt.Errorf("update supplier: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	if err := replaceLinks(ctx, tx, "supplier_categories", "category_slug", "categories", s.ID, s.Categories); err != nil {
		return false, err
	}
	if err := replaceLinks(ctx, tx, "supplier_lot_sizes", "lot_size_slug", "lot_sizes", s.ID, s.LotSizes); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update supplier: %w", err)
	}
	return true, nil
}

// replaceLinks rewrites a supplier's rows in a taxonomy link table. Slugs
// missing from the parent table drop out silently: submissions carry
// free-form strings, and an unseeded slug must not sink the whole write.
func replaceLinks(ctx context.Context, tx *sql.Tx, table, col, parent string, supplierID int64, slugs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE supplier_id = ?`, supplierID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, slug := range slugs {
		slug = strings.TrimSpace(strings.ToLower(slug))
		if slug == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO `+table+` (supplier_id, `+col+`)
			SELECT ?, slug FROM `+parent+` WHERE slug = ?
		`, supplierID, slug); err != nil {
			return fmt.Errorf("link %s: %w", table, err)
		}
	}
	return nil
}

// regionOrNull resolves a region slug against the seeded regions. Blank or
// unknown slugs store as NULL for the same reason replaceLinks drops them.
func regionOrNull(ctx context.Context, tx *sql.Tx, slug string) (any, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, nil
	}
	var found string
	err := tx.QueryRowContext(ctx, `SELECT slug FROM regions WHERE slug = ?`, slug).Scan(&found)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve region: %w", err)
	}
	return found, nil
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
