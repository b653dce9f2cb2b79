package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lothub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, rv models.Review) (*models.Review, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (supplier_id, user_id, rating, accuracy, logistics, value, communication, text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rv.SupplierID, rv.UserID, rv.Rating, rv.Accuracy, rv.Logistics, rv.Value, rv.Communication, rv.Text)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, supplier_id, user_id, rating, accuracy, logistics, value, communication, text, created_at
		FROM reviews
		WHERE id = ?
	`, id)

	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rv, err
}

// Reviews returns every review for one supplier, newest first. This is the
// aggregator's input; summaries are computed from it on every read.
func (r *Repo) Reviews(ctx context.Context, supplierID int64) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, supplier_id, user_id, rating, accuracy, logistics, value, communication, text, created_at
		FROM reviews
		WHERE supplier_id = ?
		ORDER BY created_at DESC, id DESC
	`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanReview(row scannable) (*models.Review, error) {
	var rv models.Review
	var acc, lgs, val, com sql.NullInt64
	var text sql.NullString
	var ts time.Time

	if err := row.Scan(&rv.ID, &rv.SupplierID, &rv.UserID, &rv.Rating, &acc, &lgs, &val, &com, &text, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	rv.Accuracy = nullInt(acc)
	rv.Logistics = nullInt(lgs)
	rv.Value = nullInt(val)
	rv.Communication = nullInt(com)
	rv.Text = text.String
	rv.CreatedAt = ts
	return &rv, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
