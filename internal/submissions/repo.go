package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *Repo) Create(ctx context.Context, sub models.Submission) error {
	cats, _ := json.Marshal(orEmpty(sub.Categories))
	lots, _ := json.Marshal(orEmpty(sub.LotSizes))

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO submissions (id, name, website, region_slug, categories, lot_sizes, description, contact, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.Name, sub.Website, sub.Region, string(cats), string(lots),
		sub.Description, sub.Contact, models.SubmissionPending)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, website, region_slug, categories, lot_sizes, description, contact, status, created_at, decided_at
		FROM submissions
		WHERE id = ?
	`, id)

	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sub, err
}

// List returns submissions newest first, optionally restricted to a status.
func (r *Repo) List(ctx context.Context, status string) ([]models.Submission, error) {
	query := `
		SELECT id, name, website, region_slug, categories, lot_sizes, description, contact, status, created_at, decided_at
		FROM submissions
	`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

// Decide moves a pending submission to approved or rejected. Returns false
// when the submission is missing or already decided.
func (r *Repo) Decide(ctx context.Context, id, status string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE submissions
		SET status = ?, decided_at = ?
		WHERE id = ? AND status = ?
	`, status, time.Now().UTC(), id, models.SubmissionPending)
	if err != nil {
		return false, fmt.Errorf("decide submission: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSubmission(row scannable) (*models.Submission, error) {
	var sub models.Submission
	var website, region, catsJSON, lotsJSON, desc, contact sql.NullString
	var decided sql.NullTime

	if err := row.Scan(&sub.ID, &sub.Name, &website, &region, &catsJSON, &lotsJSON,
		&desc, &contact, &sub.Status, &sub.CreatedAt, &decided); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	sub.Website = website.String
	sub.Region = region.String
	sub.Description = desc.String
	sub.Contact = contact.String
	if decided.Valid {
		t := decided.Time
		sub.DecidedAt = &t
	}
	_ = json.Unmarshal([]byte(catsJSON.String), &sub.Categories)
	_ = json.Unmarshal([]byte(lotsJSON.String), &sub.LotSizes)
	return &sub, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
