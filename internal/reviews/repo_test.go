package reviews_test

import (
	"context"
	"database/sql"
	"testing"

	"lothub/internal/catalog"
	"lothub/internal/reviews"
	"lothub/internal/testutil"
	"lothub/pkg/models"
)

func seedReviewDB(t *testing.T) (*sql.DB, *reviews.Repo) {
	t.Helper()
	db := testutil.NewStore(t)

	if _, err := db.Exec(`
		INSERT INTO users (id, username, email, password_hash) VALUES ('u-1', 'buyer', 'buyer@example.com', 'x');
		INSERT INTO suppliers (name, slug) VALUES ('B-Stock Inc.', 'b-stock');
	`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db, reviews.NewRepo(db)
}

func intp(v int) *int { return &v }

func TestCreateAndListRoundtrip(t *testing.T) {
	_, repo := seedReviewDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Review{
		SupplierID: 1,
		UserID:     "u-1",
		Rating:     4,
		Accuracy:   intp(5),
		Text:       "manifest was accurate",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatalf("created = %+v", created)
	}
	if created.Accuracy == nil || *created.Accuracy != 5 {
		t.Fatalf("accuracy = %v, want 5", created.Accuracy)
	}
	if created.Logistics != nil {
		t.Fatalf("logistics = %v, want nil for unscored aspect", created.Logistics)
	}

	items, err := repo.Reviews(ctx, 1)
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	if len(items) != 1 || items[0].Text != "manifest was accurate" {
		t.Fatalf("items = %+v", items)
	}
}

func TestReviewsFeedAggregator(t *testing.T) {
	_, repo := seedReviewDB(t)
	ctx := context.Background()

	for _, rv := range []models.Review{
		{SupplierID: 1, UserID: "u-1", Rating: 5, Value: intp(4)},
		{SupplierID: 1, UserID: "u-1", Rating: 3},
		{SupplierID: 1, UserID: "u-1", Rating: 4, Value: intp(2)},
	} {
		if _, err := repo.Create(ctx, rv); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := repo.Reviews(ctx, 1)
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	s := catalog.Summarize(items)
	if s.Count != 3 {
		t.Fatalf("count = %d, want 3", s.Count)
	}
	if s.Average == nil || *s.Average != 4 {
		t.Fatalf("average = %v, want 4", s.Average)
	}
	if s.Aspects.Value == nil || *s.Aspects.Value != 3 {
		t.Fatalf("value aspect = %v, want 3", s.Aspects.Value)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	db, repo := seedReviewDB(t)
	ctx := context.Background()

	if _, err := db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ('u-2', 'other', 'other@example.com', 'x')`); err != nil {
		t.Fatalf("seed second user: %v", err)
	}

	created, err := repo.Create(ctx, models.Review{SupplierID: 1, UserID: "u-1", Rating: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.Delete(ctx, created.ID, "u-2")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok {
		t.Fatal("delete by non-owner should not succeed")
	}

	ok, err = repo.Delete(ctx, created.ID, "u-1")
	if err != nil || !ok {
		t.Fatalf("owner delete: ok=%v err=%v", ok, err)
	}
}

func TestReviewsEmptySupplier(t *testing.T) {
	_, repo := seedReviewDB(t)

	items, err := repo.Reviews(context.Background(), 999)
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %v, want none", items)
	}
}
