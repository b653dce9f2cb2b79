package submissions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"lothub/internal/submissions"
	"lothub/internal/suppliers"
	"lothub/internal/testutil"
	"lothub/pkg/models"
)

func approvalRouter(t *testing.T) (*gin.Engine, *submissions.Repo, *suppliers.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewStore(t)
	subRepo := submissions.NewRepo(db)
	supRepo := suppliers.NewRepo(db)

	router := gin.New()
	h := submissions.NewHandler(subRepo, supRepo, nil)
	h.RegisterAdminRoutes(router.Group("/admin"))
	return router, subRepo, supRepo
}

func TestApproveWithUnseededCategory(t *testing.T) {
	router, subRepo, supRepo := approvalRouter(t)
	ctx := context.Background()

	if err := supRepo.UpsertTaxonomy(ctx, "categories", "electronics", "Electronics"); err != nil {
		t.Fatalf("seed taxonomy: %v", err)
	}

	// the submitter names a category no admin has seeded yet
	sub := models.Submission{
		ID:         "sub-novel",
		Name:       "Overstock Outlet",
		Region:     "narnia",
		Categories: []string{"electronics", "vintage-typewriters"},
		LotSizes:   []string{"shipping-container"},
	}
	if err := subRepo.Create(ctx, sub); err != nil {
		t.Fatalf("Create submission: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/submissions/sub-novel/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("approve status = %d, body = %s", rec.Code, rec.Body.String())
	}

	s, err := supRepo.BySlug(ctx, "overstock-outlet")
	if err != nil || s == nil {
		t.Fatalf("BySlug after approve: %+v, %v", s, err)
	}
	if len(s.Categories) != 1 || s.Categories[0] != "electronics" {
		t.Fatalf("categories = %v, want only the seeded one", s.Categories)
	}
	if len(s.LotSizes) != 0 || s.Region != "" {
		t.Fatalf("lot sizes = %v region = %q, want unseeded values dropped", s.LotSizes, s.Region)
	}

	decided, err := subRepo.GetByID(ctx, "sub-novel")
	if err != nil || decided == nil {
		t.Fatalf("GetByID: %+v, %v", decided, err)
	}
	if decided.Status != models.SubmissionApproved {
		t.Fatalf("status = %s, want approved", decided.Status)
	}
}
