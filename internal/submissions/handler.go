package submissions

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lothub/internal/events"
	"lothub/pkg/models"
)

// SupplierCreator is the slice of the supplier repo approval needs.
type SupplierCreator interface {
	Create(ctx context.Context, s models.Supplier) (int64, error)
	BySlug(ctx context.Context, slug string) (*models.Supplier, error)
}

type Handler struct {
	Repo      *Repo
	Suppliers SupplierCreator
	Hub       *events.Hub
}

func NewHandler(repo *Repo, suppliers SupplierCreator, hub *events.Hub) *Handler {
	return &Handler{Repo: repo, Suppliers: suppliers, Hub: hub}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.create)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.list)
	rg.POST("/submissions/:id/approve", h.approve)
	rg.POST("/submissions/:id/reject", h.reject)
}

type createReq struct {
	Name        string   `json:"name"`
	Website     string   `json:"website"`
	Region      string   `json:"region"`
	Categories  []string `json:"categories"`
	LotSizes    []string `json:"lot_sizes"`
	Description string   `json:"description"`
	Contact     string   `json:"contact"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	sub := models.Submission{
		ID:          uuid.NewString(),
		Name:        name,
		Website:     strings.TrimSpace(req.Website),
		Region:      strings.ToLower(strings.TrimSpace(req.Region)),
		Categories:  req.Categories,
		LotSizes:    req.LotSizes,
		Description: strings.TrimSpace(req.Description),
		Contact:     strings.TrimSpace(req.Contact),
		Status:      models.SubmissionPending,
	}

	if err := h.Repo.Create(c.Request.Context(), sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(events.CatalogEvent{
			Type:         events.TypeSubmissionReceived,
			SubmissionID: sub.ID,
			Detail:       sub.Name,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"id": sub.ID, "status": sub.Status})
}

func (h *Handler) list(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	items, err := h.Repo.List(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// approve turns the submission into a live supplier. The new listing starts
// unranked and unverified; curation happens through the admin console.
func (h *Handler) approve(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	sub, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if sub.Status != models.SubmissionPending {
		c.JSON(http.StatusConflict, gin.H{"error": "already decided"})
		return
	}

	slug, err := h.availableSlug(c.Request.Context(), sub.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "slug failed"})
		return
	}

	supplierID, err := h.Suppliers.Create(c.Request.Context(), models.Supplier{
		Name:        sub.Name,
		Slug:        slug,
		Region:      sub.Region,
		Categories:  sub.Categories,
		LotSizes:    sub.LotSizes,
		Website:     sub.Website,
		Description: sub.Description,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create supplier failed"})
		return
	}

	ok, err := h.Repo.Decide(c.Request.Context(), id, models.SubmissionApproved)
	if err != nil || !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decide failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(events.CatalogEvent{
			Type:         events.TypeSubmissionDecided,
			SubmissionID: id,
			SupplierID:   supplierID,
			SupplierSlug: slug,
			Detail:       models.SubmissionApproved,
		})
	}

	c.JSON(http.StatusOK, gin.H{"supplier_id": supplierID, "slug": slug})
}

func (h *Handler) reject(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ok, err := h.Repo.Decide(c.Request.Context(), id, models.SubmissionRejected)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decide failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found or already decided"})
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(events.CatalogEvent{
			Type:         events.TypeSubmissionDecided,
			SubmissionID: id,
			Detail:       models.SubmissionRejected,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": models.SubmissionRejected})
}

// availableSlug derives a URL slug from the name, suffixing on collision.
func (h *Handler) availableSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	slug := base
	for i := 2; ; i++ {
		existing, err := h.Suppliers.BySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
}

// Slugify lowercases and strips the name down to [a-z0-9-].
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "supplier"
	}
	return out
}
