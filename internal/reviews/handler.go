package reviews

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lothub/internal/auth"
	"lothub/internal/catalog"
	"lothub/internal/events"
	"lothub/pkg/models"
)

// SupplierLookup is the slice of the supplier repo this handler needs.
type SupplierLookup interface {
	BySlug(ctx context.Context, slug string) (*models.Supplier, error)
	SupplierByID(ctx context.Context, id int64) (*models.Supplier, error)
}

type Handler struct {
	Repo      *Repo
	Suppliers SupplierLookup
	Hub       *events.Hub
}

func NewHandler(repo *Repo, suppliers SupplierLookup, hub *events.Hub) *Handler {
	return &Handler{Repo: repo, Suppliers: suppliers, Hub: hub}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/suppliers/:slug/reviews", h.listBySupplier)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.create)
	rg.DELETE("/reviews/:id", h.delete)
}

type createReq struct {
	SupplierID    int64  `json:"supplier_id"`
	Rating        int    `json:"rating"`
	Accuracy      *int   `json:"accuracy"`
	Logistics     *int   `json:"logistics"`
	Value         *int   `json:"value"`
	Communication *int   `json:"communication"`
	Text          string `json:"text"`
}

// create validates here so the aggregator downstream can assume 1-5 input.
func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.SupplierID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier_id required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}
	for name, v := range map[string]*int{
		"accuracy": req.Accuracy, "logistics": req.Logistics,
		"value": req.Value, "communication": req.Communication,
	} {
		if v != nil && (*v < 1 || *v > 5) {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be between 1 and 5"})
			return
		}
	}

	s, err := h.Suppliers.SupplierByID(c.Request.Context(), req.SupplierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
		return
	}

	review, err := h.Repo.Create(c.Request.Context(), models.Review{
		SupplierID:    req.SupplierID,
		UserID:        claims.UserID,
		Rating:        req.Rating,
		Accuracy:      req.Accuracy,
		Logistics:     req.Logistics,
		Value:         req.Value,
		Communication: req.Communication,
		Text:          strings.TrimSpace(req.Text),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(events.CatalogEvent{
			Type:         events.TypeReviewCreated,
			SupplierID:   s.ID,
			SupplierSlug: s.Slug,
		})
	}

	c.JSON(http.StatusCreated, review)
}

func (h *Handler) listBySupplier(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	s, err := h.Suppliers.BySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	items, err := h.Repo.Reviews(c.Request.Context(), s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"summary": catalog.Summarize(items),
	})
}

func (h *Handler) delete(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ok, err := h.Repo.Delete(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
