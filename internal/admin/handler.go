package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lothub/internal/events"
	"lothub/internal/pages"
	"lothub/internal/suppliers"
	"lothub/pkg/models"
)

// Handler is the admin console's write surface: supplier CRUD and category
// page edits. Everything here sits behind the auth + admin middlewares.
type Handler struct {
	Suppliers *suppliers.Repo
	Pages     *pages.Repo
	Hub       *events.Hub
}

func NewHandler(supplierRepo *suppliers.Repo, pageRepo *pages.Repo, hub *events.Hub) *Handler {
	return &Handler{Suppliers: supplierRepo, Pages: pageRepo, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suppliers", h.createSupplier)
	rg.PUT("/suppliers/:id", h.updateSupplier)
	rg.PUT("/pages/:slug", h.upsertPage)
}

type supplierReq struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Region      string   `json:"region"`
	Categories  []string `json:"categories"`
	LotSizes    []string `json:"lot_sizes"`
	TrustScore  int      `json:"trust_score"`
	HomeRank    int      `json:"home_rank"`
	IsVerified  bool     `json:"is_verified"`
	IsScam      bool     `json:"is_scam"`
	Website     string   `json:"website"`
	Badge       string   `json:"badge"`
	Keywords    string   `json:"keywords"`
	Description string   `json:"description"`
}

func (req *supplierReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	if req.Name == "" {
		return "name required"
	}
	if req.Slug == "" {
		return "slug required"
	}
	if req.TrustScore < 0 || req.TrustScore > 100 {
		return "trust_score must be 0-100"
	}
	return ""
}

func (req *supplierReq) model() models.Supplier {
	return models.Supplier{
		Name:        req.Name,
		Slug:        req.Slug,
		Region:      strings.ToLower(strings.TrimSpace(req.Region)),
		Categories:  req.Categories,
		LotSizes:    req.LotSizes,
		TrustScore:  req.TrustScore,
		HomeRank:    req.HomeRank,
		IsVerified:  req.IsVerified,
		IsScam:      req.IsScam,
		Website:     strings.TrimSpace(req.Website),
		Badge:       strings.TrimSpace(req.Badge),
		Keywords:    strings.TrimSpace(req.Keywords),
		Description: strings.TrimSpace(req.Description),
	}
}

func (h *Handler) createSupplier(c *gin.Context) {
	var req supplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if existing, _ := h.Suppliers.BySlug(c.Request.Context(), req.Slug); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "slug already exists"})
		return
	}

	id, err := h.Suppliers.Create(c.Request.Context(), req.model())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	h.publish(events.TypeSupplierChanged, id, req.Slug)
	c.JSON(http.StatusCreated, gin.H{"id": id, "slug": req.Slug})
}

func (h *Handler) updateSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req supplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	s := req.model()
	s.ID = id
	ok, err := h.Suppliers.Update(c.Request.Context(), s)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	h.publish(events.TypeSupplierChanged, id, req.Slug)
	c.JSON(http.StatusOK, gin.H{"id": id, "slug": req.Slug})
}

type pageReq struct {
	TopicCategory string   `json:"topic_category"`
	SupplierIDs   []string `json:"supplier_ids"`
	Title         string   `json:"title"`
	Intro         string   `json:"intro"`
}

func (h *Handler) upsertPage(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
		return
	}

	var req pageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	err := h.Pages.Upsert(c.Request.Context(), models.CategoryPage{
		Slug:          slug,
		TopicCategory: strings.TrimSpace(req.TopicCategory),
		SupplierIDs:   req.SupplierIDs,
		Title:         strings.TrimSpace(req.Title),
		Intro:         strings.TrimSpace(req.Intro),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(events.CatalogEvent{Type: events.TypePageUpdated, PageSlug: slug})
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug})
}

func (h *Handler) publish(eventType string, supplierID int64, slug string) {
	if h.Hub == nil {
		return
	}
	h.Hub.Publish(events.CatalogEvent{Type: eventType, SupplierID: supplierID, SupplierSlug: slug})
}
