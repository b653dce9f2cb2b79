package suppliers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lothub/internal/catalog"
)

type Handler struct {
	Repo      *Repo
	Directory *catalog.Directory
	Store     catalog.Store
}

func NewHandler(repo *Repo, directory *catalog.Directory, store catalog.Store) *Handler {
	return &Handler{Repo: repo, Directory: directory, Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)            // GET /suppliers
	rg.GET("/:slug", h.getBySlug) // GET /suppliers/:slug
}

func (h *Handler) RegisterFilterRoutes(rg *gin.RouterGroup) {
	rg.GET("/filters", h.filters) // GET /meta/filters
}

func (h *Handler) list(c *gin.Context) {
	q := catalog.Query{
		Search:   c.Query("search"),
		Category: strings.TrimSpace(c.Query("category")),
		Region:   strings.TrimSpace(c.Query("region")),
		LotSize:  strings.TrimSpace(c.Query("lot_size")),
		Cursor:   parseInt64(c.Query("cursor"), 0),
		Limit:    parseInt(c.Query("limit"), 0),
	}

	page, err := h.Directory.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       page.Items,
		"next_cursor": page.NextCursor,
	})
}

func (h *Handler) getBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	s, err := h.Repo.BySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	reviews, err := h.Store.Reviews(c.Request.Context(), s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reviews failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"supplier": s,
		"summary":  catalog.Summarize(reviews),
	})
}

func (h *Handler) filters(c *gin.Context) {
	ctx := c.Request.Context()

	regions, err := h.Repo.Regions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filters failed"})
		return
	}
	categories, err := h.Repo.Categories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filters failed"})
		return
	}
	lotSizes, err := h.Repo.LotSizes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filters failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"regions":    regions,
		"categories": categories,
		"lot_sizes":  lotSizes,
	})
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseInt64(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return n
}
