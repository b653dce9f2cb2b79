package pages

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lothub/internal/catalog"
)

type Handler struct {
	Repo     *Repo
	Resolver *catalog.Resolver
}

func NewHandler(repo *Repo, resolver *catalog.Resolver) *Handler {
	return &Handler{Repo: repo, Resolver: resolver}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)         // GET /pages
	rg.GET("/:slug", h.detail) // GET /pages/:slug
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Repo.CategoryPages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": all})
}

// detail returns the page content plus its resolved featured suppliers:
// the pinned selection in pinned order, or the house recommended set when
// nothing is pinned. Missing suppliers drop out silently.
func (h *Handler) detail(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	page, err := h.Repo.CategoryPage(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	featured, err := h.Resolver.Featured(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"featured": featured,
	})
}
