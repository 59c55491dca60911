package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories services.CategoryService
	resp       responder
}

func NewCategoryHandler(categories services.CategoryService, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, resp: responder{log: log, withSuccess: true}}
}

func categoryList(categories []models.Category) []gin.H {
	out := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		out = append(out, gin.H{
			"id":          category.ID,
			"name":        category.Name,
			"description": category.Description,
		})
	}
	return out
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.ListActive()
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categoryList(categories)})
}

func (h *CategoryHandler) ListDeleted(c *gin.Context) {
	categories, err := h.categories.ListDeleted()
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categoryList(categories)})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.resp.fail(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"category": gin.H{
			"id":          category.ID,
			"name":        category.Name,
			"description": category.Description,
			"created_at":  isoTime(category.CreatedAt),
		},
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	h.setStatus(c, models.StatusInactive, "inactive")
}

func (h *CategoryHandler) Restore(c *gin.Context) {
	h.setStatus(c, models.StatusActive, "active")
}

func (h *CategoryHandler) setStatus(c *gin.Context, status int, label string) {
	var req struct {
		CategoryID looseID `json:"category_id"`
	}
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	if req.CategoryID == "" || req.CategoryID == "0" {
		h.resp.abort(c, http.StatusBadRequest, "Category ID is required")
		return
	}
	id, ok := req.CategoryID.Uint()
	if !ok {
		h.resp.abort(c, http.StatusBadRequest, "Category ID must be a valid number")
		return
	}

	category, err := h.categories.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		h.resp.fail(c, err, "Failed to update category status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf(`Category "%s" status updated to %s`, category.Name, label),
	})
}
