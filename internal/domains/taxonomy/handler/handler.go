package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"publishing-backend/internal/domains/taxonomy/model"
	"publishing-backend/internal/domains/taxonomy/service"
	"publishing-backend/internal/shared/middleware"
	"publishing-backend/internal/shared/response"
)

type TaxonomyHandler struct {
	service service.TaxonomyService
}

func NewTaxonomyHandler(service service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

// ListCategories GET /api/v1/categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if model.HandleTaxonomyError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// CreateCategory POST /api/v1/admin/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if model.HandleTaxonomyError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, category)
}

// DeleteCategory DELETE /api/v1/admin/categories/:id
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category id")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleTaxonomyError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Category deleted"})
}

// ListTags GET /api/v1/tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if model.HandleTaxonomyError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// CreateTag POST /api/v1/admin/tags
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if model.HandleTaxonomyError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, tag)
}

// DeleteTag DELETE /api/v1/admin/tags/:id
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag id")
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleTaxonomyError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Tag deleted"})
}
