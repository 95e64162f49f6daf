package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"publishing-backend/internal/domains/article/model"
	"publishing-backend/internal/domains/article/service"
	"publishing-backend/internal/shared/middleware"
	"publishing-backend/internal/shared/response"
)

type ArticleHandler struct {
	service service.ArticleService
}

func NewArticleHandler(service service.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	var req model.ListArticlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetBySlug GET /api/v1/articles/:id (the param carries the slug)
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	result, err := h.service.GetBySlug(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Create POST /api/v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req model.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Update PUT /api/v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article id")
		return
	}

	var req model.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SoftDelete DELETE /api/v1/articles/:id
func (h *ArticleHandler) SoftDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article id")
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Article deleted"})
}

// Restore PUT /api/v1/articles/:id/restore
func (h *ArticleHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article id")
		return
	}

	if err := h.service.Restore(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Article restored"})
}

// HardDelete DELETE /api/v1/articles/:id/hard
func (h *ArticleHandler) HardDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article id")
		return
	}

	if err := h.service.HardDelete(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleArticleError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Article permanently deleted"})
}
