package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"publishing-backend/internal/domains/comment/model"
	"publishing-backend/internal/domains/comment/service"
	"publishing-backend/internal/shared/middleware"
	"publishing-backend/internal/shared/response"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListByArticle GET /api/v1/articles/:id/comments
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article id")
		return
	}

	tree, err := h.service.ListByArticle(c.Request.Context(), middleware.PrincipalFrom(c), articleID)
	if model.HandleCommentError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, tree)
}

// Create POST /api/v1/articles/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article id")
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.service.Create(c.Request.Context(), middleware.PrincipalFrom(c), articleID, req)
	if model.HandleCommentError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

// Update PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment id")
		return
	}

	var req model.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.service.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if model.HandleCommentError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, comment)
}

// Redact DELETE /api/v1/comments/:id
func (h *CommentHandler) Redact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment id")
		return
	}

	if err := h.service.Redact(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleCommentError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}

// HardDelete DELETE /api/v1/comments/:id/permanent
func (h *CommentHandler) HardDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment id")
		return
	}

	if err := h.service.HardDelete(c.Request.Context(), middleware.PrincipalFrom(c), id); model.HandleCommentError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Comment permanently deleted"})
}
