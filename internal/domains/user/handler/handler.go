package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"publishing-backend/internal/domains/user/model"
	"publishing-backend/internal/domains/user/service"
	"publishing-backend/internal/shared/middleware"
	"publishing-backend/internal/shared/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Refresh POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Logout POST /api/v1/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := h.service.Logout(c.Request.Context(), token); model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	result, err := h.service.Me(c.Request.Context(), middleware.PrincipalFrom(c))
	if model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateProfile PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateProfile(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateRoles PUT /api/v1/admin/users/:id/roles
func (h *UserHandler) UpdateRoles(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	var req model.UpdateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoles(c.Request.Context(), middleware.PrincipalFrom(c), userID, req)
	if model.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}
