package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"publishing-backend/internal/shared/response"
	"publishing-backend/pkg/logger"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrInvalidRole        = errors.New("invalid role name")
	ErrAccessDenied       = errors.New("access denied")
)

var userErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrUserNotFound:       {http.StatusNotFound, "The specified user does not exist"},
	ErrEmailAlreadyExists: {http.StatusConflict, "This email is already registered"},
	ErrInvalidCredentials: {http.StatusUnauthorized, "Invalid email or password"},
	ErrInvalidToken:       {http.StatusUnauthorized, "Invalid or expired token"},
	ErrTooManyAttempts:    {http.StatusTooManyRequests, "Too many failed login attempts, try again later"},
	ErrInvalidRole:        {http.StatusBadRequest, "One or more role names are invalid"},
	ErrAccessDenied:       {http.StatusForbidden, "You do not have permission to perform this action"},
}

// HandleUserError writes the mapped response and reports whether err
// was handled. Unmapped errors become a 500 without leaking detail.
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range userErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Message)
			return true
		}
	}

	logger.Error("unhandled user error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
