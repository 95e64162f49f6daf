package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"publishing-backend/internal/shared/response"
	"publishing-backend/pkg/logger"
)

var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrSlugImmutable     = errors.New("slug cannot change after publication")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrTagNotFound       = errors.New("tag not found")
)

var articleErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrArticleNotFound:   {http.StatusNotFound, "The specified article does not exist"},
	ErrAccessDenied:      {http.StatusForbidden, "You do not have permission to perform this action"},
	ErrSlugAlreadyExists: {http.StatusConflict, "An article with this slug already exists"},
	ErrSlugImmutable:     {http.StatusBadRequest, "The slug of a published article cannot change"},
	ErrCategoryNotFound:  {http.StatusBadRequest, "The specified category does not exist"},
	ErrTagNotFound:       {http.StatusBadRequest, "One or more tags do not exist"},
}

func HandleArticleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range articleErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Message)
			return true
		}
	}

	logger.Error("unhandled article error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
