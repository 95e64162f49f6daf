package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"publishing-backend/internal/shared/response"
	"publishing-backend/pkg/logger"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrTagNotFound           = errors.New("tag not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrTagAlreadyExists      = errors.New("tag already exists")
)

var taxonomyErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrCategoryNotFound:      {http.StatusNotFound, "The specified category does not exist"},
	ErrTagNotFound:           {http.StatusNotFound, "The specified tag does not exist"},
	ErrCategoryAlreadyExists: {http.StatusConflict, "A category with this name or slug already exists"},
	ErrTagAlreadyExists:      {http.StatusConflict, "A tag with this name or slug already exists"},
}

func HandleTaxonomyError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range taxonomyErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Message)
			return true
		}
	}

	logger.Error("unhandled taxonomy error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
