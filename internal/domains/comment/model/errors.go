package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	articlemodel "publishing-backend/internal/domains/article/model"
	"publishing-backend/internal/shared/response"
	"publishing-backend/pkg/logger"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrParentMismatch  = errors.New("parent comment belongs to another article")
	ErrReplyToRedacted = errors.New("cannot reply to a deleted comment")
	ErrCommentRedacted = errors.New("comment has been deleted")
)

var commentErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrCommentNotFound: {http.StatusNotFound, "The specified comment does not exist"},
	// The thread inherits the parent article's visibility.
	articlemodel.ErrArticleNotFound: {http.StatusNotFound, "The specified article does not exist"},
	ErrAccessDenied:    {http.StatusForbidden, "You do not have permission to perform this action"},
	ErrParentNotFound:  {http.StatusBadRequest, "The parent comment does not exist"},
	ErrParentMismatch:  {http.StatusBadRequest, "The parent comment belongs to another article"},
	ErrReplyToRedacted: {http.StatusBadRequest, "Cannot reply to a deleted comment"},
	ErrCommentRedacted: {http.StatusBadRequest, "The comment has been deleted"},
}

func HandleCommentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range commentErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Message)
			return true
		}
	}

	logger.Error("unhandled comment error", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
