package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/auth"
	"github.com/plumeio/plume/internal/comment"
	"github.com/plumeio/plume/internal/feed"
	"github.com/plumeio/plume/internal/follow"
	"github.com/plumeio/plume/internal/post"
	"github.com/plumeio/plume/internal/storage"
)

// loginPath is where anonymous mutation attempts are sent, with the
// original path as the return target.
const loginPath = "/auth/login"

// respondError translates domain errors into HTTP responses. None of
// these are fatal; anything unrecognized is a 500.
func (r *Router) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, loginPath+"?next="+next)
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, feed.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
	case errors.Is(err, follow.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
	case errors.Is(err, post.ErrEmptyText), errors.Is(err, comment.ErrEmptyText):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		r.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
