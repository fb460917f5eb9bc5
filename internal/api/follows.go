package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plumeio/plume/internal/auth"
)

func (r *Router) followAuthor(c *gin.Context) {
	handle, err := auth.CurrentUser(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}

	if err := r.follows.Follow(c.Request.Context(), handle, c.Param("handle")); err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": true})
}

func (r *Router) unfollowAuthor(c *gin.Context) {
	handle, err := auth.CurrentUser(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}

	if err := r.follows.Unfollow(c.Request.Context(), handle, c.Param("handle")); err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false})
}
