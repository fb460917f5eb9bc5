package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plumeio/plume/internal/storage"
)

type postRequest struct {
	Text      string `json:"text"`
	GroupSlug string `json:"group"`
	Image     string `json:"image"`
}

func postID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, storage.ErrNotFound
	}
	return id, nil
}

func (r *Router) createPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := r.posts.Create(c.Request.Context(), req.Text, req.GroupSlug, req.Image)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postView(*created))
}

func (r *Router) getPost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	found, err := r.posts.Get(c.Request.Context(), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postView(*found))
}

func (r *Router) editPost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := r.posts.Edit(c.Request.Context(), id, req.Text, req.GroupSlug, req.Image)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postView(*updated))
}

func (r *Router) deletePost(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	if err := r.posts.Delete(c.Request.Context(), id); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
