package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plumeio/plume/internal/models"
)

type commentRequest struct {
	Text string `json:"text"`
}

func (r *Router) addComment(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := r.comments.Add(c.Request.Context(), id, req.Text)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentView(*created))
}

func (r *Router) listComments(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	comments, err := r.comments.ListByPost(c.Request.Context(), id)
	if err != nil {
		r.respondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		views = append(views, commentView(cm))
	}
	c.JSON(http.StatusOK, gin.H{"comments": views})
}

func commentView(cm models.Comment) gin.H {
	return gin.H{
		"id":        cm.ID,
		"post_id":   cm.PostID,
		"author_id": cm.AuthorID,
		"text":      cm.Text,
		"created":   cm.CreatedAt,
	}
}
