package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plumeio/plume/internal/auth"
	"github.com/plumeio/plume/internal/feed"
	"github.com/plumeio/plume/internal/models"
)

// pageParam parses the page query parameter, defaulting to 1.
func pageParam(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, feed.ErrInvalidPage
	}
	return page, nil
}

func (r *Router) globalFeed(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	result, err := r.feeds.Global(c.Request.Context(), page)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedView(result))
}

func (r *Router) groupFeed(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	result, err := r.feeds.ByGroup(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedView(result))
}

func (r *Router) authorFeed(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	result, err := r.feeds.ByAuthor(c.Request.Context(), c.Param("handle"), page)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedView(result))
}

func (r *Router) followFeed(c *gin.Context) {
	handle, err := auth.CurrentUser(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}

	page, err := pageParam(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	result, err := r.feeds.ByFollow(c.Request.Context(), handle, page)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedView(result))
}

func feedView(p *feed.Page) gin.H {
	posts := make([]gin.H, 0, len(p.Posts))
	for _, post := range p.Posts {
		posts = append(posts, postView(post))
	}
	return gin.H{
		"posts": posts,
		"page_info": gin.H{
			"page":        p.Info.Page,
			"page_size":   p.Info.PageSize,
			"total_items": p.Info.TotalItems,
			"total_pages": p.Info.TotalPages,
		},
	}
}

func postView(p models.Post) gin.H {
	view := gin.H{
		"id":        p.ID,
		"text":      p.Text,
		"author_id": p.AuthorID,
		"created":   p.CreatedAt,
	}
	if p.GroupID.Valid {
		view["group_id"] = p.GroupID.Int64
	}
	if p.Image != "" {
		view["image"] = p.Image
	}
	return view
}
