package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plumeio/plume/internal/auth"
	"github.com/plumeio/plume/internal/comment"
	"github.com/plumeio/plume/internal/feed"
	"github.com/plumeio/plume/internal/follow"
	"github.com/plumeio/plume/internal/post"
	"github.com/plumeio/plume/pkg/logging"
)

// identityHeader carries the requester's handle, resolved by the fronting
// auth layer. Requests without it are anonymous.
const identityHeader = "X-Plume-User"

// Router sets up API routes
type Router struct {
	feeds    *feed.Engine
	posts    *post.Service
	comments *comment.Manager
	follows  *follow.Manager
	logger   *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(feeds *feed.Engine, posts *post.Service, comments *comment.Manager, follows *follow.Manager) *Router {
	return &Router{
		feeds:    feeds,
		posts:    posts,
		comments: comments,
		follows:  follows,
		logger:   logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(r.identityMiddleware)

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Feeds
	engine.GET("/feed", r.globalFeed)
	engine.GET("/feed/following", r.followFeed)
	engine.GET("/groups/:slug/posts", r.groupFeed)
	engine.GET("/profiles/:handle/posts", r.authorFeed)

	// Posts
	engine.POST("/posts", r.createPost)
	engine.GET("/posts/:id", r.getPost)
	engine.PUT("/posts/:id", r.editPost)
	engine.DELETE("/posts/:id", r.deletePost)

	// Comments
	engine.GET("/posts/:id/comments", r.listComments)
	engine.POST("/posts/:id/comments", r.addComment)

	// Follow graph
	engine.POST("/profiles/:handle/follow", r.followAuthor)
	engine.POST("/profiles/:handle/unfollow", r.unfollowAuthor)
}

// identityMiddleware copies the resolved identity from the request header
// into the request context.
func (r *Router) identityMiddleware(c *gin.Context) {
	if handle := c.GetHeader(identityHeader); handle != "" {
		ctx := auth.WithUser(c.Request.Context(), handle)
		c.Request = c.Request.WithContext(ctx)
	}
	c.Next()
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "plume-api",
	})
}
