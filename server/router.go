package server

import (
	"github.com/ArjunKaliyath/socials/auth"
	"github.com/ArjunKaliyath/socials/imagestore"
	"github.com/ArjunKaliyath/socials/realtime"
	"github.com/ArjunKaliyath/socials/server/handlers"
	"github.com/ArjunKaliyath/socials/server/middlewares"
	"github.com/ArjunKaliyath/socials/utils/flag"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter assembles the full HTTP surface: the unauthenticated auth routes,
// the token-gated feed routes and the websocket endpoint the hub serves.
// Tests construct it the same way main does, with their own db/hub/store.
func NewRouter(db *gorm.DB, tokens *auth.TokenManager, hub *realtime.Hub, images imagestore.Store) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	authHandler := handlers.NewAuthHandler(db, tokens)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	feedHandler := handlers.NewFeedHandler(db, hub, images)
	feedRoutes := router.Group("/feed")
	if !flag.ByPassAuth {
		feedRoutes.Use(middlewares.JWT(tokens))
	}
	{
		feedRoutes.GET("/posts", feedHandler.GetPosts)
		feedRoutes.POST("/post", feedHandler.CreatePost)
		feedRoutes.GET("/post/:postId", feedHandler.GetPost)
		feedRoutes.PUT("/post/:postId", feedHandler.UpdatePost)
		feedRoutes.DELETE("/post/:postId", feedHandler.DeletePost)
		feedRoutes.GET("/status", feedHandler.GetStatus)
		feedRoutes.PUT("/status", feedHandler.UpdateStatus)
	}

	router.GET("/ws", func(c *gin.Context) {
		hub.Serve(c.Writer, c.Request)
	})

	return router
}
