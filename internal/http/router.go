package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ibizabroker/520-project/internal/config"
	"github.com/ibizabroker/520-project/internal/http/handlers"
	"github.com/ibizabroker/520-project/internal/http/middleware"
	"github.com/ibizabroker/520-project/internal/services"
)

type Dependencies struct {
	Config        *config.Config
	AuthService   *services.AuthService
	SocialService *services.SocialService
	Logger        *slog.Logger
	RateLimiter   *middleware.RateLimiter
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	meHandler := handlers.NewMeHandler()
	socialHandler := handlers.NewSocialHandler(deps.SocialService)

	router.GET("/healthz", handlers.Health)

	// Credential endpoints sit behind the limiter; everything social
	// requires a resolved bearer identity.
	authGroup := router.Group("")
	authGroup.Use(deps.RateLimiter.Middleware())
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}
	router.POST("/logout", authHandler.Logout)

	protected := router.Group("")
	protected.Use(middleware.RequireAuth(deps.AuthService))
	{
		protected.GET("/me", meHandler.GetMe)
		protected.POST("/add_post", socialHandler.AddPost)
		protected.GET("/posts", socialHandler.ListPosts)
		protected.POST("/like_post", socialHandler.LikePost)
		protected.POST("/unlike_post", socialHandler.UnlikePost)
		protected.POST("/add_bookmark", socialHandler.AddBookmark)
		protected.GET("/bookmarks", socialHandler.ListBookmarks)
		protected.POST("/add_comment", socialHandler.AddComment)
		protected.GET("/comments/:smid", socialHandler.ListComments)
	}

	return router
}
