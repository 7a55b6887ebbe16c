package server

import (
	"net/http"

	"github.com/Luismorlan/socialmux/server/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

// RouterOptions are the deployment dependent parts of the router.
type RouterOptions struct {
	// ServiceName tags traces when Tracing is on.
	ServiceName string
	Tracing     bool
	// UploadDir, when set, is served under /uploads. Only used with the local
	// file store.
	UploadDir string
}

// NewRouter wires every route to its handler. Everything but /auth/register,
// /auth/login and /ping requires a bearer token.
func NewRouter(h *Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(middlewares.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig()))
	if opts.Tracing {
		router.Use(gintrace.Middleware(opts.ServiceName))
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	authRequired := middlewares.Auth(h.Resolver.Tokens)

	authGroup := router.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.DELETE("/logout", authRequired, h.Logout)
	authGroup.GET("/me", authRequired, h.Me)

	users := router.Group("/users", authRequired)
	users.GET("", h.ListUsers)
	users.PUT("/password", h.UpdatePassword)
	users.POST("/profile-picture", h.UpdateProfilePicture)
	users.GET("/:id", h.GetProfile)
	users.GET("/:id/posts", h.ListUserPosts)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	posts := router.Group("/posts", authRequired)
	posts.POST("", h.CreatePost)
	posts.GET("", h.Feed)
	posts.GET("/all", h.ListAllPosts)
	posts.GET("/:id", h.GetPost)
	posts.PUT("/:id", h.UpdatePost)
	posts.DELETE("/:id", h.DeletePost)

	comments := router.Group("/comments", authRequired)
	comments.POST("", h.CreateComment)
	comments.GET("/:postId", h.ListComments)
	comments.PUT("/:id", h.UpdateComment)
	comments.DELETE("/:id", h.DeleteComment)

	followers := router.Group("/followers", authRequired)
	followers.POST("/follow", h.Follow)
	followers.DELETE("/unfollow/:id", h.Unfollow)
	followers.GET("/following", h.ListFollowing)
	followers.GET("/:id", h.ListFollowers)

	return router
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AddAllowHeaders("Authorization")
	return config
}
