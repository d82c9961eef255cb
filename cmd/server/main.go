package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/config"
	"github.com/pvsouza/blog-messenger-api/internal/constants"
	"github.com/pvsouza/blog-messenger-api/internal/database"
	"github.com/pvsouza/blog-messenger-api/internal/handlers"
	"github.com/pvsouza/blog-messenger-api/internal/middleware"
	"github.com/pvsouza/blog-messenger-api/internal/repository"
	"github.com/pvsouza/blog-messenger-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Extra indexes; the lookup only works against pg catalogs
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Printf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	postRepo := repository.NewPostRepository(database.GetDB())
	messageRepo := repository.NewMessageRepository(database.GetDB())

	// Services
	authService := services.NewAuthService(userRepo)
	profileService := services.NewProfileService(userRepo)
	postService := services.NewPostService(postRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)

	// Handlers
	siteHandler := handlers.NewSiteHandler(postService)
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, authService, cfg.UploadDir)
	postHandler := handlers.NewPostHandler(postService, cfg.UploadDir)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Blog Messenger API is running",
		})
	})

	// Landing pages (public)
	r.GET("/", siteHandler.Home)
	r.GET("/about", siteHandler.About)

	// Uploaded files (avatars, post images)
	r.Static("/media", cfg.UploadDir)

	// Blog pages
	pages := r.Group("/pages")
	{
		pages.GET("", postHandler.ListPosts)
		pages.POST("/create", middleware.RequireAuth(), postHandler.CreatePost)
		pages.GET("/:id", postHandler.GetPost)
		pages.POST("/:id/edit", middleware.RequireAuth(), middleware.RequirePostOwner(), postHandler.UpdatePost)
		pages.POST("/:id/delete", middleware.RequireAuth(), middleware.RequirePostOwner(), postHandler.DeletePost)
	}

	// Accounts
	accounts := r.Group("/accounts")
	{
		accounts.POST("/register", authHandler.Register)
		accounts.POST("/login", authHandler.Login)
		accounts.POST("/logout", authHandler.Logout)
		accounts.POST("/password_change", middleware.RequireAuth(), authHandler.ChangePassword)
		accounts.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		accounts.GET("/recipients", middleware.RequireAuth(), authHandler.ListRecipients)
		accounts.GET("/profile", middleware.RequireAuth(), profileHandler.GetProfile)
		accounts.GET("/profile/edit", middleware.RequireAuth(), profileHandler.EditProfileForm)
		accounts.POST("/profile/edit", middleware.RequireAuth(), profileHandler.EditProfile)
	}

	// Messenger
	messenger := r.Group("/messenger")
	messenger.Use(middleware.RequireAuth())
	{
		messenger.GET("/inbox", messageHandler.Inbox)
		messenger.POST("/send", messageHandler.SendMessage)
		messenger.GET("/:id", middleware.RequireMessageReceiver(), messageHandler.GetMessage)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
