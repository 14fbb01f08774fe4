// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"github.com/uduakgabriel-netizen/disbod/internal/handlers"
	"github.com/uduakgabriel-netizen/disbod/internal/middleware"
	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/services/auth"
	"github.com/uduakgabriel-netizen/disbod/internal/services/business"
	"github.com/uduakgabriel-netizen/disbod/internal/services/chat"
	"github.com/uduakgabriel-netizen/disbod/internal/services/explore"
	"github.com/uduakgabriel-netizen/disbod/internal/services/follow"
	"github.com/uduakgabriel-netizen/disbod/internal/services/media"
	"github.com/uduakgabriel-netizen/disbod/internal/services/notification"
	"github.com/uduakgabriel-netizen/disbod/internal/services/premium"
	"github.com/uduakgabriel-netizen/disbod/internal/services/product"
	"github.com/uduakgabriel-netizen/disbod/internal/services/rating"
	"github.com/uduakgabriel-netizen/disbod/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	followRepo := repositories.NewFollowRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	businessRepo := repositories.NewBusinessRepository(db)
	productRepo := repositories.NewProductRepository(db)
	exploreRepo := repositories.NewExploreRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	mediaRepo := repositories.NewMediaRepository(db)

	// Services
	notificationService := notification.NewService(notificationRepo)
	authService := auth.NewService(userRepo, repositories.CacheService)
	userService := user.NewService(userRepo)
	followService := follow.NewService(followRepo, userRepo, notificationService)
	ratingService := rating.NewService(ratingRepo, userRepo, notificationService)
	businessService := business.NewService(businessRepo, userRepo, notificationService)
	productService := product.NewService(productRepo, businessRepo)
	exploreService := explore.NewService(exploreRepo, repositories.CacheService)
	chatService := chat.NewService(chatRepo, userRepo, notificationService)
	mediaService := media.NewService(mediaRepo)
	premiumService := premium.NewService(userRepo, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, followService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	productHandler := handlers.NewProductHandler(productService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	exploreHandler := handlers.NewExploreHandler(exploreService, productService)
	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	premiumHandler := handlers.NewPremiumHandler(premiumService)
	adminHandler := handlers.NewAdminHandler(userService, businessService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Disbod API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/verify", authHandler.VerifyEmail)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, repositories.CacheService)
	protected := api.Use(authMiddleware.Handler)

	setupAccountRoutes(protected, authHandler, userHandler, premiumHandler)
	setupBusinessRoutes(protected, businessHandler, productHandler)
	setupSocialRoutes(protected, ratingHandler, chatHandler, notificationHandler, mediaHandler)
	setupExploreRoutes(protected, exploreHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler)
}

func setupAccountRoutes(router fiber.Router, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler, premiumHandler *handlers.PremiumHandler) {
	router.Post("/logout", authHandler.Logout)
	router.Post("/change-password", authHandler.ChangePassword)

	router.Get("/profile", userHandler.GetProfile)
	router.Put("/profile", middleware.HasPermission(models.PermissionProfileWrite), userHandler.UpdateProfile)

	router.Get("/users/:id", userHandler.GetUser)
	router.Post("/users/:id/follow", middleware.HasPermission(models.PermissionFollowWrite), userHandler.FollowUser)
	router.Delete("/users/:id/follow", middleware.HasPermission(models.PermissionFollowWrite), userHandler.UnfollowUser)
	router.Get("/users/:id/followers", userHandler.GetFollowers)
	router.Get("/users/:id/following", userHandler.GetFollowing)

	router.Post("/premium/subscribe", premiumHandler.Subscribe)
}

func setupBusinessRoutes(router fiber.Router, businessHandler *handlers.BusinessHandler, productHandler *handlers.ProductHandler) {
	businesses := router.Group("/businesses")
	businesses.Get("/", businessHandler.ListBusinesses)
	businesses.Post("/", middleware.HasPermission(models.PermissionBusinessWrite), businessHandler.CreateBusiness)
	businesses.Post("/verify/request", middleware.HasPermission(models.PermissionBusinessWrite), businessHandler.RequestVerification)
	businesses.Get("/:id", businessHandler.GetBusiness)
	businesses.Put("/:id", middleware.HasPermission(models.PermissionBusinessWrite), businessHandler.UpdateBusiness)
	businesses.Delete("/:id", middleware.HasPermission(models.PermissionBusinessWrite), businessHandler.DeleteBusiness)

	router.Get("/categories", productHandler.ListCategories)
	router.Post("/categories", middleware.HasPermission(models.PermissionProductWrite), productHandler.CreateCategory)

	products := router.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Post("/", middleware.HasPermission(models.PermissionProductWrite), productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", middleware.HasPermission(models.PermissionProductWrite), productHandler.UpdateProduct)
	products.Delete("/:id", middleware.HasPermission(models.PermissionProductWrite), productHandler.DeleteProduct)
	products.Post("/:id/view", productHandler.RecordView)
	products.Get("/:id/views", productHandler.ListViews)
}

func setupSocialRoutes(router fiber.Router, ratingHandler *handlers.RatingHandler, chatHandler *handlers.ChatHandler, notificationHandler *handlers.NotificationHandler, mediaHandler *handlers.MediaHandler) {
	ratings := router.Group("/ratings")
	ratings.Get("/", ratingHandler.ListRatings)
	ratings.Post("/", middleware.HasPermission(models.PermissionRatingWrite), ratingHandler.CreateRating)
	ratings.Get("/:id", ratingHandler.GetRating)
	ratings.Put("/:id", middleware.HasPermission(models.PermissionRatingWrite), ratingHandler.UpdateRating)
	ratings.Delete("/:id", middleware.HasPermission(models.PermissionRatingWrite), ratingHandler.DeleteRating)

	conversations := router.Group("/conversations", middleware.HasPermission(models.PermissionChatWrite))
	conversations.Get("/", chatHandler.ListConversations)
	conversations.Post("/start/:userId", chatHandler.StartConversation)
	conversations.Get("/:id/messages", chatHandler.ListMessages)
	conversations.Post("/:id/messages", chatHandler.SendMessage)

	notifications := router.Group("/notifications")
	notifications.Get("/", notificationHandler.ListNotifications)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/clear", notificationHandler.ClearNotifications)

	router.Get("/media", mediaHandler.ListMedia)
	router.Post("/media", middleware.HasPermission(models.PermissionMediaWrite), mediaHandler.CreateMedia)
}

func setupExploreRoutes(router fiber.Router, exploreHandler *handlers.ExploreHandler) {
	explore := router.Group("/explore")
	explore.Get("/trending-products", exploreHandler.TrendingProducts)
	explore.Get("/suggested", exploreHandler.SuggestedBusinesses)
	explore.Get("/top-businesses", exploreHandler.TopBusinesses)
	explore.Get("/search", exploreHandler.Search)
	explore.Get("/categories", exploreHandler.Categories)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListUsers)
	admin.Delete("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.DeleteUser)
	admin.Post("/businesses/verify/:id/approve", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ApproveVerification)
	admin.Post("/businesses/:id/feature", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.FeatureBusiness)
	admin.Delete("/businesses/:id/feature", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.UnfeatureBusiness)
}
