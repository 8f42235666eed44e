// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/config"
	"github.com/bazarcheck/bazarcheck-backend/internal/handlers"
	"github.com/bazarcheck/bazarcheck-backend/internal/middleware"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	repos := repository.NewGorm(db)
	return Build(repos, services.NewStripeProvider(cfg.Payment), cfg)
}

// Build wires repositories, services, and handlers onto a gin engine. Tests
// call it directly with in-memory stores and a fake payment provider.
func Build(repos *repository.Repositories, provider services.PaymentProvider, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg.Email)
	storageService, _ := services.NewStorageService(cfg.AWS)

	authService := services.NewAuthService(repos.Users, cfg.JWT)
	userService := services.NewUserService(repos.Users)
	vendorService := services.NewVendorService(repos.Applications, repos.Users)
	productService := services.NewProductService(repos.Products)
	adService := services.NewAdService(repos.Ads)
	wishlistService := services.NewWishlistService(repos.Wishlist, repos.Products)
	cartService := services.NewCartService(repos.Cart, repos.Products)
	orderService := services.NewOrderService(repos.Orders, repos.Cart, repos.Products, provider, cfg.Payment)
	commentService := services.NewCommentService(repos.Comments, repos.Products)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	productHandler := handlers.NewProductHandler(productService)
	adHandler := handlers.NewAdHandler(adService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	commentHandler := handlers.NewCommentHandler(commentService)
	contactHandler := handlers.NewContactHandler(notificationService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Role gates resolve the stored role per request; the token's role claim
	// is informational only.
	adminOnly := middleware.RequireRoles(repos.Users, models.RoleAdmin)
	vendorOnly := middleware.RequireRoles(repos.Users, models.RoleVendor, models.RoleAdmin)
	userOnly := middleware.RequireRoles(repos.Users, models.RoleUser)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Token and registration surface
	r.POST("/jwt", middleware.AuthRateLimit(), authHandler.IssueToken)
	r.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
	r.PATCH("/update-last-login", middleware.AuthRequired(), authHandler.RecordLogin)

	// Public catalog
	r.GET("/approved-products", productHandler.Approved)
	r.GET("/approved-ads", adHandler.Approved)
	r.GET("/single-product/:id", middleware.OptionalAuth(), productHandler.Get)
	r.GET("/comments/:productId", commentHandler.ListByProduct)

	// Contact form
	r.POST("/contact", middleware.AuthRateLimit(), contactHandler.Send)

	// Signed-in surface
	authed := r.Group("")
	authed.Use(middleware.AuthRequired())
	{
		// Vendor applications (plain users only; vendors already hold the role)
		authed.POST("/vendors/apply", userOnly, vendorHandler.Apply)

		// Wishlist
		authed.POST("/wishlist", wishlistHandler.Add)
		authed.GET("/get-wishlist", middleware.RequireSelf(), wishlistHandler.List)
		authed.DELETE("/delete-wishlist/:id", wishlistHandler.Remove)

		// Cart
		authed.POST("/cart", cartHandler.Add)
		authed.GET("/get-cart", middleware.RequireSelf(), cartHandler.List)
		authed.PATCH("/cart/update/:itemId", cartHandler.AdjustQuantity)
		authed.DELETE("/delete-productCart/:itemId", cartHandler.Remove)
		authed.DELETE("/clear-cart", cartHandler.Clear)

		// Checkout
		authed.POST("/create-payment-intent", orderHandler.CreateIntent)
		authed.POST("/create-payment-intent-cart", orderHandler.CreateIntentForCart)
		authed.POST("/create-order", orderHandler.Create)
		authed.POST("/save-payment", orderHandler.SavePayment)
		authed.GET("/orders", middleware.RequireSelf(), orderHandler.Mine)

		// Comments
		authed.POST("/comments", commentHandler.Create)
	}

	// Vendor surface
	vendor := r.Group("")
	vendor.Use(middleware.AuthRequired(), vendorOnly)
	{
		vendor.POST("/add-products", productHandler.Create)
		vendor.PATCH("/modify-product/:id", productHandler.Update)
		vendor.DELETE("/delete-products/:id", productHandler.Delete)
		vendor.GET("/my-products", middleware.RequireSelf(), productHandler.Mine)
		vendor.GET("/vendor/orders", middleware.RequireSelf(), orderHandler.Vendor)

		vendor.POST("/ads", adHandler.Create)
		vendor.GET("/my-ads", middleware.RequireSelf(), adHandler.Mine)
		vendor.DELETE("/ads/:id", adHandler.Delete)

		vendor.POST("/upload", middleware.UploadRateLimit(), uploadHandler.Upload)
	}

	// Admin surface
	admin := r.Group("")
	admin.Use(middleware.AuthRequired(), adminOnly)
	{
		admin.GET("/users", userHandler.List)
		admin.PATCH("/users/updateRole/:id", userHandler.UpdateRole)

		admin.GET("/vendor-requests", vendorHandler.List)
		admin.PATCH("/vendor-requests/:id", vendorHandler.Decide)

		admin.GET("/all-products", productHandler.All)
		admin.PATCH("/approve-product/:id", productHandler.Approve)
		admin.PATCH("/reject-product/:id", productHandler.Reject)

		admin.GET("/all-ads", adHandler.All)
		admin.PATCH("/approve-ad/:id", adHandler.Approve)
		admin.PATCH("/reject-ad/:id", adHandler.Reject)

		admin.GET("/admin/orders", orderHandler.Admin)
	}

	return r
}
