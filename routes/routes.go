package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neonglow/neonglow-backend-go/handlers"
	customMiddleware "github.com/neonglow/neonglow-backend-go/middleware"
)

func SetupRoutes(e *echo.Echo) {
	// Admin account lifecycle
	e.POST("/admin/signup", handlers.AdminSignup)
	e.POST("/admin/login", handlers.AdminLogin)
	e.GET("/admin/verify", handlers.VerifyAdminToken)

	// Background images: public reads, admin mutation
	e.GET("/background-images", handlers.GetAllBackgroundImages)
	e.GET("/background-images/:id", handlers.GetBackgroundImage)
	e.POST("/background-images", handlers.CreateBackgroundImage, customMiddleware.AdminAuthMiddleware)
	e.PUT("/background-images/:id", handlers.UpdateBackgroundImage, customMiddleware.AdminAuthMiddleware)
	e.DELETE("/background-images/:id", handlers.DeleteBackgroundImage, customMiddleware.AdminAuthMiddleware)

	// Best sellers
	e.GET("/best-sellers", handlers.GetAllBestSellers)
	e.GET("/best-sellers/:id", handlers.GetBestSeller)
	e.POST("/best-sellers", handlers.CreateBestSeller, customMiddleware.AdminAuthMiddleware)
	e.PUT("/best-sellers/:id", handlers.UpdateBestSeller, customMiddleware.AdminAuthMiddleware)
	e.DELETE("/best-sellers/:id", handlers.DeleteBestSeller, customMiddleware.AdminAuthMiddleware)

	// Featured products
	e.GET("/featured-products", handlers.GetAllFeaturedProducts)
	e.GET("/featured-products/:id", handlers.GetFeaturedProduct)
	e.POST("/featured-products", handlers.CreateFeaturedProduct, customMiddleware.AdminAuthMiddleware)
	e.PUT("/featured-products/:id", handlers.UpdateFeaturedProduct, customMiddleware.AdminAuthMiddleware)
	e.DELETE("/featured-products/:id", handlers.DeleteFeaturedProduct, customMiddleware.AdminAuthMiddleware)

	// Customization options
	e.GET("/customization-options", handlers.GetCustomizationOptions)
	e.GET("/customization-options/:productType", handlers.GetCustomizationOptionsByType)
	e.POST("/customization-options", handlers.CreateCustomizationOptions, customMiddleware.AdminAuthMiddleware)
	e.POST("/customization-options/upload-image", handlers.UploadCustomizationImage, customMiddleware.AdminAuthMiddleware)
	e.PUT("/customization-options/:productType", handlers.UpdateCustomizationOptions, customMiddleware.AdminAuthMiddleware)
	e.DELETE("/customization-options/:productType", handlers.DeleteCustomizationOptions, customMiddleware.AdminAuthMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
