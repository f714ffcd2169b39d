package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/neonglow/neonglow-backend-go/config"
	"github.com/neonglow/neonglow-backend-go/database"
	customMiddleware "github.com/neonglow/neonglow-backend-go/middleware"
	"github.com/neonglow/neonglow-backend-go/routes"
	"github.com/neonglow/neonglow-backend-go/utils"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Required secrets; missing ones are a startup fatal, never a default.
	config.MustGetEnv("JWT_SECRET")

	// Initialize Echo
	e := echo.New()
	e.Validator = utils.NewRequestValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(customMiddleware.Metrics)

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.EnsureIndexes(); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Configure the remote image store
	if err := utils.InitCloudinary(); err != nil {
		log.Fatal("Failed to configure Cloudinary:", err)
	}

	// Setup routes
	routes.SetupRoutes(e)

	// Start the server
	port := config.GetEnv("PORT", "3000")
	e.Logger.Fatal(e.Start(":" + port))
}
