package main

import (
	"log"

	"github.com/nikhil-742/ShopNest/config"
	"github.com/nikhil-742/ShopNest/controllers"
	"github.com/nikhil-742/ShopNest/routes"
	"github.com/nikhil-742/ShopNest/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Initialize payment gateway
	config.InitPaymentGateway(cfg)

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}

	utils.LogInfo("%s listening on port %s", utils.AppName, port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Server failed: %v", err)
		log.Fatal("Server failed:", err)
	}
}
