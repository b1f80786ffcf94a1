package main

import (
	"log"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/routes"
	"github.com/alumnifund/AlumniFund/services"
	"github.com/alumnifund/AlumniFund/utils"
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

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Load the FAQ knowledge base for the chatbot
	faqFile := cfg.FAQFile
	if faqFile == "" {
		faqFile = "faq.json"
	}
	faq, err := services.LoadFAQ(faqFile)
	if err != nil {
		utils.LogError("Error loading FAQ file: %v", err)
		log.Fatal("Error loading FAQ file:", err)
	}

	// Payment provider client and live donation feed
	gateway := services.NewGatewayClient(services.GatewayConfig{
		AppID:       cfg.PGAppID,
		Secret:      cfg.PGSecret,
		BaseURL:     cfg.PGBaseURL,
		FrontendURL: cfg.FrontendURL,
	})
	feed := services.NewLiveFeed()
	controllers.InitPayments(gateway, feed)

	// Setup router
	router := routes.SetupRouter(faq)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Failed to start server: %v", err)
		log.Fatal("Failed to start server:", err)
	}
}
