package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/cityteam/guests-api/internal/auth"
	"github.com/cityteam/guests-api/internal/config"
	"github.com/cityteam/guests-api/internal/database"
	"github.com/cityteam/guests-api/internal/handlers"
	"github.com/cityteam/guests-api/internal/notifier"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load Configuration
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Notifier
	var staffNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" && cfg.DiscordNotificationsChannel != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			staffNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannel)
		}
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	facilityHandler := handlers.NewFacilityHandler(db, staffNotifier)
	guestHandler := handlers.NewGuestHandler(db)
	registrationHandler := handlers.NewRegistrationHandler(db)
	banHandler := handlers.NewBanHandler(db, staffNotifier)
	templateHandler := handlers.NewTemplateHandler(db)
	devModeHandler := handlers.NewDevModeHandler(db, cfg)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, facilityHandler, guestHandler,
		registrationHandler, banHandler, templateHandler, devModeHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
