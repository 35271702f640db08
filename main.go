package main

import (
	"fmt"
	"log"
	"net/http"

	authService "galleryadmin/internal/application/auth"
	eventService "galleryadmin/internal/application/event"
	photoService "galleryadmin/internal/application/photo"
	"galleryadmin/internal/delivery/http/handler"
	"galleryadmin/internal/delivery/http/router"
	"galleryadmin/internal/infrastructure/apiclient"
	"galleryadmin/internal/infrastructure/config"
	"galleryadmin/internal/infrastructure/database"
	"galleryadmin/internal/infrastructure/session"
	"galleryadmin/internal/infrastructure/staging"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize infrastructure
	sessions, err := session.NewStore(db, cfg.SessionSecret)
	if err != nil {
		log.Fatal("Failed to open session store:", err)
	}
	staged, err := staging.New(cfg.StagingPath)
	if err != nil {
		log.Fatal("Failed to prepare staging directory:", err)
	}
	client := apiclient.New(cfg.APIBaseURL, sessions)

	// Initialize services
	authSvc := authService.NewService(client, sessions)
	eventSvc := eventService.NewService(client, staged)
	photoSvc := photoService.NewService(client)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Dashboard: handler.NewDashboardHandler(authSvc),
		Account:   handler.NewAccountHandler(authSvc),
		Event:     handler.NewEventHandler(eventSvc, cfg.MaxUploadSize),
		Photo:     handler.NewPhotoHandler(photoSvc, cfg.MaxUploadSize),
	}
	mux := router.Setup(handlers, sessions)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Println("=================================")
	fmt.Println("     Gallery Admin Panel")
	fmt.Println("=================================")
	fmt.Printf("Panel:     http://localhost%s/admin/dashboard\n", addr)
	fmt.Printf("Backend:   %s\n", cfg.APIBaseURL)
	fmt.Printf("Database:  %s\n", cfg.DatabasePath)
	fmt.Println("=================================")
	log.Fatal(http.ListenAndServe(addr, mux))
}
