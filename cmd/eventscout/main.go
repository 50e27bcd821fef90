package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/eventscout/eventscout/pkg/collectors"
	"github.com/eventscout/eventscout/pkg/config"
	"github.com/eventscout/eventscout/pkg/integrations"
	"github.com/eventscout/eventscout/pkg/interfaces"
)

func main() {
	log.Println("Starting EventScout backend...")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize database
	var db *sql.DB
	switch cfg.Database.Driver {
	case "postgres":
		db, err = collectors.NewPostgresDB(cfg.Database.GetDSN())
	default:
		db, err = collectors.NewSQLiteDB(cfg.Database.Path)
	}
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	favoriteRepo, err := collectors.NewFavoriteRepository(db, cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to create favorite repository: %v", err)
	}

	// Initialize provider clients
	ticketmaster, err := integrations.NewTicketmasterClient(integrations.TicketmasterConfig{
		APIKey: cfg.APIs.Ticketmaster.APIKey,
	})
	if err != nil {
		log.Fatalf("Failed to create Ticketmaster client: %v", err)
	}

	spotify, err := integrations.NewSpotifyClient(integrations.SpotifyConfig{
		ClientID:     cfg.APIs.Spotify.ClientID,
		ClientSecret: cfg.APIs.Spotify.ClientSecret,
	})
	if err != nil {
		log.Fatalf("Failed to create Spotify client: %v", err)
	}

	// Initialize services
	favoriteService := interfaces.NewFavoriteService(favoriteRepo)
	eventService := interfaces.NewEventService(ticketmaster, spotify)

	// Initialize HTTP handlers
	favoriteHandler := interfaces.NewFavoriteHandler(favoriteService)
	eventHandler := interfaces.NewEventHandler(eventService)

	// Setup router
	router := mux.NewRouter()
	favoriteHandler.RegisterRoutes(router)
	eventHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Log available routes
	log.Println("Available routes:")
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, _ := route.GetPathTemplate()
		methods, _ := route.GetMethods()
		log.Printf("  %v %s", methods, path)
		return nil
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped. See you at the show.")
}
