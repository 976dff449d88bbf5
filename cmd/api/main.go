package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tripmate/api/docs"
	"github.com/tripmate/api/internal/config"
	"github.com/tripmate/api/internal/database"
	"github.com/tripmate/api/internal/expense"
	expensesplit "github.com/tripmate/api/internal/expense/split"
	"github.com/tripmate/api/internal/geocode"
	"github.com/tripmate/api/internal/itinerary"
	"github.com/tripmate/api/internal/realtime"
	"github.com/tripmate/api/internal/trip"
	"github.com/tripmate/api/internal/user"
	mw "github.com/tripmate/api/pkg/middleware"
)

// @title           TripMate API
// @version         1.0
// @description     Collaborative trip planning with shared itineraries and expense splitting.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Connected to database successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Change feed: local hub, optionally bridged across instances via redis
	hub := realtime.NewHub()
	defer hub.Close()

	var publisher realtime.Publisher = hub
	if cfg.RedisAddr != "" {
		bridge := realtime.NewBridge(hub, cfg.RedisAddr)
		defer bridge.Close()
		go bridge.Run(ctx)
		publisher = bridge
		log.Printf("Realtime bridge connected to redis at %s", cfg.RedisAddr)
	}

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	// Trip feature
	tripRepo := trip.NewRepository(db)
	tripService := trip.NewService(tripRepo, publisher)
	tripHandler := trip.NewHandler(tripService)

	// Expense feature (with split factory injected; trips provide the roster)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, publisher)
	expenseHandler := expense.NewHandler(expenseService, tripService)
	expenseService.WatchChanges(ctx, hub)

	// Itinerary feature
	itineraryRepo := itinerary.NewRepository(db)
	itineraryService := itinerary.NewService(itineraryRepo, publisher)
	itineraryHandler := itinerary.NewHandler(itineraryService)

	// Geocoding feature
	geocodeClient := geocode.NewClient(cfg.MapboxToken)
	geocodeHandler := geocode.NewHandler(geocodeClient)

	// Realtime feature
	realtimeHandler := realtime.NewHandler(hub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Onboarding happens before a device has a token
		r.Post("/register", userHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(mw.DeviceAuth(cfg.JWTSecret))

			// Mount feature routers
			r.Mount("/users", userHandler.Routes())
			r.Mount("/trips", tripHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/itinerary", itineraryHandler.Routes())
			r.Mount("/geocode", geocodeHandler.Routes())
			r.Mount("/realtime", realtimeHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
