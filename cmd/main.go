package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/alvarots/checkauto/internal/alerts"
	"github.com/alvarots/checkauto/internal/auth"
	"github.com/alvarots/checkauto/internal/catalog"
	"github.com/alvarots/checkauto/internal/db"
	"github.com/alvarots/checkauto/internal/handlers"
	"github.com/alvarots/checkauto/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "checkauto"
	}

	cat := catalog.Default()
	store := db.NewStore(client.Database(dbName), cat)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	var notifier *alerts.Notifier
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		notifier, err = alerts.NewNotifier(broker, cat)
		if err != nil {
			log.WithError(err).Warn("MQTT broker unreachable, alerts disabled")
		} else {
			log.WithField("broker", broker).Info("MQTT alerts enabled")
		}
	}

	authHandler := handlers.NewAuthHandler(authService, store)
	vehicleHandler := handlers.NewVehicleHandler(store, store, notifier)
	configHandler := handlers.NewConfigHandler(store, cat)
	historyHandler := handlers.NewHistoryHandler(store, store, store, notifier)
	modHandler := handlers.NewModificationHandler(store)
	healthHandler := handlers.NewHealthHandler(store, store, cat)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handlers.Liveness)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("PUT /api/auth/settings", authHandler.UpdateSettings)

	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{id}", vehicleHandler.Update)
	mux.HandleFunc("DELETE /api/vehicles/{id}", vehicleHandler.Delete)
	mux.HandleFunc("PUT /api/vehicles/{id}/mileage", vehicleHandler.UpdateMileage)

	mux.HandleFunc("GET /api/vehicles/{id}/status", healthHandler.Status)
	mux.HandleFunc("GET /api/vehicles/{id}/health", healthHandler.Health)

	mux.HandleFunc("GET /api/vehicles/{id}/modifications", modHandler.List)
	mux.HandleFunc("POST /api/vehicles/{id}/modifications", modHandler.Create)
	mux.HandleFunc("POST /api/vehicles/{id}/modifications/{modID}/install", modHandler.Install)
	mux.HandleFunc("DELETE /api/vehicles/{id}/modifications/{modID}", modHandler.Delete)

	mux.HandleFunc("GET /api/configs", configHandler.List)
	mux.HandleFunc("PUT /api/configs", configHandler.BatchUpdate)
	mux.HandleFunc("PUT /api/configs/{id}", configHandler.Update)

	mux.HandleFunc("GET /api/history", historyHandler.List)
	mux.HandleFunc("POST /api/history", historyHandler.Create)
	mux.HandleFunc("PUT /api/history/{id}", historyHandler.Update)
	mux.HandleFunc("DELETE /api/history/{id}", historyHandler.Delete)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	handler := rateLimiter.RateLimit(100, 60)(authMiddleware.Authenticate(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
