package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/labmath/labmath-site/internal/config"
	"github.com/labmath/labmath-site/internal/database"
	"github.com/labmath/labmath-site/internal/handlers"
	"github.com/labmath/labmath-site/internal/repository"
	"github.com/labmath/labmath-site/internal/services"
	"github.com/labmath/labmath-site/internal/storage"
	"github.com/labmath/labmath-site/pkg/email"
	"github.com/labmath/labmath-site/pkg/logger"
	"github.com/labmath/labmath-site/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	// --- Stores ---
	store := storage.NewStore(cfg.DataFile)
	contactFile := storage.NewContactFileStore(cfg.ContactsFile)

	// The database is optional. When it is absent or unreachable, contact
	// submissions go to the JSON fallback file.
	var contactRepo *repository.ContactRepository
	if cfg.DatabaseDSN != "" {
		db, err := database.Connect(context.Background(), cfg.DatabaseDSN)
		if err != nil {
			logger.Log.WithError(err).Warn("Database unavailable, contact submissions will use the JSON fallback")
		} else {
			contactRepo = repository.NewContactRepository(db)
			logger.Log.Info("Connected to contact database")
		}
	}

	// Email is optional too.
	var mailer email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)
	}

	// --- Services ---
	contentService := services.NewContentService(store)
	contactService := services.NewContactService(contactRepo, contactFile, mailer, cfg.AdminEmail)

	// --- Handlers ---
	contentHandler := handlers.NewContentHandler(contentService)
	contactHandler := handlers.NewContactHandler(contactService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)
	statusHandler := handlers.NewStatusHandler(contentService)
	pagesHandler, err := handlers.NewPagesHandler("web")
	if err != nil {
		log.Fatalf("Template parsing error: %v", err)
	}

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public API routes
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", statusHandler.HealthHandler).Methods("GET")
	api.HandleFunc("/status", statusHandler.StatusPageHandler).Methods("GET")
	api.HandleFunc("/activites", contentHandler.ListActivitesHandler).Methods("GET")
	api.HandleFunc("/activites/{id}", contentHandler.GetActiviteHandler).Methods("GET")
	api.HandleFunc("/realisations", contentHandler.ListRealisationsHandler).Methods("GET")
	api.HandleFunc("/annonces", contentHandler.ListAnnoncesHandler).Methods("GET")
	api.HandleFunc("/offres", contentHandler.ListOffresHandler).Methods("GET")
	api.HandleFunc("/contact", contactHandler.SubmitContactHandler).Methods("POST")

	// Privileged API routes behind the shared key
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.APIKeyAuth(cfg.APIKey))
	protected.HandleFunc("/activites", contentHandler.UpsertActiviteHandler).Methods("POST")
	protected.HandleFunc("/activites/{id}", contentHandler.UpsertActiviteHandler).Methods("POST")
	protected.HandleFunc("/activites/{id}", contentHandler.DeleteActiviteHandler).Methods("DELETE")
	protected.HandleFunc("/realisations", contentHandler.UpsertRealisationHandler).Methods("POST")
	protected.HandleFunc("/realisations/{id}", contentHandler.UpsertRealisationHandler).Methods("POST")
	protected.HandleFunc("/realisations/{id}", contentHandler.DeleteRealisationHandler).Methods("DELETE")
	protected.HandleFunc("/annonces", contentHandler.UpsertAnnonceHandler).Methods("POST")
	protected.HandleFunc("/annonces/{id}", contentHandler.UpsertAnnonceHandler).Methods("POST")
	protected.HandleFunc("/annonces/{id}", contentHandler.DeleteAnnonceHandler).Methods("DELETE")
	protected.HandleFunc("/offres", contentHandler.UpsertOffreHandler).Methods("POST")
	protected.HandleFunc("/offres/{id}", contentHandler.UpsertOffreHandler).Methods("POST")
	protected.HandleFunc("/offres/{id}", contentHandler.DeleteOffreHandler).Methods("DELETE")
	protected.HandleFunc("/contacts", contactHandler.ListContactsHandler).Methods("GET")
	protected.HandleFunc("/upload", uploadHandler.UploadFileHandler).Methods("POST")

	// Uploaded files
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Static page routes
	router.HandleFunc("/", pagesHandler.Page("index.html")).Methods("GET")
	router.HandleFunc("/activites", pagesHandler.Page("activites.html")).Methods("GET")
	router.HandleFunc("/realisations", pagesHandler.Page("realisations.html")).Methods("GET")
	router.HandleFunc("/annonces", pagesHandler.Page("annonces.html")).Methods("GET")
	router.HandleFunc("/offres", pagesHandler.Page("offres.html")).Methods("GET")
	router.HandleFunc("/contact", pagesHandler.Page("contact.html")).Methods("GET")
	router.HandleFunc("/about", pagesHandler.Page("about.html")).Methods("GET")
	router.HandleFunc("/a-propos", pagesHandler.Page("about.html")).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(pagesHandler.NotFoundHandler)

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
