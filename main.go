package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"baf-backend/config"
	"baf-backend/database"
	"baf-backend/handlers"
	"baf-backend/middleware"
	"baf-backend/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer database.Close()

	// Firebase is optional, the server runs without push notifications
	fcmService, err := services.NewFCMService(cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Printf("⚠️  Firebase initialization failed: %v", err)
		log.Println("⚠️  Starting WITHOUT push notifications")
		fcmService = services.NewDisabledFCMService()
	}

	// Cloudinary is required for registrations but the rest of the API
	// still works without it
	var storageService *services.StorageService
	if cfg.CloudinaryURL != "" {
		storageService, err = services.NewStorageService(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Printf("⚠️  Cloudinary initialization failed: %v", err)
			storageService = nil
		}
	} else {
		log.Println("⚠️  CLOUDINARY_URL not set - document uploads disabled")
	}

	slackService := services.NewSlackService(cfg.SlackWebhookURL)

	programCron := services.NewProgramCron(database.DB, fcmService)
	programCron.Start()
	defer programCron.Stop()

	router := mux.NewRouter()

	router.Use(middleware.Logging(slackService))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := handlers.NewHealthHandler(cfg.Environment)
	authHandler := handlers.NewAuthHandler(database.DB, cfg.JWTSecret)
	programHandler := handlers.NewProgramHandler(database.DB, storageService)
	registrationHandler := handlers.NewRegistrationHandler(database.DB, storageService, fcmService)
	galleryHandler := handlers.NewGalleryHandler(database.DB, storageService)
	teamHandler := handlers.NewTeamHandler(database.DB, storageService)
	contactHandler := handlers.NewContactHandler(database.DB)
	settingsHandler := handlers.NewSettingsHandler(database.DB)
	adminHandler := handlers.NewAdminHandler(database.DB)
	fcmHandler := handlers.NewFCMHandler(database.DB, fcmService, cfg.FCMVAPIDKey)
	alertHandler := handlers.NewAlertHandler(database.DB, fcmService, slackService)

	guestMiddleware := middleware.Guest(cfg.JWTSecret)
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminMiddleware := middleware.RequireAdmin(database.DB)

	// Public routes
	router.HandleFunc("/api/health", healthHandler.Health).Methods("GET")
	router.Handle("/api/auth/login", guestMiddleware(http.HandlerFunc(authHandler.Login))).Methods("POST", "OPTIONS")

	router.HandleFunc("/api/programs", programHandler.ListPrograms).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/programs/{program_id}", programHandler.GetProgram).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/programs/{program_id}/register", registrationHandler.Register).Methods("POST", "OPTIONS")

	router.HandleFunc("/api/registrations/{registration_id}", registrationHandler.GetConfirmation).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/registrations/{registration_id}/receipt", registrationHandler.GetReceipt).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/gallery", galleryHandler.ListImages).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/team", teamHandler.ListMembers).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/contact", contactHandler.Submit).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/settings", settingsHandler.GetSettings).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/fcm/vapid-key", fcmHandler.GetVAPIDKey).Methods("GET", "OPTIONS")

	// Alerts stay public so a broken admin session can still report
	router.HandleFunc("/api/alerts/critical", alertHandler.SendCriticalAlert).Methods("POST", "OPTIONS")

	// Authenticated routes
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}
	router.Handle("/api/auth/me", protected(authHandler.Me)).Methods("GET", "OPTIONS")
	router.Handle("/api/fcm/subscribe", protected(fcmHandler.Subscribe)).Methods("POST", "OPTIONS")
	router.Handle("/api/fcm/unsubscribe", protected(fcmHandler.Unsubscribe)).Methods("POST", "OPTIONS")

	// Admin routes
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(adminMiddleware(h))
	}

	router.Handle("/api/admin/registrations", admin(registrationHandler.ListRegistrations)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/registrations/export", admin(registrationHandler.Export)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/registrations/{id}", admin(registrationHandler.GetRegistration)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/registrations/{id}/status", admin(registrationHandler.UpdateStatus)).Methods("PUT", "OPTIONS")
	router.Handle("/api/admin/registrations/{id}", admin(registrationHandler.Delete)).Methods("DELETE", "OPTIONS")

	router.Handle("/api/admin/programs", admin(programHandler.ListAllPrograms)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/programs", admin(programHandler.CreateProgram)).Methods("POST", "OPTIONS")
	router.Handle("/api/admin/programs/{program_id}", admin(programHandler.UpdateProgram)).Methods("PUT", "OPTIONS")
	router.Handle("/api/admin/programs/{program_id}", admin(programHandler.DeleteProgram)).Methods("DELETE", "OPTIONS")
	router.Handle("/api/admin/programs/{program_id}/qr-code", admin(programHandler.UploadQRCode)).Methods("POST", "OPTIONS")

	router.Handle("/api/admin/gallery", admin(galleryHandler.UploadImage)).Methods("POST", "OPTIONS")
	router.Handle("/api/admin/gallery/{id}", admin(galleryHandler.UpdateImage)).Methods("PUT", "OPTIONS")
	router.Handle("/api/admin/gallery/{id}", admin(galleryHandler.DeleteImage)).Methods("DELETE", "OPTIONS")

	router.Handle("/api/admin/team", admin(teamHandler.CreateMember)).Methods("POST", "OPTIONS")
	router.Handle("/api/admin/team/{id}", admin(teamHandler.UpdateMember)).Methods("PUT", "OPTIONS")
	router.Handle("/api/admin/team/{id}", admin(teamHandler.DeleteMember)).Methods("DELETE", "OPTIONS")

	router.Handle("/api/admin/messages", admin(contactHandler.ListMessages)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/messages/{id}/read", admin(contactHandler.MarkRead)).Methods("PUT", "OPTIONS")
	router.Handle("/api/admin/messages/{id}", admin(contactHandler.DeleteMessage)).Methods("DELETE", "OPTIONS")

	router.Handle("/api/admin/settings", admin(settingsHandler.UpdateSettings)).Methods("PUT", "OPTIONS")

	router.Handle("/api/admin/users", admin(adminHandler.ListUsers)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/users/{id}", admin(adminHandler.UpdateUser)).Methods("PUT", "OPTIONS")
	router.Handle("/api/admin/users/{id}", admin(adminHandler.DeleteUser)).Methods("DELETE", "OPTIONS")
	router.Handle("/api/admin/stats", admin(adminHandler.Stats)).Methods("GET", "OPTIONS")
	router.Handle("/api/admin/notifications/test", admin(fcmHandler.TestNotification)).Methods("POST", "OPTIONS")

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server listening on http://%s", addr)
		log.Printf("📝 Environment: %s", cfg.Environment)
		log.Printf("🗄️  Database: MongoDB (%s)", cfg.MongoDB)
		log.Println("📋 Routes:")
		log.Println("   GET    /api/health                                - Health check")
		log.Println("   POST   /api/auth/login                            - Admin login")
		log.Println("   GET    /api/programs                              - Active programs (public)")
		log.Println("   GET    /api/programs/{id}                         - Program details + eligibility (public)")
		log.Println("   POST   /api/programs/{id}/register                - Submit registration (public)")
		log.Println("   GET    /api/registrations/{reg_id}                - Confirmation lookup (public)")
		log.Println("   GET    /api/registrations/{reg_id}/receipt        - Receipt download (public)")
		log.Println("   GET    /api/gallery                               - Gallery (public)")
		log.Println("   GET    /api/team                                  - Team (public)")
		log.Println("   POST   /api/contact                               - Contact form (public)")
		log.Println("   GET    /api/settings                              - Site settings (public)")
		log.Println("   POST   /api/alerts/critical                       - Critical alerts (public)")
		log.Println("")
		log.Println("   👑 Admin routes (admin=1 required):")
		log.Println("   GET    /api/admin/registrations                   - Review table (filter/search)")
		log.Println("   GET    /api/admin/registrations/export            - CSV export")
		log.Println("   PUT    /api/admin/registrations/{id}/status       - Approve/reject")
		log.Println("   CRUD   /api/admin/programs                        - Program management")
		log.Println("   CRUD   /api/admin/gallery, /team, /messages       - Content management")
		log.Println("   GET    /api/admin/stats                           - Dashboard statistics")
		log.Println("")
		log.Println("✨ Server is ready!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Shutting down...")
	programCron.Stop()
	if err := server.Close(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✓ Server stopped")
}
