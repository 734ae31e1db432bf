package main

import (
	"html/template"
	"net/http"

	"iotreg/config"
	"iotreg/database"
	"iotreg/handlers"
	"iotreg/middleware"
	"iotreg/notify"
	"iotreg/storage"
	"iotreg/teams"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if cfg.SeedSampleData {
		if err := database.SeedSampleTeams(15); err != nil {
			log.Fatalf("Failed to seed sample teams: %v", err)
		}
	}

	// Parse templates - each page template paired with base
	templates := make(map[string]*template.Template)
	pages := []string{
		"welcome", "register", "success", "login", "change-password",
		"dashboard", "teams", "team-detail", "broadcast",
	}
	for _, page := range pages {
		templates[page] = template.Must(template.New("").ParseFiles(
			"templates/base.html",
			"templates/"+page+".html",
		))
	}

	// Wire the team workflow: store, file storage, async notifications
	store := teams.NewStore(database.GetDB())
	files := storage.NewDiskStore(cfg.UploadDir)
	notifier := notify.NewAsyncNotifier(notify.NewLogNotifier(), 64)
	defer notifier.Close()
	service := teams.NewService(store, files, notifier)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, templates)
	teamHandler := handlers.NewTeamHandler(cfg, templates, service)
	adminHandler := handlers.NewAdminHandler(cfg, templates, service)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Get("/", teamHandler.WelcomePage)
	router.Get("/health-check", teamHandler.HealthCheck)
	router.Get("/teams/register", teamHandler.RegisterPage)
	router.Post("/teams", teamHandler.Register)
	router.Get("/login", authHandler.LoginPage)
	router.Post("/login", authHandler.Login)

	// Stored team documents (public disk)
	router.Handle("/storage/*", http.StripPrefix("/storage/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		// Logout (doesn't need password change check)
		r.Get("/logout", authHandler.Logout)

		// Password change routes (accessible even when password change required)
		r.Get("/change-password", authHandler.ChangePasswordPage)
		r.Post("/change-password", authHandler.ChangePassword)

		// Routes that require password to be changed first
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordChange)

			r.Get("/admin", adminHandler.Dashboard)
			r.Get("/admin/teams", adminHandler.TeamsPage)
			r.Get("/admin/teams/{id}", adminHandler.TeamDetailPage)
			r.Post("/admin/teams/{id}/status", adminHandler.UpdateStatus)
			r.Post("/admin/teams/{id}/delete", adminHandler.DeleteTeam)
			r.Post("/admin/teams/{id}/remind", adminHandler.SendReminder)
			r.Get("/admin/broadcast", adminHandler.BroadcastPage)
			r.Post("/admin/broadcast", adminHandler.Broadcast)
		})
	})

	log.Infof("Server starting on port %s", cfg.ServerPort)
	log.Info("Default admin credentials: admin / admin")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
