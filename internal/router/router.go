package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"campuscare/internal/config"
	"campuscare/internal/handlers"
	"campuscare/internal/middleware"
	"campuscare/internal/models"
	"campuscare/internal/notify"
	"campuscare/internal/repository/postgres"
	"campuscare/internal/service"
	"campuscare/internal/upload"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config, uploads *upload.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Uploaded evidence images
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	// Repos + services + handlers
	userRepo := postgres.NewUserRepo(db)
	requestRepo := postgres.NewRequestRepo(db)
	lostItemRepo := postgres.NewLostItemRepo(db)
	notificationRepo := postgres.NewNotificationRepo(db)

	dispatcher := notify.NewDispatcher(notify.NewSMTPMailer(cfg, log), notificationRepo, log)

	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)
	workflow := service.NewWorkflow(requestRepo, userRepo, dispatcher, uploads.Dir(), log)
	lostFoundSvc := service.NewLostFoundService(lostItemRepo, userRepo, dispatcher, log)
	workerSvc := service.NewWorkerService(userRepo)

	ah := handlers.NewAuthHTTP(authSvc, userRepo)
	rh := handlers.NewRequestHTTP(workflow, uploads)
	lh := handlers.NewLostFoundHTTP(lostFoundSvc, uploads)
	wh := handlers.NewWorkerHTTP(workerSvc)
	nh := handlers.NewNotificationHTTP(notificationRepo)
	reph := handlers.NewReportsHTTP(requestRepo)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.Post("/forgot-password", ah.ForgotPassword())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
		r.With(middleware.RequireAuth).Post("/reset-password", ah.ResetPassword())
	})

	r.Route("/api/requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", rh.List())
		r.With(middleware.RequireRoles(string(models.RoleStudent))).Post("/", rh.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rh.Get())
			r.With(middleware.RequireRoles(string(models.RoleAdmin))).Post("/assign", rh.Assign())
			r.With(middleware.RequireRoles(string(models.RoleWorker))).Post("/status", rh.UpdateStatus())
		})
	})

	r.Route("/api/lost-items", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(string(models.RoleStudent)))
		r.Get("/", lh.List())
		r.Post("/", lh.Create())
		r.Post("/{id}/collected", lh.MarkCollected())
		r.Delete("/{id}", lh.Delete())
	})

	r.Route("/api/workers", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireRoles(string(models.RoleAdmin)))
		r.Get("/", wh.List())
		r.Post("/", wh.Create())
		r.Delete("/{id}", wh.Delete())
	})

	r.With(middleware.RequireAuth, middleware.RequireRoles(string(models.RoleAdmin))).
		Get("/api/notifications", nh.List())
	r.With(middleware.RequireAuth, middleware.RequireRoles(string(models.RoleAdmin))).
		Get("/api/reports/summary", reph.Summary())

	return r
}
