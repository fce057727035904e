package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusleave/internal/domain/audit"
	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/core"
	"campusleave/internal/domain/leave"
	"campusleave/internal/domain/notifications"
	"campusleave/internal/domain/schedule"
	"campusleave/internal/domain/wizard"
	"campusleave/internal/platform/config"
	"campusleave/internal/platform/db"
	"campusleave/internal/platform/email"
	"campusleave/internal/platform/jobs"
	"campusleave/internal/platform/metrics"
	"campusleave/internal/transport/http/api"
	audithandler "campusleave/internal/transport/http/handlers/audit"
	authhandler "campusleave/internal/transport/http/handlers/auth"
	corehandler "campusleave/internal/transport/http/handlers/core"
	leavehandler "campusleave/internal/transport/http/handlers/leave"
	notificationshandler "campusleave/internal/transport/http/handlers/notifications"
	schedulehandler "campusleave/internal/transport/http/handlers/schedule"
	wizardhandler "campusleave/internal/transport/http/handlers/wizard"
	"campusleave/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler

	stopJobs context.CancelFunc
}

// New connects, migrates, seeds and wires the whole application. The
// returned App owns the pool and the background job workers; call Close
// when done with it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	authStore := auth.NewStore(pool)
	coreService := core.NewService(core.NewStore(pool))
	scheduleService := schedule.NewService(schedule.NewStore(pool))
	leaveStore := leave.NewStore(pool)
	leaveService := leave.NewService(leaveStore, scheduleService)
	drafts := wizard.NewRegistry()
	auditService := audit.New(pool)
	notifyService := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailFrom)

	jobService := jobs.New(pool, cfg, leaveStore, notifyService, drafts)
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	jobService.Start(jobsCtx)

	collector := metrics.New()
	isProd := cfg.Environment == "production"

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(isProd))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(collector))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, auditService)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Post("/auth/refresh", authHandler.HandleRefresh)

		corehandler.NewHandler(coreService, authStore, auditService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, authStore, notifyService, auditService, middleware.NewIdempotencyStore(pool)).RegisterRoutes(r)
		wizardhandler.NewHandler(drafts, leaveService, scheduleService, authStore, notifyService, auditService).RegisterRoutes(r)
		schedulehandler.NewHandler(scheduleService, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifyService, authStore).RegisterRoutes(r)
		audithandler.NewHandler(auditService, authStore).RegisterRoutes(r)
	})

	return &App{
		Config:   cfg,
		DB:       pool,
		Router:   router,
		stopJobs: stopJobs,
	}, nil
}

func (a *App) Close() {
	if a.stopJobs != nil {
		a.stopJobs()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
