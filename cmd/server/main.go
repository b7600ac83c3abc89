package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"sakhigps/internal/config"
	"sakhigps/internal/handlers"
	authMiddleware "sakhigps/internal/middleware"
	"sakhigps/internal/render"
	"sakhigps/internal/schedule"
	"sakhigps/internal/services"
	"sakhigps/internal/session"
	"sakhigps/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Firebase
	var authClient *auth.Client
	if client, err := services.InitFirebase(ctx, cfg.FirebaseCredentialsPath); err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Using demo login until valid credentials are provided")
	} else {
		authClient = client
	}

	// Initialize Database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, scheduled check-ins disabled")
	}

	// Initialize Redis
	var cache *services.RedisCache
	var store session.Store
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer cache.Close()
		store = session.NewRedisStore(cache, cfg.SessionTTL)
	} else {
		log.Println("Warning: REDIS_URL not set, sessions are kept in memory only")
	}

	notifier, err := services.NewNotifier(cfg.Notify)
	if err != nil {
		log.Fatalf("Failed to set up notifications: %v", err)
	}

	sched := schedule.NewTickerScheduler(ctx)
	sessions := session.NewManager(sched, store, session.Config{
		NavPeriod:    cfg.NavStepPeriod,
		VoicePeriod:  cfg.VoiceStepPeriod,
		TTL:          cfg.SessionTTL,
		ReapInterval: session.DefaultConfig().ReapInterval,
	})
	stopReaper := sessions.StartReaper(ctx)
	defer stopReaper()

	renderer, err := render.New(web.FS)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler
	e.Renderer = renderer

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Static file serving
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	handlers.RegisterRoutes(e, handlers.Deps{
		AuthClient: authClient,
		Firebase: handlers.FirebaseWebConfig{
			APIKey:     cfg.FirebaseAPIKey,
			AuthDomain: cfg.FirebaseAuthDomain,
			ProjectID:  cfg.FirebaseProjectID,
		},
		Sessions: sessions,
		DB:       db,
		Cache:    cache,
		Notifier: notifier,
		Secure:   cfg.Production(),
	})

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	sessions.Shutdown(shutdownCtx)
	sched.Wait()
}
