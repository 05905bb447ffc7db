package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/254Kioko/spin-flow-log/internal/auth"
	"github.com/254Kioko/spin-flow-log/internal/config"
	"github.com/254Kioko/spin-flow-log/internal/handlers"
	"github.com/254Kioko/spin-flow-log/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// Admin gate: one Guard instance owns the session flag lifecycle.
	guard := auth.NewGuard(sessionStore, cfg.AdminPassword, cfg.AdminPasswordHash)

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	orderHandler := &handlers.OrderHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	adminHandler := &handlers.AdminHandler{
		Store:     db,
		Guard:     guard,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for public submissions
	rateLimiter := handlers.NewRateLimiter(30 * time.Second)

	// Public Routes
	mux.HandleFunc("/{$}", orderHandler.OrderForm)
	mux.HandleFunc("POST /order", rateLimiter.Middleware(orderHandler.SubmitOrder))
	mux.HandleFunc("/track", orderHandler.TrackOrder)

	// Admin Routes
	mux.HandleFunc("/admin/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /admin/login", adminHandler.LoginPost)
	mux.HandleFunc("/admin/logout", adminHandler.Logout)
	mux.HandleFunc("/admin", guard.Require(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/orders/status", guard.Require(adminHandler.UpdateOrderStatus))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
