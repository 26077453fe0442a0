// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Newsdesk admin server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/docgen"

	"newsdesk/internal/cache"
	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/render"
	"newsdesk/internal/router"
	"newsdesk/internal/session"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
)

func main() {
	routes := flag.Bool("routes", false, "print the routing table as markdown and exit")
	createUser := flag.String("create-user", "", "create a staff user (email:password:name) and exit")
	deleteUser := flag.String("delete-user", "", "delete a staff user by email and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL and bring the schema up to date.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + article list cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	categoryStore := store.NewCategoryStore(db)
	mediaStore := store.NewMediaStore(db)

	// -create-user and -delete-user run as one-shot admin commands
	// against the migrated database, then exit.
	if *createUser != "" {
		if err := runCreateUser(userStore, *createUser); err != nil {
			slog.Error("create user failed", "error", err)
			os.Exit(1)
		}
		return
	}
	if *deleteUser != "" {
		if err := runDeleteUser(userStore, *deleteUser); err != nil {
			slog.Error("delete user failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Object storage is optional. Without it the app still serves, with
	// uploads disabled and media cleanup skipped.
	var storageClient *storage.Client
	if cfg.HasStorage() {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	lists := cache.NewListCache(valkeyClient, cache.DefaultListTTL)

	// API rate limit: generous enough for the admin editor's autosave
	// and upload traffic from a single address. Login gets its own, much
	// tighter window.
	apiLimiter := middleware.NewRateLimiter(300, time.Minute)
	defer apiLimiter.Stop()
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	mediaCleanup := handlers.NewMediaCleanup(mediaStore, storageClient)

	adminHandlers := handlers.NewAdmin(renderer, articleStore, categoryStore, lists, mediaCleanup)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	categoryHandlers := handlers.NewCategories(categoryStore)
	articleHandlers := handlers.NewArticles(articleStore, lists, mediaCleanup)
	uploadHandlers := handlers.NewUpload(storageClient, mediaStore)

	r := router.New(sessionStore, adminHandlers, authHandlers, categoryHandlers, articleHandlers, uploadHandlers, apiLimiter, loginLimiter, secureCookies)

	// Passing -routes prints generated docs for the router and exits.
	if *routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "newsdesk",
			Intro:       "Newsdesk admin server routing table.",
		}))
		return
	}

	// WriteTimeout must accommodate media uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// runCreateUser parses an email:password:name spec and creates an editor
// account. Promote to admin directly in the database when needed.
func runCreateUser(users *store.UserStore, spec string) error {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return fmt.Errorf("expected email:password:name, got %q", spec)
	}

	u, err := users.Create(parts[0], parts[1], parts[2], models.RoleEditor)
	if err != nil {
		return err
	}
	slog.Info("user created", "id", u.ID, "email", u.Email, "role", u.Role)
	return nil
}

// runDeleteUser removes the staff account with the given email.
func runDeleteUser(users *store.UserStore, email string) error {
	u, err := users.FindByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("no user with email %q", email)
	}

	if err := users.Delete(u.ID); err != nil {
		return err
	}
	slog.Info("user deleted", "id", u.ID, "email", u.Email)
	return nil
}
