// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Newsdesk admin panel. It organizes routes into the JSON API group and
// the HTML admin group with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/session"
	"newsdesk/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The apiLimiter throttles the JSON API per
// client IP and the loginLimiter throttles credential guessing; secure
// marks CSRF cookies as HTTPS-only.
func New(
	sessionStore *session.Store,
	admin *handlers.Admin,
	auth *handlers.Auth,
	categories *handlers.Categories,
	articles *handlers.Articles,
	upload *handlers.Upload,
	apiLimiter, loginLimiter *middleware.RateLimiter,
	secure bool,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (compiled CSS, editor JS).
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// JSON API consumed by the public site and the admin editor.
	// Sessions are loaded so uploads can record who sent them, but the
	// endpoints themselves do not require one.
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)
		r.Use(middleware.LoadSession(sessionStore))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articles.List)
			r.Post("/", articles.Create)
			r.Get("/{id}", articles.Get)
			r.Put("/{id}", articles.Update)
			r.Delete("/{id}", articles.Delete)
			r.Post("/{id}/view", articles.View)
		})

		r.Post("/upload", upload.Create)
	})

	// HTML admin area. Every admin request carries a session lookup and
	// CSRF protection; the inner groups add the auth gates.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))
		r.Use(middleware.CSRF(secure))

		// Auth pages, accessible without a session. Login submissions
		// are rate limited against credential guessing.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFASetupSubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated and 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Home)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", admin.ArticlesList)
				r.Post("/", admin.ArticleCreate)
				r.Get("/{id}", admin.ArticleForm)
				r.Post("/{id}", admin.ArticleUpdate)
				r.Post("/{id}/feature", admin.ArticleFeature)
				r.Post("/{id}/delete", admin.ArticleDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesPage)
				r.Post("/", admin.CategoryCreate)
				r.Post("/{id}", admin.CategoryUpdate)
				r.Post("/{id}/delete", admin.CategoryDelete)
			})
		})
	})

	// The bare root points at the admin panel.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
