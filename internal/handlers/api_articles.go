// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// Articles groups the article API handlers.
type Articles struct {
	articles *store.ArticleStore
	lists    *cache.ListCache
	cleanup  *MediaCleanup
}

// NewArticles creates an Articles handler group.
func NewArticles(articles *store.ArticleStore, lists *cache.ListCache, cleanup *MediaCleanup) *Articles {
	return &Articles{articles: articles, lists: lists, cleanup: cleanup}
}

// ArticleRequest is the request payload for creating or updating an
// article. Updates are full-record overwrites: clients send the complete
// article back, so the last writer wins on every field.
type ArticleRequest struct {
	*models.Article
}

// Bind implements render.Binder. Content is sanitized through the
// allow-list policy on every write.
func (req *ArticleRequest) Bind(r *http.Request) error {
	if req.Article == nil {
		return errors.New("missing article body")
	}
	if msg := validateArticle(req.Title, req.Content, req.Excerpt, req.Category); msg != "" {
		return errors.New(msg)
	}
	req.Content = sanitizeContent(req.Content)
	return nil
}

// pagination describes the page window of a list response.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// articleListResponse is the JSON body for GET /api/articles.
type articleListResponse struct {
	Articles   []models.Article `json:"articles"`
	Pagination pagination       `json:"pagination"`
}

// parseListFilter extracts the article list filter from query parameters.
// Absent or malformed values fall back to the unfiltered defaults.
func parseListFilter(r *http.Request) store.Filter {
	q := r.URL.Query()

	f := store.Filter{
		Category:     q.Get("category"),
		SearchQuery:  q.Get("searchQuery"),
		FeaturedOnly: q.Get("isFeatured") == "true",
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = limit
	}
	if t, ok := parseFilterDate(q.Get("startDate")); ok {
		f.StartDate = &t
	}
	if t, ok := parseFilterDate(q.Get("endDate")); ok {
		f.EndDate = &t
	}
	return f
}

// parseFilterDate accepts RFC3339 timestamps and bare dates.
func parseFilterDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// List handles GET /api/articles with pagination and filters. Responses
// are served from the Valkey list cache when a fresh entry exists.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.QueryKey(r.URL.Query())

	if body, ok := h.lists.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(body)
		return
	}

	f := parseListFilter(r)
	articles, total, err := h.articles.List(f)
	if err != nil {
		slog.Error("article list failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = store.DefaultPageSize
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	pages := (total + limit - 1) / limit

	resp := articleListResponse{
		Articles: articles,
		Pagination: pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}

	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("article list encode failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	h.lists.Set(ctx, key, body)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

// Get handles GET /api/articles/{id}.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		slog.Error("article lookup failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if article == nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	render.JSON(w, r, article)
}

// Create handles POST /api/articles.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	req := &ArticleRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	created, err := h.articles.Create(req.Article)
	if err != nil {
		slog.Error("article create failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}

	h.lists.InvalidateAll(r.Context())

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Update handles PUT /api/articles/{id} as a full-record overwrite.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	req := &ArticleRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	req.Article.ID = id

	updated, err := h.articles.Update(req.Article)
	if err != nil {
		slog.Error("article update failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if updated == nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	h.lists.InvalidateAll(r.Context())

	render.JSON(w, r, updated)
}

// Delete handles DELETE /api/articles/{id}.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	deleted, err := h.articles.Delete(id)
	if err != nil {
		slog.Error("article delete failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if deleted == nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	h.cleanup.ArticleDeleted(r.Context(), deleted)
	h.lists.InvalidateAll(r.Context())

	render.Render(w, r, &MsgResponse{Message: "Article deleted"})
}

// View handles POST /api/articles/{id}/view, the public read counter.
func (h *Articles) View(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	ok, err := h.articles.IncrementViews(id)
	if err != nil {
		slog.Error("view increment failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if !ok {
		render.Render(w, r, ErrNotFound("Article not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
