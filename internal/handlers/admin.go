// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Newsdesk admin panel.
// Handlers are grouped by concern (admin views, auth, JSON API) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/render"
	"newsdesk/internal/store"
)

// newArticleID is the path sentinel for the create form.
const newArticleID = "new"

// Admin groups the server-rendered admin panel handlers.
type Admin struct {
	renderer   *render.Renderer
	articles   *store.ArticleStore
	categories *store.CategoryStore
	lists      *cache.ListCache
	cleanup    *MediaCleanup
}

// NewAdmin creates an Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, articles *store.ArticleStore, categories *store.CategoryStore, lists *cache.ListCache, cleanup *MediaCleanup) *Admin {
	return &Admin{
		renderer:   renderer,
		articles:   articles,
		categories: categories,
		lists:      lists,
		cleanup:    cleanup,
	}
}

// Home redirects the admin root to the articles list.
func (a *Admin) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// ArticlesList renders the paginated, filterable articles table. The
// filter form carries no page input, so changing a filter always lands
// back on page 1.
func (a *Admin) ArticlesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.Filter{
		Category:     q.Get("category"),
		SearchQuery:  q.Get("searchQuery"),
		FeaturedOnly: q.Get("isFeatured") == "true",
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = page
	}
	if t, ok := parseFilterDate(q.Get("startDate")); ok {
		f.StartDate = &t
	}
	if t, ok := parseFilterDate(q.Get("endDate")); ok {
		f.EndDate = &t
	}

	articles, total, err := a.articles.List(f)
	if err != nil {
		slog.Error("admin article list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The category dropdown is fed from the category store, independent
	// of which categories articles actually use.
	categories, err := a.categories.List()
	if err != nil {
		slog.Error("admin category list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := f.Page
	if page <= 0 {
		page = 1
	}
	pages := (total + store.DefaultPageSize - 1) / store.DefaultPageSize

	a.renderer.Page(w, r, "articles", &render.PageData{
		Title:     "Articles",
		Section:   "articles",
		Flash:     q.Get("flash"),
		FlashType: "success",
		Data: map[string]any{
			"articles":     articles,
			"categories":   categories,
			"category":     q.Get("category"),
			"searchQuery":  q.Get("searchQuery"),
			"startDate":    q.Get("startDate"),
			"endDate":      q.Get("endDate"),
			"featuredOnly": f.FeaturedOnly,
			"page":         page,
			"pages":        pages,
			"total":        total,
			"prevURL":      listPageURL(q, page-1),
			"nextURL":      listPageURL(q, page+1),
			"returnQuery":  listQuery(q, page),
		},
	})
}

// listQuery rebuilds the filter-and-page query string for the given page.
// Row action forms embed it so the list view they return to keeps its
// filters and position.
func listQuery(q url.Values, page int) string {
	next := url.Values{}
	for _, name := range []string{"category", "searchQuery", "isFeatured", "startDate", "endDate"} {
		if v := q.Get(name); v != "" {
			next.Set(name, v)
		}
	}
	if page > 1 {
		next.Set("page", strconv.Itoa(page))
	}
	return next.Encode()
}

// listPageURL rebuilds the list URL with the same filters and a new page.
func listPageURL(q url.Values, page int) string {
	query := listQuery(q, page)
	if query == "" {
		return "/admin/articles"
	}
	return "/admin/articles?" + query
}

// listReturnURL builds the redirect target for row actions from the form's
// return field, preserving the filters and page the action came from.
func listReturnURL(r *http.Request, flash string) string {
	q, err := url.ParseQuery(r.FormValue("return"))
	if err != nil {
		q = url.Values{}
	}
	q.Del("flash")
	if flash != "" {
		q.Set("flash", flash)
	}
	if len(q) == 0 {
		return "/admin/articles"
	}
	return "/admin/articles?" + q.Encode()
}

// ArticleForm renders the create or edit form. The path id "new" is the
// reserved sentinel for create mode.
func (a *Admin) ArticleForm(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")

	article := &models.Article{PublishDate: time.Now()}
	isNew := idStr == newArticleID

	if !isNew {
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		found, err := a.articles.FindByID(id)
		if err != nil {
			slog.Error("admin article lookup failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if found == nil {
			http.NotFound(w, r)
			return
		}
		article = found
	}

	a.renderArticleForm(w, r, article, isNew, "")
}

// renderArticleForm shows the article form, optionally with an error
// banner and the submitted values intact.
func (a *Admin) renderArticleForm(w http.ResponseWriter, r *http.Request, article *models.Article, isNew bool, errMsg string) {
	categories, err := a.categories.List()
	if err != nil {
		slog.Error("admin category list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	action := "/admin/articles"
	title := "New Article"
	if !isNew {
		action = "/admin/articles/" + article.ID.String()
		title = "Edit Article"
	}

	a.renderer.Page(w, r, "article_form", &render.PageData{
		Title:   title,
		Section: "articles",
		Data: map[string]any{
			"article":    article,
			"categories": categories,
			"isNew":      isNew,
			"action":     action,
			"error":      errMsg,
		},
	})
}

// articleFromForm builds an article from the submitted form values.
func articleFromForm(r *http.Request) *models.Article {
	publishDate, _ := time.ParseInLocation("2006-01-02T15:04", r.FormValue("publishDate"), time.Local)

	return &models.Article{
		Title:          r.FormValue("title"),
		Content:        r.FormValue("content"),
		Excerpt:        r.FormValue("excerpt"),
		Category:       r.FormValue("category"),
		FeaturedImage:  r.FormValue("featuredImage"),
		ThumbnailImage: r.FormValue("thumbnailImage"),
		IsFeatured:     r.FormValue("isFeatured") == "true",
		PublishDate:    publishDate,
		Author: models.Author{
			Name:  r.FormValue("authorName"),
			Email: r.FormValue("authorEmail"),
		},
	}
}

// ArticleCreate handles the create form submission.
func (a *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	article := articleFromForm(r)
	// Sanitize before anything can echo the content back, error
	// re-renders included.
	article.Content = sanitizeContent(article.Content)

	if msg := validateArticle(article.Title, article.Content, article.Excerpt, article.Category); msg != "" {
		a.renderArticleForm(w, r, article, true, msg)
		return
	}

	if _, err := a.articles.Create(article); err != nil {
		slog.Error("admin article create failed", "error", err)
		a.renderArticleForm(w, r, article, true, "Failed to save the article.")
		return
	}

	a.lists.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/articles?flash="+url.QueryEscape("Article created"), http.StatusSeeOther)
}

// ArticleUpdate handles the edit form submission as a full-record
// overwrite through the same store update the API uses.
func (a *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	article := articleFromForm(r)
	article.ID = id
	article.Content = sanitizeContent(article.Content)

	if msg := validateArticle(article.Title, article.Content, article.Excerpt, article.Category); msg != "" {
		a.renderArticleForm(w, r, article, false, msg)
		return
	}

	updated, err := a.articles.Update(article)
	if err != nil {
		slog.Error("admin article update failed", "error", err)
		a.renderArticleForm(w, r, article, false, "Failed to save the article.")
		return
	}
	if updated == nil {
		http.NotFound(w, r)
		return
	}

	a.lists.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/articles?flash="+url.QueryEscape("Article saved"), http.StatusSeeOther)
}

// ArticleFeature toggles the featured flag. It loads the full article,
// flips the flag, and resubmits the entire record through the same update
// path the form uses. Edits made between the load and the write are lost,
// matching the panel's established behavior.
func (a *Admin) ArticleFeature(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	article, err := a.articles.FindByID(id)
	if err != nil {
		slog.Error("admin article lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		http.NotFound(w, r)
		return
	}

	article.IsFeatured = !article.IsFeatured
	if _, err := a.articles.Update(article); err != nil {
		slog.Error("admin feature toggle failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.lists.InvalidateAll(r.Context())
	http.Redirect(w, r, listReturnURL(r, ""), http.StatusSeeOther)
}

// ArticleDelete removes an article and returns to the list page it was
// deleted from.
func (a *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	deleted, err := a.articles.Delete(id)
	if err != nil {
		slog.Error("admin article delete failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if deleted == nil {
		http.NotFound(w, r)
		return
	}

	a.cleanup.ArticleDeleted(r.Context(), deleted)
	a.lists.InvalidateAll(r.Context())
	http.Redirect(w, r, listReturnURL(r, "Article deleted"), http.StatusSeeOther)
}

// CategoriesPage renders the category management page.
func (a *Admin) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	a.renderCategories(w, r, "")
}

// renderCategories shows the categories page with an optional error banner.
func (a *Admin) renderCategories(w http.ResponseWriter, r *http.Request, errMsg string) {
	categories, err := a.categories.List()
	if err != nil {
		slog.Error("admin category list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "categories", &render.PageData{
		Title:     "Categories",
		Section:   "categories",
		Flash:     r.URL.Query().Get("flash"),
		FlashType: "success",
		Data: map[string]any{
			"categories": categories,
			"error":      errMsg,
		},
	})
}

// CategoryCreate handles the inline add form.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if msg := validateCategoryName(name); msg != "" {
		a.renderCategories(w, r, msg)
		return
	}

	if _, err := a.categories.Create(name); err != nil {
		slog.Error("admin category create failed", "error", err)
		a.renderCategories(w, r, "Failed to create the category.")
		return
	}

	http.Redirect(w, r, "/admin/categories?flash="+url.QueryEscape("Category created"), http.StatusSeeOther)
}

// CategoryUpdate handles the per-row rename form. Articles carrying the
// old name keep it.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	name := r.FormValue("name")
	if msg := validateCategoryName(name); msg != "" {
		a.renderCategories(w, r, msg)
		return
	}

	updated, err := a.categories.Update(id, name)
	if err != nil {
		slog.Error("admin category update failed", "error", err)
		a.renderCategories(w, r, "Failed to rename the category.")
		return
	}
	if updated == nil {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/categories?flash="+url.QueryEscape("Category renamed"), http.StatusSeeOther)
}

// CategoryDelete removes a category. Articles labeled with it keep the
// label.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	deleted, err := a.categories.Delete(id)
	if err != nil {
		slog.Error("admin category delete failed", "error", err)
		a.renderCategories(w, r, "Failed to delete the category.")
		return
	}
	if !deleted {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/admin/categories?flash="+url.QueryEscape("Category deleted"), http.StatusSeeOther)
}
