// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"newsdesk/internal/cache"
	"newsdesk/internal/database"
	"newsdesk/internal/models"
	"newsdesk/internal/render"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
)

// adminEnv wires the server-rendered admin handlers the same way main
// does, minus the auth middleware. Skips when PostgreSQL is unreachable.
type adminEnv struct {
	router   *chi.Mux
	db       *sql.DB
	articles *store.ArticleStore
	media    *store.MediaStore
	storage  *storage.Client
}

func newAdminEnv(t *testing.T) *adminEnv {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	lists := cache.NewListCache(client, time.Minute)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("renderer init failed: %v", err)
	}

	// The storage endpoint is never reachable from tests; cleanup treats
	// failed object deletes as non-fatal, so only the metadata side is
	// asserted against.
	storageClient, err := storage.New("http://127.0.0.1:1", "us-east-1", "test", "test", "media", "")
	if err != nil {
		t.Fatalf("storage init failed: %v", err)
	}

	articleStore := store.NewArticleStore(db)
	mediaStore := store.NewMediaStore(db)
	admin := NewAdmin(renderer, articleStore, store.NewCategoryStore(db), lists, NewMediaCleanup(mediaStore, storageClient))

	r := chi.NewRouter()
	r.Route("/admin", func(r chi.Router) {
		r.Get("/articles", admin.ArticlesList)
		r.Post("/articles", admin.ArticleCreate)
		r.Get("/articles/{id}", admin.ArticleForm)
		r.Post("/articles/{id}", admin.ArticleUpdate)
		r.Post("/articles/{id}/feature", admin.ArticleFeature)
		r.Post("/articles/{id}/delete", admin.ArticleDelete)
	})

	return &adminEnv{router: r, db: db, articles: articleStore, media: mediaStore, storage: storageClient}
}

// postForm submits urlencoded form values the way the panel's forms do.
func (e *adminEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *adminEnv) createArticle(t *testing.T, title, category string) *models.Article {
	t.Helper()
	t.Cleanup(func() { e.db.Exec("DELETE FROM articles WHERE title = $1", title) })

	created, err := e.articles.Create(&models.Article{
		Title:       title,
		Content:     "<p>body</p>",
		Excerpt:     "excerpt",
		Category:    category,
		PublishDate: time.Now(),
		Author:      models.Author{Name: "Test Author", Email: "author@newsdesk.press"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return created
}

// Row action forms carry the list's filter and page state in a hidden
// return field; the redirect after the action must land back on that
// exact list view.
func TestAdminRowActionsKeepListPosition(t *testing.T) {
	env := newAdminEnv(t)
	article := env.createArticle(t, "Test Row Action Return", "News")

	returnQuery := "category=News&page=2"

	rr := env.postForm(t, "/admin/articles/"+article.ID.String()+"/feature", url.Values{
		"return": {returnQuery},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("feature: got %d, want 303: %s", rr.Code, rr.Body.String())
	}
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("feature: bad Location %q: %v", rr.Header().Get("Location"), err)
	}
	if loc.Path != "/admin/articles" {
		t.Errorf("feature: redirect path %q, want /admin/articles", loc.Path)
	}
	q := loc.Query()
	if q.Get("category") != "News" || q.Get("page") != "2" {
		t.Errorf("feature: redirect query %q lost the list position", loc.RawQuery)
	}

	toggled, err := env.articles.FindByID(article.ID)
	if err != nil || toggled == nil {
		t.Fatalf("FindByID after toggle failed: %v", err)
	}
	if !toggled.IsFeatured {
		t.Error("expected featured flag to flip")
	}

	rr = env.postForm(t, "/admin/articles/"+article.ID.String()+"/delete", url.Values{
		"return": {returnQuery},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("delete: got %d, want 303: %s", rr.Code, rr.Body.String())
	}
	loc, err = url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("delete: bad Location %q: %v", rr.Header().Get("Location"), err)
	}
	q = loc.Query()
	if q.Get("category") != "News" || q.Get("page") != "2" {
		t.Errorf("delete: redirect query %q lost the list position", loc.RawQuery)
	}
	if q.Get("flash") != "Article deleted" {
		t.Errorf("delete: flash %q, want %q", q.Get("flash"), "Article deleted")
	}

	gone, err := env.articles.FindByID(article.ID)
	if err != nil {
		t.Fatalf("FindByID after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("expected article to be gone")
	}
}

// Without a return field (or with a mangled one) the redirect falls back
// to the unfiltered list.
func TestAdminRowActionReturnFallback(t *testing.T) {
	env := newAdminEnv(t)
	article := env.createArticle(t, "Test Row Action Fallback", "News")

	rr := env.postForm(t, "/admin/articles/"+article.ID.String()+"/delete", url.Values{
		"return": {"%zz"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("delete: got %d, want 303: %s", rr.Code, rr.Body.String())
	}
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("delete: bad Location: %v", err)
	}
	if loc.Path != "/admin/articles" {
		t.Errorf("redirect path %q, want /admin/articles", loc.Path)
	}
	if loc.Query().Get("flash") != "Article deleted" {
		t.Errorf("flash %q, want %q", loc.Query().Get("flash"), "Article deleted")
	}
}

// A failed validation re-renders the form with the submitted values, and
// the content goes back through the editor as raw HTML. It must already
// be sanitized at that point.
func TestAdminFormReRenderSanitizesContent(t *testing.T) {
	env := newAdminEnv(t)

	rr := env.postForm(t, "/admin/articles", url.Values{
		"title":    {""},
		"content":  {`<script>alert("x")</script><p>Safe paragraph</p>`},
		"excerpt":  {"excerpt"},
		"category": {"News"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 re-render: %s", rr.Code, rr.Body.String())
	}

	body := rr.Body.String()
	if !strings.Contains(body, "Title is required.") {
		t.Error("expected validation error banner")
	}
	if strings.Contains(body, "<script>") {
		t.Error("re-rendered form leaked unsanitized content")
	}
	if !strings.Contains(body, "<p>Safe paragraph</p>") {
		t.Error("expected allowed markup to survive sanitization")
	}
}

// Deleting through the admin panel releases the article's stored media:
// the metadata row goes with the article. Hotlinked URLs outside our
// storage are left alone.
func TestAdminDeleteReleasesArticleMedia(t *testing.T) {
	env := newAdminEnv(t)

	key := "uploads/2026/09/test-admin-cleanup-" + uuid.NewString()
	t.Cleanup(func() { env.db.Exec("DELETE FROM media WHERE s3_key = $1", key) })

	if _, err := env.media.Create(&models.Media{
		Filename:     "cleanup.jpg",
		OriginalName: "cleanup.jpg",
		ContentType:  "image/jpeg",
		SizeBytes:    128,
		S3Key:        key,
	}); err != nil {
		t.Fatalf("media Create failed: %v", err)
	}

	title := "Test Admin Media Cleanup"
	t.Cleanup(func() { env.db.Exec("DELETE FROM articles WHERE title = $1", title) })
	article, err := env.articles.Create(&models.Article{
		Title:          title,
		Content:        "<p>body</p>",
		Excerpt:        "excerpt",
		Category:       "News",
		FeaturedImage:  env.storage.FileURL(key),
		ThumbnailImage: "https://elsewhere.example.com/thumb.jpg",
		PublishDate:    time.Now(),
		Author:         models.Author{Name: "Test Author", Email: "author@newsdesk.press"},
	})
	if err != nil {
		t.Fatalf("article Create failed: %v", err)
	}

	rr := env.postForm(t, "/admin/articles/"+article.ID.String()+"/delete", url.Values{})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("delete: got %d, want 303: %s", rr.Code, rr.Body.String())
	}

	m, err := env.media.FindByKey(key)
	if err != nil {
		t.Fatalf("FindByKey after delete failed: %v", err)
	}
	if m != nil {
		t.Error("expected the media record to be released with the article")
	}
}
