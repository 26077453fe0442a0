package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"newsdesk/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession(role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "staff@newsdesk.local",
		DisplayName: "Test Staff",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

// testSessionStore returns a session store backed by in-process miniredis.
func testSessionStore(t *testing.T) *session.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return session.NewStore(client, false)
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession("admin", true)
		ctx := ctxWithSession(context.Background(), sess)

		got := SessionFromCtx(ctx)
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Email != sess.Email {
			t.Errorf("Email: got %q, want %q", got.Email, sess.Email)
		}
		if got.Role != sess.Role {
			t.Errorf("Role: got %q, want %q", got.Role, sess.Role)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

func TestLoadSession(t *testing.T) {
	t.Run("no cookie proceeds without session", func(t *testing.T) {
		store := testSessionStore(t)

		var seen *session.Data
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = SessionFromCtx(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		rr := httptest.NewRecorder()
		LoadSession(store)(inner).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if seen != nil {
			t.Errorf("expected no session in context, got %+v", seen)
		}
	})

	t.Run("valid cookie loads session into context", func(t *testing.T) {
		store := testSessionStore(t)
		ctx := context.Background()

		w := httptest.NewRecorder()
		data := newTestSession("editor", true)
		if _, err := store.Create(ctx, w, data); err != nil {
			t.Fatalf("Create: %v", err)
		}

		var seen *session.Data
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = SessionFromCtx(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		for _, c := range w.Result().Cookies() {
			req.AddCookie(c)
		}
		LoadSession(store)(inner).ServeHTTP(httptest.NewRecorder(), req)

		if seen == nil {
			t.Fatal("expected session in context")
		}
		if seen.UserID != data.UserID {
			t.Errorf("UserID: got %s, want %s", seen.UserID, data.UserID)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("redirects when unauthenticated", func(t *testing.T) {
		inner, called := okHandler()

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		rr := httptest.NewRecorder()
		RequireAuth(inner).ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should not have been called")
		}
		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want 303", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("Location: got %q, want /admin/login", loc)
		}
	})

	t.Run("passes through when authenticated", func(t *testing.T) {
		inner, called := okHandler()

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession("editor", true)))
		rr := httptest.NewRecorder()
		RequireAuth(inner).ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestRequire2FA(t *testing.T) {
	t.Run("redirects to setup when 2FA incomplete", func(t *testing.T) {
		inner, called := okHandler()

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession("admin", false)))
		rr := httptest.NewRecorder()
		Require2FA(inner).ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should not have been called")
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/2fa/setup" {
			t.Errorf("Location: got %q, want /admin/2fa/setup", loc)
		}
	})

	t.Run("passes through when 2FA done", func(t *testing.T) {
		inner, called := okHandler()

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		req = req.WithContext(ctxWithSession(req.Context(), newTestSession("admin", true)))
		rr := httptest.NewRecorder()
		Require2FA(inner).ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
	})

	t.Run("passes through with no session", func(t *testing.T) {
		// RequireAuth handles missing sessions; Require2FA only gates
		// authenticated users who haven't verified.
		inner, called := okHandler()

		req := httptest.NewRequest(http.MethodGet, "/admin/articles", nil)
		rr := httptest.NewRecorder()
		Require2FA(inner).ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
	})
}
