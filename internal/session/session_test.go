package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoginLogout(t *testing.T) {
	m := NewManager("")

	s := m.Login("tok-1")
	if s.ID == "" {
		t.Fatal("expected session id")
	}
	if !m.Authenticated(s.ID) {
		t.Error("expected authenticated after login")
	}

	got, ok := m.Get(s.ID)
	if !ok || got.Token != "tok-1" {
		t.Fatalf("unexpected session %v ok=%v", got, ok)
	}

	m.Logout(s.ID)
	if m.Authenticated(s.ID) {
		t.Error("expected unauthenticated after logout")
	}
}

func TestAuthenticated_UnknownID(t *testing.T) {
	m := NewManager("")
	if m.Authenticated("nope") {
		t.Error("unknown id must not be authenticated")
	}
	if m.Authenticated("") {
		t.Error("empty id must not be authenticated")
	}
}

func TestPersistence_RestoredOnStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	m1 := NewManager(path)
	s := m1.Login("tok-1")

	m2 := NewManager(path)
	if !m2.Authenticated(s.ID) {
		t.Error("expected session restored from state file")
	}

	m1.Logout(s.ID)
	m3 := NewManager(path)
	if m3.Authenticated(s.ID) {
		t.Error("expected logout persisted")
	}
}

func TestPersistence_MissingFileStartsEmpty(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.json"))
	if m.Authenticated("anything") {
		t.Error("expected empty manager")
	}
}

func guardRequest(t *testing.T, m *Manager, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/mappings", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := Guard(m, "sid")(func(c echo.Context) error {
		reached = true
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec, reached
}

func TestGuard_RedirectsWithoutCookie(t *testing.T) {
	m := NewManager("")
	rec, reached := guardRequest(t, m, nil)
	if reached {
		t.Error("handler must not run unauthenticated")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_RedirectsWithStaleCookie(t *testing.T) {
	m := NewManager("")
	rec, reached := guardRequest(t, m, &http.Cookie{Name: "sid", Value: "gone"})
	if reached || rec.Code != http.StatusFound {
		t.Errorf("expected redirect for unknown session, got %d", rec.Code)
	}
}

func TestGuard_PassesAuthenticated(t *testing.T) {
	m := NewManager("")
	s := m.Login("tok-1")
	rec, reached := guardRequest(t, m, &http.Cookie{Name: "sid", Value: s.ID})
	if !reached {
		t.Fatal("expected handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_AttachesSession(t *testing.T) {
	m := NewManager("")
	s := m.Login("tok-1")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: s.ID})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Guard(m, "sid")(func(c echo.Context) error {
		got, ok := FromContext(c)
		if !ok || got.Token != "tok-1" {
			t.Errorf("expected session in context, got %v ok=%v", got, ok)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPeekClaims_OpaqueToken(t *testing.T) {
	if _, ok := PeekClaims("not-a-jwt"); ok {
		t.Error("expected opaque token to fail the peek")
	}
}

func TestPeekClaims_JWT(t *testing.T) {
	// {"alg":"HS256","typ":"JWT"} . {"sub":"jane","email":"jane@example.com"} . sig
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJqYW5lIiwiZW1haWwiOiJqYW5lQGV4YW1wbGUuY29tIn0." +
		"c2ln"
	claims, ok := PeekClaims(token)
	if !ok {
		t.Fatal("expected peek to succeed")
	}
	if claims.Subject != "jane" || claims.Email != "jane@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}
