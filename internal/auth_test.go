package internal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func authRouter(s *Store, sessions *Sessions) *gin.Engine {
	r := gin.New()
	r.POST("/login", Login(s, sessions, testSecret))
	r.POST("/logout", Logout(sessions, testSecret))
	gate := PageAuth(sessions, testSecret)
	r.GET("/dashboard.html", gate, func(c *gin.Context) { c.String(200, "dashboard") })
	r.GET("/admin.html", gate, RequireAdminPage(), func(c *gin.Context) { c.String(200, "admin") })
	return r
}

func login(t *testing.T, r http.Handler, team, password string) *httptest.ResponseRecorder {
	t.Helper()
	return postForm(r, "/login", url.Values{"teamName": {team}, "password": {password}})
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName {
			return ck
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func getPage(r http.Handler, path string, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRedirects(t *testing.T) {
	s := newTestStore(t)
	sessions := NewSessions()
	r := authRouter(s, sessions)
	seedTeam(t, s, "alpha", "pw")
	seedTeam(t, s, "admin", "root")
	seedTeam(t, s, "gamma", "pw")
	mustDisqualify(t, s, "gamma")

	tests := []struct {
		name     string
		team     string
		password string
		path     string
		message  string
	}{
		{"team login", "alpha", "pw", "/dashboard.html", ""},
		{"admin login", "admin", "root", "/admin.html", ""},
		{"disqualified team", "gamma", "pw", "/dashboard.html", "Your team has been disqualified."},
		{"wrong password", "alpha", "nope", "/index.html", "Invalid credentials. Please try again."},
		{"unknown team", "ghost", "pw", "/index.html", "Invalid credentials. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, q := redirectQuery(t, login(t, r, tt.team, tt.password))
			if path != tt.path {
				t.Errorf("Expected redirect to %s, got %s", tt.path, path)
			}
			if q.Get("message") != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, q.Get("message"))
			}
		})
	}
}

func TestLoginNeverMatchesOnWrongPassword(t *testing.T) {
	s := newTestStore(t)
	r := authRouter(s, NewSessions())
	seedTeam(t, s, "alpha", "pw")

	w := login(t, r, "alpha", "")
	path, _ := redirectQuery(t, w)
	if path != "/index.html" {
		t.Errorf("Empty password must fail, redirected to %s", path)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookieName && ck.Value != "" {
			t.Error("failed login must not set a session cookie")
		}
	}
}

func TestPageGate(t *testing.T) {
	s := newTestStore(t)
	sessions := NewSessions()
	r := authRouter(s, sessions)
	seedTeam(t, s, "alpha", "pw")
	seedTeam(t, s, "admin", "root")

	// No cookie: back to login with the session-expired message.
	path, q := redirectQuery(t, getPage(r, "/dashboard.html", nil))
	if path != "/index.html" || q.Get("message") != "Session expired. Please login again." {
		t.Errorf("Unexpected gate redirect: %s %v", path, q)
	}

	teamCk := sessionCookie(t, login(t, r, "alpha", "pw"))
	if w := getPage(r, "/dashboard.html", teamCk); w.Code != 200 {
		t.Errorf("Dashboard with session: expected 200, got %d", w.Code)
	}

	// Non-admin session cannot reach the admin page.
	path, _ = redirectQuery(t, getPage(r, "/admin.html", teamCk))
	if path != "/index.html" {
		t.Errorf("Admin page for team session: expected /index.html, got %s", path)
	}

	adminCk := sessionCookie(t, login(t, r, "admin", "root"))
	if w := getPage(r, "/admin.html", adminCk); w.Code != 200 {
		t.Errorf("Admin page with admin session: expected 200, got %d", w.Code)
	}

	// Garbage token.
	path, _ = redirectQuery(t, getPage(r, "/dashboard.html", &http.Cookie{Name: cookieName, Value: "garbage"}))
	if path != "/index.html" {
		t.Errorf("Garbage token: expected /index.html, got %s", path)
	}
}

func TestRestartInvalidatesSessions(t *testing.T) {
	s := newTestStore(t)
	sessions := NewSessions()
	r := authRouter(s, sessions)
	seedTeam(t, s, "alpha", "pw")

	ck := sessionCookie(t, login(t, r, "alpha", "pw"))
	if w := getPage(r, "/dashboard.html", ck); w.Code != 200 {
		t.Fatalf("Sanity check failed: %d", w.Code)
	}

	// Fresh registry, same signing secret: the old cookie must be dead.
	r2 := authRouter(s, NewSessions())
	path, q := redirectQuery(t, getPage(r2, "/dashboard.html", ck))
	if path != "/index.html" || q.Get("message") != "Session expired. Please login again." {
		t.Errorf("Cookie survived restart: %s %v", path, q)
	}
}

func TestLogoutDropsSession(t *testing.T) {
	s := newTestStore(t)
	sessions := NewSessions()
	r := authRouter(s, sessions)
	seedTeam(t, s, "alpha", "pw")

	ck := sessionCookie(t, login(t, r, "alpha", "pw"))

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected redirect, got %d", w.Code)
	}

	// The old cookie no longer opens gated pages.
	path, _ := redirectQuery(t, getPage(r, "/dashboard.html", ck))
	if path != "/index.html" {
		t.Errorf("Session should be dead after logout, got %s", path)
	}
}

func mustDisqualify(t *testing.T, s *Store, team string) {
	t.Helper()
	err := s.Do(func(d *Data) {
		d.Teams[team].Disqualified = true
		d.Teams[team].TotalIncorrectAttempts = 3
		if err := d.SaveTeams(); err != nil {
			t.Fatalf("Failed to save teams: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
}
