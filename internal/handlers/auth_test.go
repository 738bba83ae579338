package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipeshare/internal/models"
	"recipeshare/internal/service"
)

func testSession(userID int) *models.Session {
	now := time.Now().UTC()
	return &models.Session{Token: "tok-123", UserID: userID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
}

func doJSON(t *testing.T, r http.Handler, method, path, body string, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Buffer
	if body != "" {
		rd = bytes.NewBufferString(body)
	} else {
		rd = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		withSessionCookie(req, cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignUp_Success(t *testing.T) {
	auth := &mockAuth{
		signUpUser: &models.User{ID: 42, Username: "alice", Bio: "cook", Recipes: []models.RecipeSummary{}},
		signUpSess: testSession(42),
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(t, r, http.MethodPost, "/signup", `{"username":"alice","password":"pw","bio":"cook"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if int(m["id"].(float64)) != 42 || m["username"] != "alice" {
		t.Fatalf("unexpected body: %v", m)
	}
	if _, ok := m["password_hash"]; ok {
		t.Fatalf("password hash leaked into response: %v", m)
	}

	// Auto-login: session cookie handed out.
	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, sessionCookie+"=tok-123") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}
	if !strings.Contains(setCookie, "HttpOnly") {
		t.Fatalf("expected HttpOnly cookie, got %q", setCookie)
	}

	if auth.lastSignUp.Username != "alice" || auth.lastSignUp.Bio != "cook" {
		t.Fatalf("unexpected params forwarded: %+v", auth.lastSignUp)
	}
}

func TestSignUp_ValidationAndConflict(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "missing username", err: service.ErrUsernameRequired, wantMsg: "username is required"},
		{name: "missing password", err: service.ErrPasswordRequired, wantMsg: "password is required"},
		{name: "duplicate username", err: service.ErrUsernameTaken, wantMsg: "username must be unique"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{signUpErr: tc.err}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doJSON(t, r, http.MethodPost, "/signup", `{"username":"x","password":"y"}`, "")
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d (body=%s)", w.Code, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.wantMsg)
			}
			if w.Header().Get("Set-Cookie") != "" {
				t.Fatalf("no cookie may be set on failure")
			}
		})
	}
}

func TestSignUp_MalformedBody(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	w := doJSON(t, r, http.MethodPost, "/signup", `{"username":1}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		auth := &mockAuth{
			loginUser: &models.User{ID: 7, Username: "diana", Recipes: []models.RecipeSummary{{ID: 1, Title: "Soup"}}},
			loginSess: testSession(7),
		}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(t, r, http.MethodPost, "/login", `{"username":"diana","password":"pw"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		if m["username"] != "diana" {
			t.Fatalf("unexpected body: %v", m)
		}
		recipes, ok := m["recipes"].([]any)
		if !ok || len(recipes) != 1 {
			t.Fatalf("expected embedded recipe summaries, got %v", m["recipes"])
		}
		if !strings.Contains(w.Header().Get("Set-Cookie"), sessionCookie+"=tok-123") {
			t.Fatalf("expected session cookie, got %q", w.Header().Get("Set-Cookie"))
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(t, r, http.MethodPost, "/login", `{"username":"ghost","password":"pw"}`, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var out struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out.Error != "invalid username or password" {
			t.Fatalf("unexpected message: %q", out.Error)
		}
	})
}

func TestCheckSession(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		auth := &mockAuth{currentErr: service.ErrNoSession}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(t, r, http.MethodGet, "/check_session", "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var out struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out.Error != "no active session" {
			t.Fatalf("unexpected message: %q", out.Error)
		}
	})

	t.Run("active session", func(t *testing.T) {
		auth := &mockAuth{
			resolveID:   7,
			currentUser: &models.User{ID: 7, Username: "diana", Recipes: []models.RecipeSummary{}},
		}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(t, r, http.MethodGet, "/check_session", "", "tok-123")
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if auth.lastCurrentToken != "tok-123" {
			t.Fatalf("expected token forwarded, got %q", auth.lastCurrentToken)
		}
		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		if m["username"] != "diana" {
			t.Fatalf("unexpected body: %v", m)
		}
		if _, ok := m["password_hash"]; ok {
			t.Fatalf("password hash leaked into response: %v", m)
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		auth := &mockAuth{logoutErr: service.ErrNoSession}
		r := newTestRouter(&service.Service{Authorization: auth})

		// The client carries a cookie that no session backs anymore.
		w := doJSON(t, r, http.MethodDelete, "/logout", "", "stale-token")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		// The stale cookie is expired even though logout failed.
		if !strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0") {
			t.Fatalf("expected expired cookie, got %q", w.Header().Get("Set-Cookie"))
		}
	})

	t.Run("active session", func(t *testing.T) {
		auth := &mockAuth{resolveID: 7}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(t, r, http.MethodDelete, "/logout", "", "tok-123")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d (body=%s)", w.Code, w.Body.String())
		}
		if w.Body.Len() != 0 {
			t.Fatalf("expected empty body, got %q", w.Body.String())
		}
		if auth.lastLogoutToken != "tok-123" {
			t.Fatalf("expected token forwarded, got %q", auth.lastLogoutToken)
		}
		// Cookie cleared on the client.
		if !strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0") {
			t.Fatalf("expected expired cookie, got %q", w.Header().Get("Set-Cookie"))
		}
	})
}
