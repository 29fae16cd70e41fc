package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crowdcount/internal/models"
	"crowdcount/internal/service"
)

func postJSON(r http.Handler, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	res := w.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister_SuccessIssuesSessionCookie(t *testing.T) {
	accounts := &mockAccounts{registerUser: &models.User{ID: 1, Username: "alice", Email: "a@x.com"}}
	sessions := &mockSessions{issueToken: "signed-token"}
	r := newTestRouter(&service.Service{Accounts: accounts, Sessions: sessions})

	w := postJSON(r, "/api/register", `{"username":"alice","email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		User    struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != msgRegistered || resp.User.ID != 1 || resp.User.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if accounts.lastRegister.password != "secret1" {
		t.Fatalf("service got password %q", accounts.lastRegister.password)
	}
	if len(sessions.issuedFor) != 1 || sessions.issuedFor[0] != 1 {
		t.Fatalf("expected session issued for user 1, got %v", sessions.issuedFor)
	}

	cookie := findCookie(w, sessionCookieName)
	if cookie == nil || cookie.Value != "signed-token" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", service.ErrFieldsRequired, http.StatusBadRequest, "All fields are required"},
		{"short password", service.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters long"},
		{"duplicate", service.ErrUserExists, http.StatusConflict, "User already exists with this email or username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccounts{registerErr: tt.err}
			sessions := &mockSessions{}
			r := newTestRouter(&service.Service{Accounts: accounts, Sessions: sessions})

			w := postJSON(r, "/api/register", `{"username":"alice","email":"a@x.com","password":"x"}`)

			if w.Code != tt.wantCode {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tt.wantCode, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tt.wantMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tt.wantMsg)
			}
			if len(sessions.issuedFor) != 0 {
				t.Fatalf("no session must be issued on failure, got %v", sessions.issuedFor)
			}
		})
	}
}

func TestRegister_StoreFailureIncludesDetails(t *testing.T) {
	accounts := &mockAccounts{registerErr: errors.New("disk full")}
	r := newTestRouter(&service.Service{Accounts: accounts, Sessions: &mockSessions{}})

	w := postJSON(r, "/api/register", `{"username":"alice","email":"a@x.com","password":"secret1"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Error != errRegisterFailed || out.Details == "" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	r := newTestRouter(&service.Service{Accounts: &mockAccounts{}, Sessions: &mockSessions{}})

	w := postJSON(r, "/api/register", `{"username":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_SuccessAndErrorMapping(t *testing.T) {
	alice := &models.User{ID: 42, Username: "alice", Email: "a@x.com"}

	t.Run("success", func(t *testing.T) {
		accounts := &mockAccounts{loginUser: alice}
		sessions := &mockSessions{issueToken: "signed-token"}
		r := newTestRouter(&service.Service{Accounts: accounts, Sessions: sessions})

		w := postJSON(r, "/api/login", `{"email":"a@x.com","password":"secret1"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var resp struct {
			Message string `json:"message"`
			User    struct {
				ID int `json:"id"`
			} `json:"user"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Message != msgLoggedIn || resp.User.ID != 42 {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if findCookie(w, sessionCookieName) == nil {
			t.Fatal("expected session cookie")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		accounts := &mockAccounts{loginErr: service.ErrCredentialsRequired}
		r := newTestRouter(&service.Service{Accounts: accounts, Sessions: &mockSessions{}})

		w := postJSON(r, "/api/login", `{"email":"","password":""}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("bad credentials share one body", func(t *testing.T) {
		accounts := &mockAccounts{loginErr: service.ErrInvalidCredentials}
		r := newTestRouter(&service.Service{Accounts: accounts, Sessions: &mockSessions{}})

		wrongPass := postJSON(r, "/api/login", `{"email":"a@x.com","password":"wrong"}`)
		unknownEmail := postJSON(r, "/api/login", `{"email":"ghost@x.com","password":"whatever"}`)

		if wrongPass.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
			t.Fatalf("statuses: %d / %d", wrongPass.Code, unknownEmail.Code)
		}
		if wrongPass.Body.String() != unknownEmail.Body.String() {
			t.Fatalf("bodies differ: %s vs %s", wrongPass.Body.String(), unknownEmail.Body.String())
		}
		var out struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(wrongPass.Body.Bytes(), &out)
		if out.Error != "Invalid email or password" {
			t.Fatalf("unexpected message: %q", out.Error)
		}
	})
}

func TestLogout_IdempotentAndRevokes(t *testing.T) {
	sessions := &mockSessions{}
	r := newTestRouter(&service.Service{Accounts: &mockAccounts{}, Sessions: sessions})

	// With a cookie: token is revoked and the cookie cleared.
	w := postJSON(r, "/api/logout", "", sessionCookie("tok-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != msgLoggedOut {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if len(sessions.invalidatedTokens) != 1 || sessions.invalidatedTokens[0] != "tok-1" {
		t.Fatalf("expected tok-1 invalidated, got %v", sessions.invalidatedTokens)
	}
	cleared := findCookie(w, sessionCookieName)
	if cleared == nil || cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cleared)
	}

	// Without a session: still 200, nothing to revoke.
	w = postJSON(r, "/api/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d without session, body=%s", w.Code, w.Body.String())
	}
	if len(sessions.invalidatedTokens) != 1 {
		t.Fatalf("no further invalidation expected, got %v", sessions.invalidatedTokens)
	}
}
