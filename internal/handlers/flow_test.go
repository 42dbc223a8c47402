package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"books_app/internal/repository"
	"books_app/internal/repository/db"
	"books_app/internal/service"
)

// newSQLiteApp wires the real repositories and services over an in-memory
// database, with one existing account "me1"/"password".
func newSQLiteApp(t *testing.T) (*repository.Repository, http.Handler) {
	t.Helper()
	conn, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	repos := repository.NewRepository(conn)
	hash, err := service.HashPassword("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := repos.Auth.Create(context.Background(), "me1", hash); err != nil {
		t.Fatalf("create user: %v", err)
	}

	services := service.NewService(repos, service.AuthOptions{SigningKey: "flow-signing-key", TokenTTL: time.Hour})
	if _, err := services.SeedDemo(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repos, newTestRouter(services)
}

func TestFlow_SignupWithTakenUsername(t *testing.T) {
	_, r := newSQLiteApp(t)
	srv, client := newBrowser(t, r)

	resp, body := postForm(t, client, srv.URL+"/signup", credentials("me1", "password"))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "taken") {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
}

func TestFlow_LoginUnknownUser(t *testing.T) {
	_, r := newSQLiteApp(t)
	srv, client := newBrowser(t, r)

	resp, body := postForm(t, client, srv.URL+"/login", credentials("me2", "password"))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "No user with") {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
}

func TestFlow_LoginWrongPassword(t *testing.T) {
	_, r := newSQLiteApp(t)
	srv, client := newBrowser(t, r)

	resp, body := postForm(t, client, srv.URL+"/login", credentials("me1", "abcdef"))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Please try again") {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
}

func TestFlow_LoginThenLogout(t *testing.T) {
	_, r := newSQLiteApp(t)
	srv, client := newBrowser(t, r)

	resp, _ := postForm(t, client, srv.URL+"/login", credentials("me1", "password"))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("login: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}

	_, body := getPage(t, client, srv.URL+"/")
	if strings.Contains(body, "Login") {
		t.Fatalf("logged-in home page mentions Login:\n%s", body)
	}
	if !strings.Contains(body, "me1") || !strings.Contains(body, "To Kill a Mockingbird") {
		t.Fatalf("logged-in home page missing user or books:\n%s", body)
	}

	resp, _ = getPage(t, client, srv.URL+"/logout")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout: status=%d", resp.StatusCode)
	}
	_, body = getPage(t, client, srv.URL+"/")
	if !strings.Contains(body, "Log In") {
		t.Fatalf("logged-out home page missing Log In:\n%s", body)
	}
}

func TestFlow_SignupCreatesUser(t *testing.T) {
	repos, r := newSQLiteApp(t)
	srv, client := newBrowser(t, r)

	resp, _ := postForm(t, client, srv.URL+"/signup", credentials("Bobert", "Password"))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("signup: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}

	u, err := repos.Auth.GetByUsername(context.Background(), "Bobert")
	if err != nil || u == nil {
		t.Fatalf("user not stored: u=%v err=%v", u, err)
	}
	if u.PasswordHash == "Password" || u.PasswordHash == "" {
		t.Fatalf("password stored unhashed: %q", u.PasswordHash)
	}

	resp, _ = postForm(t, client, srv.URL+"/login", credentials("Bobert", "Password"))
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login after signup: status=%d", resp.StatusCode)
	}
}

func TestFlow_FailureMessagesBeforeLockout(t *testing.T) {
	_, r := newSQLiteApp(t)
	srv, client := newBrowser(t, r)

	attempts := []struct {
		form url.Values
		want string
	}{
		{credentials("me2", "password"), "No user with"},
		{credentials("me1", "abcdef"), "Please try again"},
		{credentials("me2", "password"), "No user with"},
		{credentials("me1", "abcdef"), "Please try again"},
	}
	for i, a := range attempts {
		resp, body := postForm(t, client, srv.URL+"/login", a.form)
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, a.want) {
			t.Fatalf("failure %d: status=%d, want %q in:\n%s", i+1, resp.StatusCode, a.want, body)
		}
	}

	resp, body := postForm(t, client, srv.URL+"/login", credentials("me1", "abcdef"))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Please try again") {
		t.Fatalf("fifth failure should still explain itself: status=%d", resp.StatusCode)
	}
	resp, _ = postForm(t, client, srv.URL+"/login", credentials("me1", "password"))
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 once locked", resp.StatusCode)
	}
}
