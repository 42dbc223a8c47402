package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"books_app/internal/models"
	"books_app/internal/service"
)

func TestHome_ListsBooksAndLoginLink(t *testing.T) {
	d := time.Date(1960, 7, 11, 0, 0, 0, 0, time.UTC)
	catalog := &mockCatalog{books: []models.Book{
		{ID: 1, Title: "To Kill a Mockingbird", PublishDate: &d, AuthorID: 1, Author: &models.Author{ID: 1, Name: "Harper Lee"}},
	}}
	r := newTestRouter(newTestService(&mockAuth{}, catalog))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"To Kill a Mockingbird", "Harper Lee", "1960-07-11", "Log In", `href="/book/1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in home page:\n%s", want, body)
		}
	}
}

func TestHome_StoreFailure(t *testing.T) {
	catalog := &mockCatalog{listErr: errors.New("db down")}
	r := newTestRouter(newTestService(&mockAuth{}, catalog))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
}

func TestBookDetail(t *testing.T) {
	catalog := &mockCatalog{book: &models.Book{
		ID: 2, Title: "The Bell Jar", Audience: models.AudienceAdult,
		AuthorID: 2, Author: &models.Author{ID: 2, Name: "Sylvia Plath"},
	}}
	r := newTestRouter(newTestService(&mockAuth{}, catalog))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/book/2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "Sylvia Plath") || !strings.Contains(body, "ADULT") {
		t.Fatalf("unexpected detail page:\n%s", body)
	}
}

func TestBookDetail_NotFound(t *testing.T) {
	catalog := &mockCatalog{getErr: service.ErrBookNotFound}
	r := newTestRouter(newTestService(&mockAuth{}, catalog))

	for _, path := range []string{"/book/99", "/book/nope", "/book/-1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: status=%d, want 404", path, w.Code)
		}
	}
}

func TestFormPagesRender(t *testing.T) {
	r := newTestRouter(newTestService(&mockAuth{}, nil))
	for path, want := range map[string]string{"/signup": `action="/signup"`, "/login": `action="/login"`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
			t.Fatalf("%s: status=%d body=%s", path, w.Code, w.Body.String())
		}
	}
}
