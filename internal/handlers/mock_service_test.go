package handlers

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"books_app/internal/models"
	"books_app/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	authUser      *models.User
	authErr       error
	getUser       *models.User
	getUserErr    error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastAuthUsername   string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) Authenticate(_ context.Context, username, _ string) (*models.User, error) {
	m.lastAuthUsername = username
	return m.authUser, m.authErr
}
func (m *mockAuth) GetUser(_ context.Context, _ int) (*models.User, error) {
	return m.getUser, m.getUserErr
}
func (m *mockAuth) GenerateToken(_ context.Context, _, _ string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockCatalog struct {
	books      []models.Book
	listErr    error
	book       *models.Book
	getErr     error
	created    *models.Book
	createErr  error
	lastParams service.BookParams
	authors    []models.Author
	author     *models.Author
	authorErr  error
}

func (m *mockCatalog) ListBooks(context.Context) ([]models.Book, error) { return m.books, m.listErr }
func (m *mockCatalog) GetBook(context.Context, int) (*models.Book, error) {
	return m.book, m.getErr
}
func (m *mockCatalog) CreateBook(_ context.Context, p service.BookParams) (*models.Book, error) {
	m.lastParams = p
	return m.created, m.createErr
}
func (m *mockCatalog) ListAuthors(context.Context) ([]models.Author, error) {
	return m.authors, m.authorErr
}
func (m *mockCatalog) CreateAuthor(_ context.Context, name string) (*models.Author, error) {
	if m.authorErr != nil {
		return nil, m.authorErr
	}
	if m.author != nil {
		return m.author, nil
	}
	return &models.Author{ID: 1, Name: name}, nil
}

// ---- Shared Test Helpers ----

var testConfig = Config{
	SessionName:   "test_session",
	SessionSecret: "test-session-secret-0123456789ab",
}

func newTestService(auth service.Authorization, catalog service.Catalog) *service.Service {
	if catalog == nil {
		catalog = &mockCatalog{}
	}
	return &service.Service{
		Authorization: auth,
		Catalog:       catalog,
		LoginGuard:    service.NewLoginAttempts(),
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, testConfig)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// newBrowser starts r behind a real listener and returns a cookie-keeping
// client that does not follow redirects.
func newBrowser(t *testing.T, r http.Handler) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}
