package service

import (
	"context"
	"time"

	"books_app/internal/models"
	"books_app/internal/repository"
)

// Authorization covers signup, credential checks and API tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Catalog exposes books and authors.
type Catalog interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)
	CreateBook(ctx context.Context, p BookParams) (*models.Book, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	CreateAuthor(ctx context.Context, name string) (*models.Author, error)
}

// Seeder fills an empty catalog with demo data.
type Seeder interface {
	SeedDemo(ctx context.Context) (bool, error)
}

// LoginGuard throttles repeated failed logins per client key.
type LoginGuard interface {
	CheckLock(key string) time.Duration
	RecordFailure(key string) int
	ResetAttempts(key string)
}

type Service struct {
	Authorization
	Catalog
	Seeder
	LoginGuard
}

// AuthOptions configures token issuance.
type AuthOptions struct {
	SigningKey string
	TokenTTL   time.Duration
}

func NewService(repos *repository.Repository, opts AuthOptions) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts),
		Catalog:       NewCatalogService(repos.AuthorRepo, repos.BookRepo),
		Seeder:        NewSeedService(repos.AuthorRepo, repos.BookRepo),
		LoginGuard:    NewLoginAttempts(),
	}
}
