package repository

import (
	"context"
	"database/sql"
	"errors"

	"books_app/internal/models"
)

// ErrUsernameExists is returned by Authorization.Create when the UNIQUE
// constraint on users.username rejects the insert.
var ErrUsernameExists = errors.New("username already exists")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type AuthorRepo interface {
	Create(ctx context.Context, name string) (int, error)
	GetByID(ctx context.Context, id int) (*models.Author, error)
	List(ctx context.Context) ([]models.Author, error)
}

type BookRepo interface {
	Create(ctx context.Context, b models.Book) (int, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	Auth       Authorization
	AuthorRepo AuthorRepo
	BookRepo   BookRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:       NewUserRepository(db),
		AuthorRepo: NewAuthorSQLite(db),
		BookRepo:   NewBookSQLite(db),
	}
}
