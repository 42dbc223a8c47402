package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"books_app/internal/models"
	"books_app/internal/repository"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidBook    = errors.New("invalid book")
	ErrInvalidAuthor  = errors.New("invalid author")
)

const publishDateLayout = "2006-01-02"

type CatalogService struct {
	authorRepo repository.AuthorRepo
	bookRepo   repository.BookRepo
}

func NewCatalogService(authorRepo repository.AuthorRepo, bookRepo repository.BookRepo) *CatalogService {
	return &CatalogService{authorRepo: authorRepo, bookRepo: bookRepo}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.bookRepo.List(ctx)
}

// GetBook returns ErrBookNotFound when id does not exist.
func (s *CatalogService) GetBook(ctx context.Context, id int) (*models.Book, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}

// CreateBook validates p, checks the author exists and stores the book.
func (s *CatalogService) CreateBook(ctx context.Context, p BookParams) (*models.Book, error) {
	book, err := bookFromParams(p)
	if err != nil {
		return nil, err
	}

	author, err := s.authorRepo.GetByID(ctx, book.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	id, err := s.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, err
	}
	book.ID = id
	book.Author = author
	return &book, nil
}

func (s *CatalogService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.authorRepo.List(ctx)
}

func (s *CatalogService) CreateAuthor(ctx context.Context, name string) (*models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAuthor)
	}
	id, err := s.authorRepo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &models.Author{ID: id, Name: name}, nil
}

func bookFromParams(p BookParams) (models.Book, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return models.Book{}, fmt.Errorf("%w: title is required", ErrInvalidBook)
	}
	if p.AuthorID <= 0 {
		return models.Book{}, fmt.Errorf("%w: author_id is required", ErrInvalidBook)
	}
	audience, ok := models.ParseAudience(p.Audience)
	if !ok {
		return models.Book{}, fmt.Errorf("%w: unknown audience %q", ErrInvalidBook, p.Audience)
	}

	b := models.Book{Title: title, Audience: audience, AuthorID: p.AuthorID}
	if ds := strings.TrimSpace(p.PublishDate); ds != "" {
		d, err := time.Parse(publishDateLayout, ds)
		if err != nil {
			return models.Book{}, fmt.Errorf("%w: publish_date must be YYYY-MM-DD", ErrInvalidBook)
		}
		b.PublishDate = &d
	}
	return b, nil
}
