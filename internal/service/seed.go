package service

import (
	"context"
	"fmt"
	"time"

	"books_app/internal/models"
	"books_app/internal/repository"
)

type SeedService struct {
	authorRepo repository.AuthorRepo
	bookRepo   repository.BookRepo
}

func NewSeedService(authorRepo repository.AuthorRepo, bookRepo repository.BookRepo) *SeedService {
	return &SeedService{authorRepo: authorRepo, bookRepo: bookRepo}
}

type demoBook struct {
	author    string
	title     string
	published *time.Time
}

func demoCatalog() []demoBook {
	mockingbird := time.Date(1960, time.July, 11, 0, 0, 0, 0, time.UTC)
	return []demoBook{
		{author: "Harper Lee", title: "To Kill a Mockingbird", published: &mockingbird},
		{author: "Sylvia Plath", title: "The Bell Jar"},
	}
}

// SeedDemo inserts the demo catalog if no books exist yet.
// It reports whether anything was inserted.
func (s *SeedService) SeedDemo(ctx context.Context) (bool, error) {
	n, err := s.bookRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	for _, d := range demoCatalog() {
		authorID, err := s.authorRepo.Create(ctx, d.author)
		if err != nil {
			return false, fmt.Errorf("seed author %q: %w", d.author, err)
		}
		_, err = s.bookRepo.Create(ctx, models.Book{
			Title:       d.title,
			PublishDate: d.published,
			Audience:    models.AudienceAll,
			AuthorID:    authorID,
		})
		if err != nil {
			return false, fmt.Errorf("seed book %q: %w", d.title, err)
		}
	}
	return true, nil
}
