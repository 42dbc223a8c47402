package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"books_app/internal/models"
	"books_app/internal/repository/db"
)

func newSQLiteRepository(t *testing.T) *Repository {
	t.Helper()
	conn, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewRepository(conn)
}

func TestSQLite_DuplicateUsernameMapsToErrUsernameExists(t *testing.T) {
	repos := newSQLiteRepository(t)
	ctx := context.Background()

	if _, err := repos.Auth.Create(ctx, "me1", "hash"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := repos.Auth.Create(ctx, "me1", "other")
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestSQLite_CatalogRoundTrip(t *testing.T) {
	repos := newSQLiteRepository(t)
	ctx := context.Background()

	authorID, err := repos.AuthorRepo.Create(ctx, "Harper Lee")
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	d := time.Date(1960, 7, 11, 0, 0, 0, 0, time.UTC)
	bookID, err := repos.BookRepo.Create(ctx, models.Book{
		Title:       "To Kill a Mockingbird",
		PublishDate: &d,
		AuthorID:    authorID,
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}

	got, err := repos.BookRepo.GetByID(ctx, bookID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}
	if got.Author.Name != "Harper Lee" || got.PublishDateString() != "1960-07-11" || got.Audience != models.AudienceAll {
		t.Fatalf("unexpected book: %+v", got)
	}

	n, err := repos.BookRepo.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}
