package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"books_app/internal/models"
)

type BookSQLite struct {
	db *sql.DB
}

func NewBookSQLite(db *sql.DB) *BookSQLite { return &BookSQLite{db: db} }

var _ BookRepo = (*BookSQLite)(nil)

// publish_date is stored as TEXT in this layout.
const dateLayout = "2006-01-02"

const (
	insertBookSQL = `INSERT INTO books (title, publish_date, audience, author_id) VALUES (?, ?, ?, ?)`

	selectBooksSQL = `
		SELECT b.id, b.title, b.publish_date, b.audience, b.author_id, a.name
		FROM books b
		JOIN authors a ON a.id = b.author_id
		ORDER BY b.id ASC
	`

	selectBookByIDSQL = `
		SELECT b.id, b.title, b.publish_date, b.audience, b.author_id, a.name
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = ?
	`

	countBooksSQL = `SELECT COUNT(*) FROM books`
)

// Create inserts a book and returns its ID. A zero Audience is stored as ALL.
func (r *BookSQLite) Create(ctx context.Context, b models.Book) (int, error) {
	var date *string
	if b.PublishDate != nil {
		s := b.PublishDate.Format(dateLayout)
		date = &s
	}
	audience := b.Audience
	if audience == "" {
		audience = models.AudienceAll
	}

	res, err := r.db.ExecContext(ctx, insertBookSQL, b.Title, date, string(audience), b.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("insert book %q: %w", b.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for book %q: %w", b.Title, err)
	}
	return int(lastID), nil
}

// GetByID returns (nil, nil) if the book does not exist.
func (r *BookSQLite) GetByID(ctx context.Context, id int) (*models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, selectBookByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book id=%d: %w", id, err)
	}
	return &b, nil
}

// List returns every book with its author, oldest first.
func (r *BookSQLite) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 32)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

// Count returns the number of stored books.
func (r *BookSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countBooksSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var (
		b          models.Book
		date       sql.NullString
		audience   string
		authorName string
	)
	if err := row.Scan(&b.ID, &b.Title, &date, &audience, &b.AuthorID, &authorName); err != nil {
		return models.Book{}, err
	}
	if date.Valid && date.String != "" {
		t, err := time.Parse(dateLayout, date.String)
		if err != nil {
			return models.Book{}, fmt.Errorf("parse publish_date %q: %w", date.String, err)
		}
		b.PublishDate = &t
	}
	b.Audience = models.Audience(audience)
	b.Author = &models.Author{ID: b.AuthorID, Name: authorName}
	return b, nil
}
