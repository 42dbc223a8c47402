package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"books_app/internal/models"
)

type AuthorSQLite struct {
	db *sql.DB
}

func NewAuthorSQLite(db *sql.DB) *AuthorSQLite { return &AuthorSQLite{db: db} }

var _ AuthorRepo = (*AuthorSQLite)(nil)

const (
	insertAuthorSQL     = `INSERT INTO authors (name) VALUES (?)`
	selectAuthorByIDSQL = `SELECT id, name FROM authors WHERE id = ?`
	selectAuthorsSQL    = `SELECT id, name FROM authors ORDER BY name ASC, id ASC`
)

// Create inserts an author and returns its ID.
func (r *AuthorSQLite) Create(ctx context.Context, name string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertAuthorSQL, name)
	if err != nil {
		return 0, fmt.Errorf("insert author %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for author %q: %w", name, err)
	}
	return int(lastID), nil
}

// GetByID returns (nil, nil) if the author does not exist.
func (r *AuthorSQLite) GetByID(ctx context.Context, id int) (*models.Author, error) {
	var a models.Author
	err := r.db.QueryRowContext(ctx, selectAuthorByIDSQL, id).Scan(&a.ID, &a.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select author id=%d: %w", id, err)
	}
	return &a, nil
}

// List returns all authors ordered by name.
func (r *AuthorSQLite) List(ctx context.Context) ([]models.Author, error) {
	rows, err := r.db.QueryContext(ctx, selectAuthorsSQL)
	if err != nil {
		return nil, fmt.Errorf("select authors: %w", err)
	}
	defer rows.Close()

	out := make([]models.Author, 0, 16)
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}
	return out, nil
}
