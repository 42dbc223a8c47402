package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"books_app/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternal        = "internal error"
	errListBooks       = "failed to load books"
	errListAuthors     = "failed to load authors"
	errInvalidBookID   = "invalid book id"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// CreateBookRequest is the payload of POST /api/v1/books.
type CreateBookRequest struct {
	// Book title
	Title string `json:"title" binding:"required" example:"The Bell Jar"`
	// Publication date, YYYY-MM-DD
	PublishDate string `json:"publish_date,omitempty" example:"1963-01-14"`
	// One of CHILDREN, YOUNG_ADULT, ADULT, ALL (default ALL)
	Audience string `json:"audience,omitempty" example:"ADULT"`
	// Existing author id
	AuthorID int `json:"author_id" binding:"required" example:"2"`
}

// CreateAuthorRequest is the payload of POST /api/v1/authors.
type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required" example:"Sylvia Plath"`
}

// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, books"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/books [get]
// @Security     BearerAuth
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.ListBooks(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListBooks, "api_list_books_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(books),
		"books": books,
	})
}

// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book id"
// @Success      200  {object}  models.Book
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/books/{id} [get]
// @Security     BearerAuth
func (h *Handler) getBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBookID})
		return
	}
	book, err := h.services.GetBook(c.Request.Context(), id)
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "api_get_book_failed", err, "book_id", id)
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBookRequest  true  "Book payload"
// @Success      201   {object}  models.Book
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/books [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	book, err := h.services.CreateBook(c.Request.Context(), service.BookParams{
		Title:       req.Title,
		PublishDate: req.PublishDate,
		Audience:    req.Audience,
		AuthorID:    req.AuthorID,
	})
	switch {
	case errors.Is(err, service.ErrInvalidBook), errors.Is(err, service.ErrAuthorNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "api_create_book_failed", err, "title", req.Title)
		return
	}

	h.log.Infow("book_created", "book_id", book.ID, "user_id", c.GetInt(ctxUserIDKey))
	c.JSON(http.StatusCreated, book)
}

// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, authors"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/authors [get]
// @Security     BearerAuth
func (h *Handler) listAuthors(c *gin.Context) {
	authors, err := h.services.ListAuthors(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListAuthors, "api_list_authors_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(authors),
		"authors": authors,
	})
}

// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        body  body      CreateAuthorRequest  true  "Author payload"
// @Success      201   {object}  models.Author
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/authors [post]
// @Security     BearerAuth
func (h *Handler) createAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	author, err := h.services.CreateAuthor(c.Request.Context(), req.Name)
	if errors.Is(err, service.ErrInvalidAuthor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "api_create_author_failed", err)
		return
	}
	c.JSON(http.StatusCreated, author)
}
