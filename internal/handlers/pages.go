package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"books_app/internal/service"

	"github.com/gin-gonic/gin"
)

const errPageGeneric = "Something went wrong. Please try again later."

// render adds the fields every page layout needs.
func (h *Handler) render(c *gin.Context, code int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["CurrentUser"] = currentUser(c)
	c.HTML(code, name, data)
}

func (h *Handler) renderError(c *gin.Context, code int, msg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		h.log.Errorw(logKey, append([]interface{}{"err", err}, kv...)...)
	}
	h.render(c, code, "error.html", http.StatusText(code), gin.H{"Message": msg})
}

func (h *Handler) home(c *gin.Context) {
	books, err := h.services.ListBooks(c.Request.Context())
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, errPageGeneric, "home_list_books_failed", err)
		return
	}
	h.render(c, http.StatusOK, "home.html", "Home", gin.H{"Books": books})
}

func (h *Handler) bookDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.renderError(c, http.StatusNotFound, "That book does not exist.", "", nil)
		return
	}
	book, err := h.services.GetBook(c.Request.Context(), id)
	if errors.Is(err, service.ErrBookNotFound) {
		h.renderError(c, http.StatusNotFound, "That book does not exist.", "", nil)
		return
	}
	if err != nil {
		h.renderError(c, http.StatusInternalServerError, errPageGeneric, "book_detail_failed", err, "book_id", id)
		return
	}
	h.render(c, http.StatusOK, "book.html", book.Title, gin.H{"Book": book})
}
