package handlers

import (
	"errors"

	"books_app/internal/models"
	"books_app/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionKeyUserID = "user_id"
	ctxUserKey       = "auth.user"
)

// loadSessionUser resolves the session's user id and stores the user in the
// gin context. Stale ids (deleted users) clear the session.
func (h *Handler) loadSessionUser(c *gin.Context) {
	session := sessions.Default(c)
	id, ok := session.Get(sessionKeyUserID).(int)
	if !ok || id <= 0 {
		c.Next()
		return
	}

	user, err := h.services.GetUser(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		session.Clear()
		if err := session.Save(); err != nil {
			h.log.Errorw("session_clear_failed", "err", err)
		}
	case err != nil:
		h.log.Errorw("session_user_lookup_failed", "user_id", id, "err", err)
	default:
		c.Set(ctxUserKey, user)
	}
	c.Next()
}

// currentUser returns the logged-in user or nil.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func startSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionKeyUserID, user.ID)
	return session.Save()
}

func endSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
