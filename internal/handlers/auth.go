package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"books_app/internal/service"

	"github.com/gin-gonic/gin"
)

// User-visible outcomes of the signup and login forms.
const (
	msgFieldsRequired   = "Username and password are required."
	msgUsernameTaken    = "That username is taken. Please choose a different one."
	msgEmptyPassword    = "Password cannot be blank."
	msgPasswordTooLong  = "Password is too long. Use at most 72 bytes."
	msgNoSuchUser       = "No user with that username. Please try again."
	msgPasswordMismatch = "Password doesn't match. Please try again."
	msgTooManyAttempts  = "Too many failed attempts. Please wait before trying again."
)

// Single, shared credentials payload for both sign-up and sign-in.
// The form tags serve the HTML pages, the json tags the token API.
type authCredentials struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ---- HTML forms ----

func (h *Handler) signupForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "signup.html", "Sign Up", "", "")
}

func (h *Handler) loginForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "login.html", "Log In", "", "")
}

// renderForm renders a form page, optionally with a validation message.
func (h *Handler) renderForm(c *gin.Context, code int, page, title, username, msg string) {
	h.render(c, code, page, title, gin.H{"Error": msg, "Username": username})
}

func (h *Handler) signup(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBind(&input); err != nil {
		h.renderForm(c, http.StatusOK, "signup.html", "Sign Up", input.Username, msgFieldsRequired)
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		h.log.Infow("auth_sign_up_taken", "username", input.Username)
		h.renderForm(c, http.StatusOK, "signup.html", "Sign Up", input.Username, msgUsernameTaken)
		return
	case errors.Is(err, service.ErrEmptyUsername):
		h.renderForm(c, http.StatusOK, "signup.html", "Sign Up", input.Username, msgFieldsRequired)
		return
	case errors.Is(err, service.ErrEmptyPassword):
		h.renderForm(c, http.StatusOK, "signup.html", "Sign Up", input.Username, msgEmptyPassword)
		return
	case errors.Is(err, service.ErrPasswordTooLong):
		h.renderForm(c, http.StatusOK, "signup.html", "Sign Up", input.Username, msgPasswordTooLong)
		return
	case err != nil:
		h.renderError(c, http.StatusInternalServerError, errPageGeneric, "auth_sign_up_failed", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_sign_up", "user_id", id, "username", input.Username)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBind(&input); err != nil {
		h.renderForm(c, http.StatusOK, "login.html", "Log In", input.Username, msgFieldsRequired)
		return
	}

	ip := c.ClientIP()
	if retryAfter := h.services.CheckLock(ip); retryAfter > 0 {
		c.Header("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds()), 10))
		h.renderForm(c, http.StatusTooManyRequests, "login.html", "Log In", input.Username, msgTooManyAttempts)
		return
	}

	user, err := h.services.Authenticate(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.services.RecordFailure(ip)
		h.log.Infow("auth_login_failed", "username", input.Username, "reason", "unknown_user")
		h.renderForm(c, http.StatusOK, "login.html", "Log In", input.Username, msgNoSuchUser)
		return
	case errors.Is(err, service.ErrInvalidPassword):
		h.services.RecordFailure(ip)
		h.log.Infow("auth_login_failed", "username", input.Username, "reason", "bad_password")
		h.renderForm(c, http.StatusOK, "login.html", "Log In", input.Username, msgPasswordMismatch)
		return
	case err != nil:
		h.renderError(c, http.StatusInternalServerError, errPageGeneric, "auth_login_error", err, "username", input.Username)
		return
	}

	h.services.ResetAttempts(ip)
	if err := startSession(c, user); err != nil {
		h.renderError(c, http.StatusInternalServerError, errPageGeneric, "session_save_failed", err, "user_id", user.ID)
		return
	}
	h.log.Infow("auth_login", "user_id", user.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if err := endSession(c); err != nil {
		h.renderError(c, http.StatusInternalServerError, errPageGeneric, "session_clear_failed", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// ---- JSON token API ----

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("api_bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": msgUsernameTaken})
		return
	case errors.Is(err, service.ErrEmptyUsername), errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_up_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Issue an API token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
		h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_in_error", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
