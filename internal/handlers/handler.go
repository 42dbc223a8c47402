package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"books_app/internal/logger"
	"books_app/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config carries the HTTP-level settings that are not services.
type Config struct {
	SessionName    string
	SessionSecret  string
	SessionMaxAge  time.Duration
	SecureCookies  bool
	AllowedOrigins []string
	// Empty means X-Forwarded-For is ignored and ClientIP is the peer address.
	TrustedProxies []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
// A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.SessionName == "" {
		cfg.SessionName = "books_session"
	}
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(h.trustedProxies()); err != nil {
		h.log.Errorw("trusted_proxies_invalid", "proxies", h.cfg.TrustedProxies, "err", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// HTML pages share the cookie session
	pages := router.Group("/", sessions.Sessions(h.cfg.SessionName, h.sessionStore()), h.loadSessionUser)
	h.registerPageRoutes(pages)
	h.registerAuthPageRoutes(pages)

	// JSON token endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Catalog feed (HTTP upgrade) on the same port
	router.GET("/ws/books", h.wsBooks)

	return router
}

func (h *Handler) trustedProxies() []string {
	if len(h.cfg.TrustedProxies) == 0 {
		return nil
	}
	return h.cfg.TrustedProxies
}

func (h *Handler) sessionStore() sessions.Store {
	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(h.cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

func (h *Handler) registerPageRoutes(r *gin.RouterGroup) {
	r.GET("/", h.home)
	r.GET("/book/:id", h.bookDetail)
}

func (h *Handler) registerAuthPageRoutes(r *gin.RouterGroup) {
	r.GET("/signup", h.signupForm)
	r.POST("/signup", h.signup)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	if len(h.cfg.AllowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: h.cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
		// preflight requests are answered by the cors middleware
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	api.Use(h.userIdMiddleware)
	{
		h.registerBookRoutes(api)
		h.registerAuthorRoutes(api)
	}
}

func (h *Handler) registerBookRoutes(api *gin.RouterGroup) {
	books := api.Group("/books")
	{
		books.GET("", h.listBooks)
		books.GET("/:id", h.getBook)
		// Body example: {"title":"The Bell Jar","author_id":2,"publish_date":"1963-01-14"}
		books.POST("", h.createBook)
	}
}

func (h *Handler) registerAuthorRoutes(api *gin.RouterGroup) {
	authors := api.Group("/authors")
	{
		authors.GET("", h.listAuthors)
		authors.POST("", h.createAuthor)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
