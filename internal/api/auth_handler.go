package api

import (
	"errors"
	"net/http"

	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// adminContextKey is the gin context key the session guard stores the
// authenticated admin under
const adminContextKey = "admin_user"

// AuthHandler manages the admin login/logout flow and the session guard
type AuthHandler struct {
	auth service.AuthService
	cfg  *config.AuthConfig
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.AuthService, cfg *config.AuthConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		cfg:  cfg,
		log:  log.With().Str("handler", "auth").Logger(),
	}
}

// loginRequest accepts both JSON bodies and classic form posts
type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginPage handles GET /admin/login. An already-authenticated session is
// sent straight to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.CookieName); err == nil && token != "" {
		if _, err := h.auth.Authenticate(c.Request.Context(), token); err == nil {
			c.Redirect(http.StatusSeeOther, "/admin")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			// Surfaced inline on the login form; session stays anonymous
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondError(c, h.log, err)
		return
	}

	c.SetCookie(h.cfg.CookieName, session.Token, int(h.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout handles POST /admin/logout. The session is torn down
// unconditionally and the caller lands back on the login view.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.CookieName)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete session")
	}

	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// RequireSession is the session guard for admin views. Session presence is
// checked before any content is fetched; absence redirects to the login
// view so admin data never reaches an unauthenticated render.
func (h *AuthHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.cfg.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}

		admin, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			// Clear the stale cookie before bouncing to login
			c.SetCookie(h.cfg.CookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}
