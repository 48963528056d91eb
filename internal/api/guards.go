package api

import (
	"net/http"
	"strings"

	"gemilang-store/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	sessionContextKey = "session"
	adminHomePath     = "/admin/dashboard/orders"
)

// resolveSession looks up the session named by the cookie (or bearer token)
// on every request. Guards read the result; nothing is cached between
// navigations beyond the session store's own short-lived cache.
func (h *Handler) resolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := h.sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := h.sessions.Current(c.Request.Context(), token)
		if err != nil || session == nil {
			c.Next()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func (h *Handler) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// currentSession returns the resolved session for the request, or nil
func currentSession(c *gin.Context) *auth.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

// requireSession redirects unauthenticated requests to the landing route
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c) == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// redirectAdmins keeps admin sessions out of the storefront entirely: any
// non-admin path redirects into the console's default sub-route.
func (h *Handler) redirectAdmins() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := currentSession(c); s != nil && s.Admin {
			c.Redirect(http.StatusFound, adminHomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// guestOnly makes unauthenticated-only routes unreachable with a session
func (h *Handler) guestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin guards the console: no session or a customer session redirects
// to the admin login
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := currentSession(c)
		if s == nil || !s.Admin {
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
