package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gemilang-store/internal/auth"
	"gemilang-store/internal/models"
	"gemilang-store/internal/service"
	"gemilang-store/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	sessions      *auth.SessionStore
	authService   *auth.Service
	catalog       *service.CatalogService
	cart          *service.CartService
	checkout      *service.CheckoutService
	profile       *service.ProfileService
	notifications *service.NotificationService
	admin         *service.AdminService

	cookieName   string
	cookieMaxAge int
}

// NewHandler creates a new HTTP handler
func NewHandler(
	sessions *auth.SessionStore,
	authService *auth.Service,
	catalog *service.CatalogService,
	cart *service.CartService,
	checkout *service.CheckoutService,
	profile *service.ProfileService,
	notifications *service.NotificationService,
	admin *service.AdminService,
	cookieName string,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		sessions:      sessions,
		authService:   authService,
		catalog:       catalog,
		cart:          cart,
		checkout:      checkout,
		profile:       profile,
		notifications: notifications,
		admin:         admin,
		cookieName:    cookieName,
		cookieMaxAge:  int(sessionTTL.Seconds()),
	}
}

// SetupRoutes sets up HTTP routes. The route tree mirrors the storefront: a
// public surface, a session-guarded customer surface, the admin login, and
// the admin-guarded console.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	router.Use(h.resolveSession())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Admin login stays reachable in every session state; it is the only
	// route that can turn a session into an admin session.
	router.POST("/admin", h.adminLogin)

	storefront := router.Group("/", h.redirectAdmins())
	{
		storefront.GET("", h.home)
		storefront.POST("/signin", h.signIn)
		storefront.POST("/signup", h.guestOnly(), h.signUp)
		storefront.POST("/signout", h.signOut)
		storefront.GET("/parts/:id", h.partDetail)

		protected := storefront.Group("", h.requireSession())
		{
			protected.GET("/me", h.me)
			protected.POST("/session/refresh", h.refreshSession)

			protected.GET("/settings", h.getProfile)
			protected.PUT("/settings", h.updateProfile)
			protected.POST("/settings/avatar", h.uploadAvatar)

			protected.GET("/keranjang", h.viewCart)
			protected.POST("/keranjang/items", h.addCartItem)
			protected.PATCH("/keranjang/items/:id", h.updateCartItem)
			protected.DELETE("/keranjang/items/:id", h.removeCartItem)

			protected.GET("/pengiriman", h.checkoutSummary)
			protected.POST("/pengiriman", h.placeOrder)

			protected.GET("/notifications", h.listNotifications)
			protected.POST("/notifications/:id/read", h.markNotificationRead)
		}
	}

	console := router.Group("/admin/dashboard", h.requireAdmin())
	{
		console.GET("/orders", h.listOrders)
		console.POST("/orders/:id/status", h.updateOrderStatus)
		console.GET("/spare-parts", h.listSpareParts)
		console.POST("/spare-parts", h.addSparePart)
		console.PATCH("/spare-parts/:id/stock", h.updateSparePartStock)
	}

	router.NoRoute(h.fallback)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// fallback redirects unmatched paths: admins into the console, everyone else
// to the landing route
func (h *Handler) fallback(c *gin.Context) {
	if s := currentSession(c); s != nil && s.Admin {
		c.Redirect(http.StatusFound, adminHomePath)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// respondError maps the error taxonomy to a status and a short user-facing
// message; everything unrecognized is a backend failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
	case errors.Is(err, models.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized as admin",
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Something went wrong, please try again",
			"details": err.Error(),
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
