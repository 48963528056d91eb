package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignUpsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signups_total",
		Help: "Total number of client registrations",
	})

	SignInsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signins_total",
		Help: "Total number of successful sign-ins",
	})

	SignInFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signin_failures_total",
		Help: "Total number of failed sign-ins",
	}, []string{"reason"})

	AdminLoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_logins_total",
		Help: "Total number of successful admin logins",
	})

	AdminLoginFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_login_failures_total",
		Help: "Total number of failed admin logins",
	}, []string{"reason"})

	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Total number of items added to carts",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed at checkout",
	})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of admin order status updates",
	}, []string{"status"})

	CartClearFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_cart_clear_failures_total",
		Help: "Total number of checkouts whose cart clear needed reconciliation",
	})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_latency_seconds",
		Help:    "Latency of the checkout two-phase flow",
		Buckets: prometheus.DefBuckets,
	})

	NotificationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total number of notifications written by the worker",
	})

	AvatarUploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "avatar_uploads_total",
		Help: "Total number of avatar uploads",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
