package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "securepay/internal/api/context"
	"securepay/internal/api/handlers"
	"securepay/internal/api/middleware"
	"securepay/internal/platform/auth"
	"securepay/internal/platform/config"
)

type Dependencies struct {
	NotificationHandler *handlers.NotificationHandler
	HealthHandler       *handlers.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimiter         *middleware.RateLimiter
	Limits              config.RateLimitConfig
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	authMid := deps.AuthMiddleware
	limiter := deps.RateLimiter

	router.GET("/health", wrap(deps.HealthHandler.Check))

	// Provider callbacks
	router.POST("/notifications",
		chain(deps.NotificationHandler.Receive,
			limiter.RateLimit("notifications", deps.Limits.NotificationsPerMinute)))

	// Operator read API
	router.GET("/api/v1/orders/:order_id/notifications",
		chain(deps.NotificationHandler.ListByOrder,
			limiter.RateLimit("api_read", deps.Limits.APIReadPerMinute),
			authMid.Handle,
			middleware.RequireScope(auth.ScopeNotificationsRead)))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
