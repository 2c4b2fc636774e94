package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/room-reservation/internal/config"     // cache and rate limit configuration
	"github.com/iliyamo/room-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/room-reservation/internal/middleware" // import middleware for JWT authentication, caching and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /api/auth,
// while protected endpoints live under /api.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session (login, refresh,
	// logout).  Each of these handlers is responsible for generating or
	// exchanging tokens.
	g := e.Group("/api/auth")
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (revoke all sessions) or a JSON
	// body with a `refresh_token` (revoke one session).
	g.POST("/logout", a.Logout)

	// Protected endpoints.  All handlers registered on this group execute
	// the JWTAuth middleware before being invoked.
	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterSchedule registers the booking, event, room type and calendar
// endpoints under /api.  Every route requires a valid access token, the
// way the original deployment verified its token on all API routes.  The
// calendar read path additionally goes through the Redis response cache
// and mutating routes flush that cache on success.  All routes share the
// token bucket rate limiter.
func RegisterSchedule(
	e *echo.Echo,
	b *handler.BookingHandler,
	ev *handler.EventHandler,
	rt *handler.RoomTypeHandler,
	cal *handler.CalendarHandler,
	jwtSecret string,
	rdb *redis.Client,
) {
	cacheCfg := config.LoadCacheConfig()
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewCacheInvalidator(cacheCfg, rdb),
	)

	// ---- Bookings ----
	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.GET("/bookings/:id", b.Get)
	g.DELETE("/bookings/:id", b.Delete)

	// ---- Events ----
	g.POST("/events", ev.Create)
	g.GET("/events", ev.List)
	g.GET("/events/:id", ev.Get)
	g.PUT("/events/:id", ev.Update)
	g.DELETE("/events/:id", ev.Delete)

	// ---- Room types ----
	cacheMW := middleware.NewRedisCache(cacheCfg, rdb)
	g.POST("/room-types", rt.Create)
	g.GET("/room-types", rt.List, cacheMW)
	g.GET("/room-types/:id", rt.Get)
	g.PUT("/room-types/:id", rt.Update)
	g.DELETE("/room-types/:id", rt.Delete)

	// ---- Calendar ----
	// The merged calendar is read-heavy and side-effect free, so its
	// responses are cached in Redis for the configured TTL.
	g.GET("/calendar", cal.Get, cacheMW)
}
