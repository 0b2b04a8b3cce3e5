package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/internal/mw"
)

const (
	defaultRateLimit = 10
	defaultBurst     = 5
	defaultCacheTTL  = 5 * time.Second
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	limit, burst, ttl := rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.CacheTTL
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	rateLimiter := mw.RateLimiter(limit, burst)

	// Writers below flush this cache, so reads are never staler than ttl
	// and never miss a change made through this process.
	h.cache = mw.NewResponseCache(ttl)
	caching := h.cache.Middleware()

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/rooms", caching, h.GetRooms)
		api.GET("/rooms/:number", caching, h.GetRoom)

		api.POST("/book", h.PostBook)
		api.POST("/random", h.PostRandom)
		api.POST("/reset", h.PostReset)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
