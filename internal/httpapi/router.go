// Package httpapi implements the HTTP transport and routing layer spec §2
// lists as explicitly out of the core's scope: request/response marshaling,
// route registration, and the collaborator middlewares (rate limiting,
// CORS, structured request logging, panic recovery, prometheus metrics) in
// front of internal/orchestrator's pipeline. Grounded on the teacher's own
// interfaces/http package (router.go's RouterConfig+NewRouter shape,
// middleware/*.go's per-concern middleware split), re-expressed with
// gin-gonic/gin in place of the teacher's chi router since this module's
// go.mod already carries gin as its HTTP framework.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/slidegrove/analytics-engine/internal/config"
	"github.com/slidegrove/analytics-engine/internal/logging"
	"github.com/slidegrove/analytics-engine/internal/orchestrator"
)

// RouterConfig aggregates every dependency NewRouter needs, mirroring the
// teacher's own RouterConfig aggregation of handlers + middleware +
// infrastructure.
type RouterConfig struct {
	Orchestrator *orchestrator.Orchestrator
	Logger       logging.Logger
	RateLimit    config.RateLimitConfig
	Mode         string // "debug" | "release" | "test", forwarded to gin.SetMode
}

// NewRouter constructs the complete HTTP route tree: global middleware
// (recovery, CORS, logging, metrics, rate limit) wrapping the public health
// endpoints and the /api/v1 resource routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(recoveryMiddleware(log))
	engine.Use(corsMiddleware(defaultCORSConfig()))
	engine.Use(requestLoggingMiddleware(log))

	metrics := newMetricsRegistry()
	engine.Use(metrics.middleware())

	var limiter *ipLimiter
	if cfg.RateLimit.PerMinute > 0 {
		burst := cfg.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = newIPLimiter(cfg.RateLimit.PerMinute, burst)
	}
	engine.Use(rateLimitMiddleware(limiter))

	stats := newStatsCollector()
	h := newHandlers(cfg.Orchestrator, stats)

	engine.GET("/health", h.getHealth)
	engine.GET("/stats", h.getStats)
	engine.GET("/metrics", gin.WrapH(metrics.handler()))

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/analytics/batch", h.postAnalyticsBatch)
		v1.POST("/analytics/:layout/:analytics_type", h.postAnalytics)

		v1.GET("/chart-types", h.getChartTypes)
		v1.GET("/chart-types/:filter", h.getChartTypes)

		v1.GET("/layouts/:layout/chart-types", h.getLayoutChartTypes)
	}

	return engine
}
