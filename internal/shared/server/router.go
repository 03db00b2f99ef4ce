package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "jobmatch-backend/internal/auth"
	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/recommendations"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
	"jobmatch-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config                config.Config
	ProfileHandler        *profiles.Handler
	JobHandler            *jobs.Handler
	MatchHandler          *matching.Handler
	RecommendationHandler *recommendations.Handler
	UserHandler           *users.Handler
	GoogleAuth            *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		matchRateLimit(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api)
	}
	if deps.MatchHandler != nil {
		deps.MatchHandler.RegisterRoutes(api)
	}
	if deps.RecommendationHandler != nil {
		deps.RecommendationHandler.RegisterRoutes(api)
	}

	return r
}

// matchRateLimit throttles match computation per principal; scoring a pair is
// the most expensive request the API serves.
func matchRateLimit() gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"MATCHING": {Rate: 2, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/matching") ||
				strings.HasPrefix(c.Request.URL.Path, "/api/v1/recommendations/generate") {
				return "MATCHING"
			}
			return ""
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
