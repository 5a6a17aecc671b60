package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fieldmaker/verify-backend/internal/appenv"
	"github.com/fieldmaker/verify-backend/internal/middleware"
	"github.com/fieldmaker/verify-backend/internal/middleware/ratelimiter"
	"github.com/fieldmaker/verify-backend/internal/middleware/ratelimiter/mem_ratelimiter"
	"github.com/rs/cors"
)

func (s *Server) RegisterRoutes(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiRouter(ctx, s)))

	rateLimitGlobal := middleware.RateLimiter(
		func(r *http.Request) string {
			// since we are using the RealIp() middleware
			// it should be safe to use r.RemoteAddr as limit key
			return r.RemoteAddr
		},
		// per instance bucket, the endpoint specific limits go through
		// redis and hold across replicas
		mem_ratelimiter.NewTokenBucketLimiter(
			ctx,
			ratelimiter.Config{
				Enabled:              true,
				RequestsPerTimeFrame: 30,
				TimeFrame:            time.Minute,
				KeyPrefix:            "global",
			},
		),
	)

	corsMiddleware := middleware.Cors(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", "X-Request-UUID"},
	})

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
		s.LoggerInjector,
		// required for the rate limiter to function correctly and for logging
		middleware.RealIp(),
		middleware.RequestUUIDMiddleware,
		middleware.LocalizerInjector,
		middleware.RequestLogger,
		middleware.Recoverer,
		middleware.Timeout(30 * time.Second),
		corsMiddleware,
		middleware.ACT_app_json,
		rateLimitGlobal,
		middleware.Heartbeat,
	)
}

func apiRouter(ctx context.Context, s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", v1Router(ctx, s)))

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
	)
}

func v1Router(ctx context.Context, s *Server) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/verification/", http.StripPrefix("/verification", verificationRouter(s)))
	mux.Handle("/notification/", http.StripPrefix("/notification", notificationRouter(s)))

	if appenv.IsStagOrLocal() {
		mux.Handle("/dev-tools/", http.StripPrefix("/dev-tools", devToolsRouter(s)))
	}

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
	)
}
