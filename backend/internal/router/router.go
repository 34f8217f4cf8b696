package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threadboard/threadboard/backend/internal/setup"
	"github.com/threadboard/threadboard/shared/csrf"
	"github.com/threadboard/threadboard/shared/domain"
	mw "github.com/threadboard/threadboard/shared/middleware"
	"github.com/threadboard/threadboard/shared/middleware/metrics"
)

// New creates and configures a new chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints of that group combined
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))

	// setup CORS for frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", csrf.HeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(cfg.Public.SecureCookies))

	h := deps.Handler
	authMw := deps.AuthMiddleware
	limiters := deps.RateLimiters

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(mw.GlobalRateLimit(limiters.Global))

		v1.Route("/auth", func(auth chi.Router) {
			auth.With(mw.RateLimit(limiters.Register, mw.GetIP)).Post("/register", h.Register)
			auth.With(mw.RateLimit(limiters.Login, mw.GetIP)).Post("/login", h.Login)
			// Logout (no rate limits)
			auth.Post("/logout", h.Logout)
		})

		// Reads are public, a signed-in caller also sees their own reactions
		v1.Group(func(public chi.Router) {
			public.Use(authMw.OptionalAuth())

			public.Get("/threads", h.ListThreads)
			public.Get("/threads/{thread}", h.GetThread)
			public.Get("/threads/{thread}/comments", h.GetComments)
			public.Get("/threads/{thread}/comments/tree", h.GetCommentTree)
		})

		// Logged-in user routes
		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(mw.RequireCSRF())
			loggedIn.Use(authMw.NeedAuth())
			if limiters.Write != nil {
				loggedIn.Use(mw.RateLimit(limiters.Write, mw.GetUserIDFromContext))
			}

			loggedIn.Post("/threads", h.CreateThread)
			loggedIn.Patch("/threads/{thread}", h.EditThread)
			loggedIn.Delete("/threads/{thread}", h.DeleteThread)
			loggedIn.Patch("/threads/{thread}/{reaction:like|dislike}", h.React(domain.EntityThread))
			loggedIn.Post("/threads/{thread}/comments", h.PostComment)

			loggedIn.Patch("/comments/{comment}", h.EditComment)
			loggedIn.Delete("/comments/{comment}", h.DeleteComment)
			loggedIn.Patch("/comments/{comment}/{reaction:like|dislike}", h.React(domain.EntityComment))
		})
	})

	return r
}
