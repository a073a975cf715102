package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/openn02/Tend/internal/config"
	httpmiddleware "github.com/openn02/Tend/internal/http/middleware"
	"github.com/openn02/Tend/internal/oauth"
	"github.com/openn02/Tend/internal/service"
	"github.com/openn02/Tend/internal/wellbeing"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Handler bundles the services the routes depend on.
type Handler struct {
	cfg           *config.Config
	authService   *service.AuthService
	users         *service.UserService
	insights      *service.InsightsService
	oauthRegistry *oauth.Registry
	oauthClient   *oauth.Client
	frontendURL   string
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
}

// NewRouter wires services into the configured router.
func NewRouter(cfg *config.Config, authService *service.AuthService, users *service.UserService, insights *service.InsightsService) http.Handler {
	registry := oauth.NewRegistry(cfg.OAuth, cfg.BackendURL)

	h := &Handler{
		cfg:           cfg,
		authService:   authService,
		users:         users,
		insights:      insights,
		oauthRegistry: registry,
		oauthClient:   oauth.NewClient(registry),
		frontendURL:   cfg.FrontendURL,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)

		public.Route("/api/v1/auth", func(auth chi.Router) {
			auth.Post("/login", h.Login)
			auth.Post("/register", h.Register)
			auth.Post("/refresh", h.Refresh)
			auth.Post("/logout", h.Logout)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(authService.JWT()))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Route("/api/v1", func(api chi.Router) {
			api.Get("/users/me", h.Me)
			api.Patch("/users/me", h.UpdateMe)

			api.Route("/integrations/{provider}", func(integration chi.Router) {
				integration.Get("/status", h.IntegrationStatus)
				integration.Get("/auth", h.IntegrationAuth)
				integration.Get("/callback", h.IntegrationCallback)
			})

			api.Get("/signals/my", h.MySignals)
			api.Get("/nudges/my", h.MyNudges)
			api.Post("/nudges/{id}/read", h.MarkNudgeRead)

			api.Get("/teams/my", h.MyTeam)
			api.With(httpmiddleware.RequireRoles(wellbeing.RoleManager, wellbeing.RoleHR)).
				Get("/teams/my/metrics", h.MyTeamMetrics)
		})
	})

	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}
