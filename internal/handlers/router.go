package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/android19/discipleship-form-sub001/internal/version"
	"github.com/android19/discipleship-form-sub001/pkg/db"
)

// Routes constructs the router containing all API endpoints. The
// public form-access routes sit behind their own rate limit; everything
// under /v1 is expected to be fronted by the operator auth proxy.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := a.config.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context(), a.pool); err != nil {
			respondError(w, http.StatusServiceUnavailable, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/tokens", func(r chi.Router) {
			r.Post("/", a.handleCreateToken)
			r.Get("/", a.handleListTokens)
			r.Get("/{id}", a.handleGetToken)
			r.Patch("/{id}", a.handleUpdateToken)
			r.Delete("/{id}", a.handleDeleteToken)
			r.Post("/{id}/activate", a.handleActivateToken)
			r.Post("/{id}/deactivate", a.handleDeactivateToken)
			r.Post("/{id}/reset-usage", a.handleResetTokenUsage)
		})

		r.Route("/leaders", crudRoutes(a.handleListLeaders, a.handleGetLeader, a.handleCreateLeader, a.handleUpdateLeader, a.handleDeleteLeader))
		r.Route("/coaches", crudRoutes(a.handleListCoaches, a.handleGetCoach, a.handleCreateCoach, a.handleUpdateCoach, a.handleDeleteCoach))
		r.Route("/members", crudRoutes(a.handleListMembers, a.handleGetMember, a.handleCreateMember, a.handleUpdateMember, a.handleDeleteMember))
		r.Route("/victory-groups", crudRoutes(a.handleListGroups, a.handleGetGroup, a.handleCreateGroup, a.handleUpdateGroup, a.handleDeleteGroup))

		r.Get("/ministries", a.handleListMinistries)
		r.Get("/classes", a.handleListClasses)

		r.Post("/submissions", a.handleCreateDirectSubmission)
		r.Get("/submissions", a.handleListSubmissions)
		r.Get("/submissions/{id}", a.handleGetSubmission)

		r.Get("/reports/token-usage", a.handleTokenUsageReport)
		r.Get("/reports/submissions", a.handleLeaderActivityReport)
	})

	r.Route("/public", func(r chi.Router) {
		r.Use(httprate.Limit(a.config.PublicRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/form-access/validate", a.handleValidateCode)
		r.Post("/submissions", a.handlePublicSubmission)
	})

	return gzhttp.GzipHandler(otelhttp.NewHandler(r, version.Name))
}

func crudRoutes(list, get, create, update, del http.HandlerFunc) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", list)
		r.Post("/", create)
		r.Get("/{id}", get)
		r.Put("/{id}", update)
		r.Delete("/{id}", del)
	}
}
