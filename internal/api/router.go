// Package api exposes the ledger over HTTP. It acts as the host of the
// contract. Queries are public. Execute and receive require basic auth with a
// configured caller; the authenticated address is the message sender, so a
// caller can only act as itself.
package api

import (
	"net/http"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const authRealm = "staking-reward-ledger"

type Handler struct {
	service *services.Service
	// caller address -> secret
	credentials map[string]string
}

func NewHandler(service *services.Service, credentials map[string]string) *Handler {
	return &Handler{service: service, credentials: credentials}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(traceMiddleware)
	r.Use(chimw.Recoverer)

	r.Get("/healthcheck", h.HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimw.BasicAuth(authRealm, h.credentials))
			r.Post("/execute", h.Execute)
			r.Post("/receive", h.Receive)
		})

		r.Get("/config", h.GetConfig)
		r.Get("/totals", h.GetTotals)
		r.Get("/stakers/{address}", h.GetStaker)
		r.Get("/stakers/{address}/rewards", h.GetPendingRewards)
	})

	return r
}

// traceMiddleware attaches the caller supplied trace id, or a fresh one, to
// the request logger and echoes it back.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.WithTraceID(r.Context(), r.Header.Get(tracing.TraceIDHeader))
		w.Header().Set(tracing.TraceIDHeader, tracing.TraceID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// caller is the address authenticated by BasicAuth.
func caller(r *http.Request) string {
	user, _, _ := r.BasicAuth()
	return user
}
