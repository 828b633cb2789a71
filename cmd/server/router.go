package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/internal/config"
	paymentHandler "github.com/kevin07696/ussd-push-service/internal/handlers/payment"
	webhookHandler "github.com/kevin07696/ussd-push-service/internal/handlers/webhook"
	"github.com/kevin07696/ussd-push-service/pkg/middleware"
	"github.com/kevin07696/ussd-push-service/pkg/observability"
	"github.com/kevin07696/ussd-push-service/pkg/shutdown"
)

// routerDeps are the collaborators the API router is built from
type routerDeps struct {
	gateway     ports.USSDPushAdapter
	cfg         config.GatewayConfig
	rateLimiter *middleware.RateLimiter
	inFlight    *shutdown.InFlightTracker
	logger      *zap.Logger
	development bool
}

// newRouter builds the public API
//
// Routes:
//   - POST /api/v1/ussd/login
//   - POST /api/v1/ussd/charges
//   - POST /api/v1/ussd/callback (rate limited, parsed by the webhook middleware)
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(observability.MetricsMiddleware)
	r.Use(middleware.NewSecurityHeaders(deps.development).Middleware)

	payments := paymentHandler.NewHandler(deps.gateway, deps.cfg, deps.logger)
	callbacks := webhookHandler.NewCallbackHandler(deps.logger)
	parseCallback := webhookHandler.NewMiddleware(deps.gateway, deps.cfg,
		webhookHandler.JSONErrorHandler(deps.logger), deps.logger)

	r.Route("/api/v1/ussd", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(deps.inFlight.Middleware)
			payments.RegisterRoutes(r)
		})

		r.With(deps.rateLimiter.Middleware, parseCallback.Handler).
			Post("/callback", callbacks.HandleCallback)
	})

	return r
}
