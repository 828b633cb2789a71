package webhook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
	"github.com/kevin07696/ussd-push-service/pkg/observability"
)

// maxCallbackBytes caps the callback body; gateway callbacks are a few KB
const maxCallbackBytes = 1 << 20

type contextKey struct{}

// ErrorHandler receives callback parse failures unmodified
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware parses gateway callbacks into a normalized TransactionResult
type Middleware struct {
	adapter ports.USSDPushAdapter
	cfg     config.GatewayConfig
	onError ErrorHandler
	logger  *zap.Logger
}

// NewMiddleware creates the callback middleware
func NewMiddleware(adapter ports.USSDPushAdapter, cfg config.GatewayConfig, onError ErrorHandler, logger *zap.Logger) *Middleware {
	return &Middleware{
		adapter: adapter,
		cfg:     cfg,
		onError: onError,
		logger:  logger,
	}
}

// Handler reads the raw body whatever its content type
// Requests without a body reach next untouched. A parsed result is stored in the
// request context; a parse failure goes to the error handler and next is not called.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallbackBytes))
		if err != nil {
			m.logger.Warn("Failed to read callback body", zap.Error(err))
			observability.RecordWebhookCallback("failed", "")
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				err = domain.NewBodyTooLargeError(maxErr.Limit, err)
			}
			m.onError(w, r, err)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		body := string(raw)
		if strings.TrimSpace(body) == "" {
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.adapter.ParseCallback(body, m.cfg)
		if err != nil {
			m.logger.Warn("Failed to parse gateway callback",
				zap.String("kind", string(domain.KindOf(err))),
				zap.Error(err))
			observability.RecordWebhookCallback("failed", "")
			m.onError(w, r, err)
			return
		}

		m.logger.Info("Gateway callback received",
			zap.String("reference", result.Reference),
			zap.String("transaction", result.Transaction),
			zap.String("status", result.Status),
			zap.Bool("is_successful", result.IsSuccessful))
		observability.RecordWebhookCallback("success", result.Status)

		next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), result)))
	})
}

// WithResult stores a parsed callback result in ctx
func WithResult(ctx context.Context, result *domain.TransactionResult) context.Context {
	return context.WithValue(ctx, contextKey{}, result)
}

// ResultFromContext returns the parsed callback result, if any
func ResultFromContext(ctx context.Context) (*domain.TransactionResult, bool) {
	result, ok := ctx.Value(contextKey{}).(*domain.TransactionResult)
	return result, ok && result != nil
}
