package webhook

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/handlers"
	"github.com/kevin07696/ussd-push-service/pkg/encoding"
	"github.com/kevin07696/ussd-push-service/pkg/observability"
)

// CallbackHandler acknowledges gateway callbacks parsed by Middleware
type CallbackHandler struct {
	logger *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{logger: logger}
}

// HandleCallback echoes the normalized result
// Endpoint: POST /api/v1/ussd/callback
func (h *CallbackHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	result, ok := ResultFromContext(r.Context())
	if !ok {
		h.logger.Warn("Callback received without a body")
		observability.RecordWebhookCallback("rejected", "")
		http.Error(w, "Callback body is required", http.StatusBadRequest)
		return
	}

	if err := encoding.WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write callback response", zap.Error(err))
	}
}

// JSONErrorHandler returns the JSON error writer used for callback parse failures
func JSONErrorHandler(logger *zap.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		handlers.WriteError(w, r, logger, err)
	}
}
