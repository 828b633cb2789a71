package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/domain"
	"github.com/kevin07696/ussd-push-service/pkg/encoding"
)

// kindTransport labels failures that never reached the gateway taxonomy
const kindTransport = "TRANSPORT"

// ErrorBody is the JSON error envelope returned by the API
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed gateway operation
// Diagnostic data is logged, never returned, since validation snapshots hold credentials
type ErrorDetail struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Status      int    `json:"status"`
}

// NewErrorBody maps err onto the JSON error envelope
func NewErrorBody(err error) ErrorBody {
	status := domain.StatusOf(err)

	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		return ErrorBody{Error: ErrorDetail{
			Kind:        string(gwErr.Kind),
			Message:     gwErr.Message,
			Code:        gwErr.Code,
			Description: gwErr.Description,
			Status:      status,
		}}
	}

	return ErrorBody{Error: ErrorDetail{
		Kind:    kindTransport,
		Message: http.StatusText(status),
		Status:  status,
	}}
}

// WriteError logs err and writes it as JSON with the status from domain.StatusOf
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	body := NewErrorBody(err)

	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.String("kind", body.Error.Kind),
		zap.Int("status", body.Error.Status),
		zap.Error(err),
	}
	if body.Error.Status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Warn("Request rejected", fields...)
	}

	if writeErr := encoding.WriteJSON(w, body.Error.Status, body); writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}
