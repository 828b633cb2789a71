package ports

import (
	"context"

	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
)

// USSDPushAdapter defines the port for the generic-result mobile money gateway
type USSDPushAdapter interface {
	// Login opens a gateway session
	// Returns a result whose Session field holds the new session id
	// Returns *domain.GatewayError for validation, fault or authentication failures,
	// or the transport error unchanged
	Login(ctx context.Context, cfg config.GatewayConfig) (*domain.TransactionResult, error)

	// Charge logs in and requests a USSD push payment bound to the fresh session
	// Sessions are never reused across calls
	Charge(ctx context.Context, cfg config.GatewayConfig, req domain.ChargeRequest) (*domain.TransactionResult, error)

	// ParseCallback normalizes an asynchronous webhook body from the gateway
	ParseCallback(body string, cfg config.GatewayConfig) (*domain.TransactionResult, error)
}
