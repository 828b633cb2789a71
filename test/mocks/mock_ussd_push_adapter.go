package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
)

// MockUSSDPushAdapter is a testify mock of ports.USSDPushAdapter
type MockUSSDPushAdapter struct {
	mock.Mock
}

// Login implements ports.USSDPushAdapter
func (m *MockUSSDPushAdapter) Login(ctx context.Context, cfg config.GatewayConfig) (*domain.TransactionResult, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionResult), args.Error(1)
}

// Charge implements ports.USSDPushAdapter
func (m *MockUSSDPushAdapter) Charge(ctx context.Context, cfg config.GatewayConfig, req domain.ChargeRequest) (*domain.TransactionResult, error) {
	args := m.Called(ctx, cfg, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionResult), args.Error(1)
}

// ParseCallback implements ports.USSDPushAdapter
func (m *MockUSSDPushAdapter) ParseCallback(body string, cfg config.GatewayConfig) (*domain.TransactionResult, error) {
	args := m.Called(body, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionResult), args.Error(1)
}
