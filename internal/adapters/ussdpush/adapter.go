package ussdpush

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
	"github.com/kevin07696/ussd-push-service/pkg/observability"
)

// adapter implements the USSDPushAdapter port
type adapter struct {
	transport ports.Transport
	logger    *zap.Logger
}

// NewAdapter creates a USSD push adapter sending envelopes through transport
func NewAdapter(transport ports.Transport, logger *zap.Logger) ports.USSDPushAdapter {
	return &adapter{
		transport: transport,
		logger:    logger,
	}
}

// Login opens a gateway session
func (a *adapter) Login(ctx context.Context, cfg config.GatewayConfig) (*domain.TransactionResult, error) {
	wf := newWorkflow(operationLogin, a.logger)

	result, err := a.login(ctx, cfg, wf)
	if err != nil {
		return nil, wf.fail(err)
	}

	wf.complete(result)
	return result, nil
}

// Charge logs in and requests a USSD push bound to the fresh session
func (a *adapter) Charge(ctx context.Context, cfg config.GatewayConfig, req domain.ChargeRequest) (*domain.TransactionResult, error) {
	wf := newWorkflow(operationCharge, a.logger.With(
		zap.String("msisdn", req.MSISDN),
		zap.String("reference", req.Reference),
		zap.String("amount", req.Amount.String()),
	))

	login, err := a.login(ctx, cfg, wf)
	if err != nil {
		return nil, wf.fail(err)
	}

	wf.transition(domain.WorkflowCharging)

	body, err := BuildChargeEnvelope(cfg, req, login.Session)
	if err != nil {
		return nil, wf.fail(err)
	}

	result, err := a.exchange(ctx, cfg, cfg.RequestURL, body)
	if err != nil {
		return nil, wf.fail(err)
	}

	// The charge response does not echo the session
	result.Session = login.Session

	wf.complete(result)
	observability.RecordCharge(cfg.Client.Mode, result.Status, result.Currency, req.Amount.InexactFloat64())
	return result, nil
}

// ParseCallback normalizes an asynchronous webhook body
func (a *adapter) ParseCallback(body string, cfg config.GatewayConfig) (*domain.TransactionResult, error) {
	env, err := Parse(body)
	if err != nil {
		return nil, err
	}
	return Classify(env, body, cfg.ClientInfo())
}

func (a *adapter) login(ctx context.Context, cfg config.GatewayConfig, wf *workflow) (*domain.TransactionResult, error) {
	wf.transition(domain.WorkflowLoggingIn)

	body, err := BuildLoginEnvelope(cfg)
	if err != nil {
		return nil, err
	}

	result, err := a.exchange(ctx, cfg, cfg.LoginURL, body)
	if err != nil {
		return nil, err
	}

	wf.transition(domain.WorkflowLoggedIn)
	return result, nil
}

// exchange posts one envelope and classifies the reply
// Transport errors are returned unchanged
func (a *adapter) exchange(ctx context.Context, cfg config.GatewayConfig, url, body string) (*domain.TransactionResult, error) {
	req := &ports.TransportRequest{
		URL:    url,
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": cfg.ContentType,
			"Accept":       cfg.Accept,
		},
		Body: body,
		TLS:  LoadTLSMaterial(cfg.TLS, a.logger),
	}

	startTime := time.Now()
	raw, err := a.transport.Send(ctx, req)
	if err != nil {
		a.logger.Error("Failed to send gateway request",
			zap.String("url", url),
			zap.Duration("elapsed", time.Since(startTime)),
			zap.Error(err))
		return nil, err
	}

	a.logger.Debug("Received gateway response",
		zap.String("url", url),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("body_length", len(raw)))

	env, err := Parse(string(raw))
	if err != nil {
		return nil, err
	}
	return Classify(env, string(raw), cfg.ClientInfo())
}
