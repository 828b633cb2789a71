package ussdpush

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/domain"
	"github.com/kevin07696/ussd-push-service/pkg/observability"
)

const (
	operationLogin  = "login"
	operationCharge = "charge"

	outcomeSuccess   = "success"
	outcomeTransport = "transport"
)

// workflow tracks one login or charge invocation
// Owned by a single call; never shared between goroutines
type workflow struct {
	logger    *zap.Logger
	operation string
	state     domain.WorkflowState
	started   time.Time
}

func newWorkflow(operation string, logger *zap.Logger) *workflow {
	return &workflow{
		logger:    logger.With(zap.String("operation", operation)),
		operation: operation,
		state:     domain.WorkflowIdle,
		started:   time.Now(),
	}
}

// transition moves to next; an illegal edge is logged and ignored
func (w *workflow) transition(next domain.WorkflowState) {
	if !w.state.CanTransitionTo(next) {
		w.logger.Error("Illegal workflow transition",
			zap.String("from", string(w.state)),
			zap.String("to", string(next)))
		return
	}

	w.logger.Debug("Workflow transition",
		zap.String("from", string(w.state)),
		zap.String("to", string(next)))
	w.state = next
}

// fail marks the workflow failed and returns err unchanged
func (w *workflow) fail(err error) error {
	stage := w.state
	w.transition(domain.WorkflowFailed)

	outcome := outcomeTransport
	if kind := domain.KindOf(err); kind != "" {
		outcome = strings.ToLower(string(kind))
	}

	w.logger.Warn("Gateway workflow failed",
		zap.String("stage", string(stage)),
		zap.String("outcome", outcome),
		zap.Int("status", domain.StatusOf(err)),
		zap.Error(err))

	observability.RecordGatewayCall(w.operation, outcome, time.Since(w.started).Seconds())
	return err
}

// complete marks the workflow completed
func (w *workflow) complete(result *domain.TransactionResult) {
	w.transition(domain.WorkflowCompleted)

	w.logger.Info("Gateway workflow completed",
		zap.String("status", result.Status),
		zap.String("result_code", result.Result.Code),
		zap.String("reference", result.Reference),
		zap.Duration("duration", time.Since(w.started)))

	observability.RecordGatewayCall(w.operation, outcomeSuccess, time.Since(w.started).Seconds())
}
