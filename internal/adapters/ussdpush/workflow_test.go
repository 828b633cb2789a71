package ussdpush

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kevin07696/ussd-push-service/internal/domain"
)

func TestWorkflow_LoginPath(t *testing.T) {
	wf := newWorkflow(operationLogin, zap.NewNop())
	assert.Equal(t, domain.WorkflowIdle, wf.state)

	wf.transition(domain.WorkflowLoggingIn)
	wf.transition(domain.WorkflowLoggedIn)
	wf.complete(&domain.TransactionResult{Status: "processed"})

	assert.Equal(t, domain.WorkflowCompleted, wf.state)
}

func TestWorkflow_ChargePath(t *testing.T) {
	wf := newWorkflow(operationCharge, zap.NewNop())

	for _, next := range []domain.WorkflowState{
		domain.WorkflowLoggingIn,
		domain.WorkflowLoggedIn,
		domain.WorkflowCharging,
	} {
		wf.transition(next)
		assert.Equal(t, next, wf.state)
	}

	wf.complete(&domain.TransactionResult{Status: "success"})
	assert.Equal(t, domain.WorkflowCompleted, wf.state)
}

func TestWorkflow_IllegalTransitionIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	wf := newWorkflow(operationCharge, zap.New(core))

	wf.transition(domain.WorkflowCharging)

	assert.Equal(t, domain.WorkflowIdle, wf.state)
	assert.Equal(t, 1, logs.FilterMessage("Illegal workflow transition").Len())
}

func TestWorkflow_FailReturnsErrorUnchanged(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"gateway error", domain.NewSessionError("6")},
		{"transport error", errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			wf := newWorkflow(operationCharge, zap.New(core))
			wf.transition(domain.WorkflowLoggingIn)

			err := wf.fail(tt.err)

			assert.Same(t, tt.err, err)
			assert.Equal(t, domain.WorkflowFailed, wf.state)

			entries := logs.FilterMessage("Gateway workflow failed").All()
			if assert.Len(t, entries, 1) {
				assert.Equal(t, string(domain.WorkflowLoggingIn), entries[0].ContextMap()["stage"])
			}
		})
	}
}
