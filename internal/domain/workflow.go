package domain

// WorkflowState is a stage of the login -> charge workflow
type WorkflowState string

const (
	WorkflowIdle      WorkflowState = "idle"
	WorkflowLoggingIn WorkflowState = "logging_in"
	WorkflowLoggedIn  WorkflowState = "logged_in"
	WorkflowCharging  WorkflowState = "charging"
	WorkflowCompleted WorkflowState = "completed"
	WorkflowFailed    WorkflowState = "failed"
)

// workflowTransitions lists the forward edges; Failed is reachable from any state
var workflowTransitions = map[WorkflowState][]WorkflowState{
	WorkflowIdle:      {WorkflowLoggingIn},
	WorkflowLoggingIn: {WorkflowLoggedIn},
	WorkflowLoggedIn:  {WorkflowCharging, WorkflowCompleted},
	WorkflowCharging:  {WorkflowCompleted},
}

// CanTransitionTo reports whether the workflow may move from s to next
func (s WorkflowState) CanTransitionTo(next WorkflowState) bool {
	if next == WorkflowFailed {
		return s != WorkflowCompleted && s != WorkflowFailed
	}
	for _, allowed := range workflowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true once the workflow can no longer progress
func (s WorkflowState) IsTerminal() bool {
	return s == WorkflowCompleted || s == WorkflowFailed
}
