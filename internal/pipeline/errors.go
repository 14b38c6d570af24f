package pipeline

import "fmt"

// PreconditionError reports a missing prerequisite (owning case, input
// bytes, raw-block artifact). These are fatal and non-retryable: the run
// aborts and the job goes to failed.
type PreconditionError struct {
	Stage  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed at stage %s: %s", e.Stage, e.Reason)
}
