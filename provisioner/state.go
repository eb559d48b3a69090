package provisioner

import (
	"fmt"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// State is the progress of a provisioning run against its session.
type State int

const (
	Unconfigured State = iota
	TemplateLoaded
	OptionsSet
	Saved
	Reopened
	SecurityConfigured
	SSLConfigured
	Persisted
	Closed
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "Unconfigured"
	case TemplateLoaded:
		return "TemplateLoaded"
	case OptionsSet:
		return "OptionsSet"
	case Saved:
		return "Saved"
	case Reopened:
		return "Reopened"
	case SecurityConfigured:
		return "SecurityConfigured"
	case SSLConfigured:
		return "SSLConfigured"
	case Persisted:
		return "Persisted"
	case Closed:
		return "Closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// transition moves *cur from one state to the next one. Only single forward steps are allowed.
func transition(cur *State, from, to State) error {
	if *cur != from {
		return fmt.Errorf("%w: expected %s, got %s", interfaces.ErrInvalidTransition, from, *cur)
	}
	if to != from+1 || to > Closed {
		return fmt.Errorf("%w: %s -> %s", interfaces.ErrInvalidTransition, from, to)
	}
	*cur = to
	return nil
}

// StepError reports the step that halted a run and the last state the run reached.
type StepError struct {
	Step  string
	State State
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed in state %s: %v", e.Step, e.State, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
