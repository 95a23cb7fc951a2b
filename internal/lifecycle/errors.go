package lifecycle

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

var (
	ErrPublishBeforeDraft = errors.New("lifecycle: entity must be saved as a draft before publishing")
	ErrNotSaved           = errors.New("lifecycle: entity has not been saved")
	ErrTransitionInvalid  = errors.New("lifecycle: invalid transition")
)

// Action names a lifecycle transition.
type Action string

const (
	ActionSaveDraft Action = "save_draft"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
)

// LifecycleError reports a transition whose precondition does not hold. It
// reflects state history, not entity content.
type LifecycleError struct {
	Kind   domain.Kind
	From   State
	Action Action
	Err    error
}

func (e *LifecycleError) Error() string {
	if e == nil {
		return ErrTransitionInvalid.Error()
	}
	cause := e.Err
	if cause == nil {
		cause = ErrTransitionInvalid
	}
	return fmt.Sprintf("%s: kind=%s state=%s action=%s", cause.Error(), e.Kind, e.From, e.Action)
}

func (e *LifecycleError) Unwrap() error {
	if e == nil || e.Err == nil {
		return ErrTransitionInvalid
	}
	return e.Err
}

// IsLifecycleError reports whether err carries a LifecycleError.
func IsLifecycleError(err error) bool {
	var target *LifecycleError
	return errors.As(err, &target)
}
