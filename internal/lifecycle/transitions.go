package lifecycle

import "github.com/goliatone/go-pagebuilder/internal/domain"

// SaveDraft moves any state to DRAFT. Saving an existing draft is idempotent and
// saving a published entity moves it back to draft.
func SaveDraft(_ domain.Kind, from State) (State, error) {
	return StateDraft, nil
}

// Publish moves an entity to PUBLISHED. Pages must have been drafted first;
// containers and elements may be published on creation.
func Publish(kind domain.Kind, from State) (State, error) {
	if from.Normalize() == StateNew && kind == domain.KindPage {
		return from, &LifecycleError{Kind: kind, From: StateNew, Action: ActionPublish, Err: ErrPublishBeforeDraft}
	}
	return StatePublished, nil
}

// Unpublish reverts an entity to DRAFT without touching its content.
func Unpublish(kind domain.Kind, from State) (State, error) {
	if from.Normalize() == StateNew {
		return from, &LifecycleError{Kind: kind, From: StateNew, Action: ActionUnpublish, Err: ErrNotSaved}
	}
	return StateDraft, nil
}

// Apply runs the transition named by action.
func Apply(kind domain.Kind, from State, action Action) (State, error) {
	switch action {
	case ActionSaveDraft:
		return SaveDraft(kind, from)
	case ActionPublish:
		return Publish(kind, from)
	case ActionUnpublish:
		return Unpublish(kind, from)
	default:
		return from, &LifecycleError{Kind: kind, From: from.Normalize(), Action: action, Err: ErrTransitionInvalid}
	}
}
