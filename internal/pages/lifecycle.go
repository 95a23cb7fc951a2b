package pages

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// SaveDraft returns a copy of p in the DRAFT state.
func SaveDraft(p Page) (Page, error) {
	return transition(p, lifecycle.ActionSaveDraft)
}

// Publish returns a copy of p in the PUBLISHED state. A page that was never
// saved as a draft is rejected with a *lifecycle.LifecycleError.
func Publish(p Page) (Page, error) {
	return transition(p, lifecycle.ActionPublish)
}

// Unpublish returns a copy of p moved back to DRAFT.
func Unpublish(p Page) (Page, error) {
	return transition(p, lifecycle.ActionUnpublish)
}

func transition(p Page, action lifecycle.Action) (Page, error) {
	next, err := lifecycle.Apply(domain.KindPage, p.State, action)
	if err != nil {
		return p, err
	}
	out := p.Clone()
	out.State = next
	return out, nil
}
