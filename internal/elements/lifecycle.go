package elements

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// SaveDraft returns a copy of e in the DRAFT state.
func SaveDraft(e Element) (Element, error) {
	return transition(e, lifecycle.ActionSaveDraft)
}

// Publish returns a copy of e in the PUBLISHED state. Elements may be
// published without a prior draft.
func Publish(e Element) (Element, error) {
	return transition(e, lifecycle.ActionPublish)
}

// Unpublish returns a copy of e moved back to DRAFT.
func Unpublish(e Element) (Element, error) {
	return transition(e, lifecycle.ActionUnpublish)
}

func transition(e Element, action lifecycle.Action) (Element, error) {
	next, err := lifecycle.Apply(domain.KindElement, e.State, action)
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.State = next
	return out, nil
}
