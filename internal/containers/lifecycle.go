package containers

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// SaveDraft returns a copy of c in the DRAFT state.
func SaveDraft(c Container) (Container, error) {
	return transition(c, lifecycle.ActionSaveDraft)
}

// Publish returns a copy of c in the PUBLISHED state. Containers may be
// published without a prior draft.
func Publish(c Container) (Container, error) {
	return transition(c, lifecycle.ActionPublish)
}

// Unpublish returns a copy of c moved back to DRAFT.
func Unpublish(c Container) (Container, error) {
	return transition(c, lifecycle.ActionUnpublish)
}

func transition(c Container, action lifecycle.Action) (Container, error) {
	next, err := lifecycle.Apply(domain.KindContainer, c.State, action)
	if err != nil {
		return c, err
	}
	out := c.Clone()
	out.State = next
	return out, nil
}
