package pages

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/ordering"
)

var ErrContainerReferenceRequired = errors.New("pages: container reference required")

// AddContainer appends a container reference. Selecting a container that is
// already on the page fails with ordering.ErrDuplicateReference.
func AddContainer(p Page, container domain.Ref) (Page, error) {
	if container.IsZero() {
		return p, ErrContainerReferenceRequired
	}
	items, err := ordering.Insert(trimmed(p.Items), container.Trimmed())
	if err != nil {
		return p, err
	}
	out := p.Clone()
	out.Items = items
	return out, nil
}

// RemoveContainer drops the reference at index; the container itself is kept.
func RemoveContainer(p Page, index int) (Page, error) {
	items, err := ordering.Remove(p.Items, index)
	if err != nil {
		return p, err
	}
	out := p.Clone()
	out.Items = items
	return out, nil
}

func MoveContainer(p Page, from, to int) (Page, error) {
	items, err := ordering.Move(p.Items, from, to)
	if err != nil {
		return p, err
	}
	out := p.Clone()
	out.Items = items
	return out, nil
}

func trimmed(refs []domain.Ref) []domain.Ref {
	out := make([]domain.Ref, len(refs))
	for i, ref := range refs {
		out[i] = ref.Trimmed()
	}
	return out
}
