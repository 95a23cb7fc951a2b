package containers

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/ordering"
)

var ErrElementReferenceRequired = errors.New("containers: element reference required")

// AddElement appends an element reference. A reference already present is
// rejected with ordering.ErrDuplicateReference and c is returned unchanged.
func AddElement(c Container, element domain.Ref) (Container, error) {
	if element.IsZero() {
		return c, ErrElementReferenceRequired
	}
	items, err := ordering.InsertFunc(c.Items, Item{Element: element.Trimmed()}, func(a, b Item) bool {
		return a.Element.Trimmed() == b.Element.Trimmed()
	})
	if err != nil {
		return c, err
	}
	out := c.Clone()
	out.Items = items
	return out, nil
}

// RemoveElement drops the reference at index. The element itself is not deleted.
func RemoveElement(c Container, index int) (Container, error) {
	items, err := ordering.Remove(c.Items, index)
	if err != nil {
		return c, err
	}
	out := c.Clone()
	out.Items = items
	return out, nil
}

// MoveElement relocates the reference at from to position to.
func MoveElement(c Container, from, to int) (Container, error) {
	items, err := ordering.Move(c.Items, from, to)
	if err != nil {
		return c, err
	}
	out := c.Clone()
	out.Items = items
	return out, nil
}
