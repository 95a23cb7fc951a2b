package elements

import (
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/ordering"
)

var (
	ErrCatalogueAlreadyReferenced = errors.New("elements: element already references a catalogue")
	ErrItemReferenceRequired      = errors.New("elements: item reference required")
)

// AddItem appends item to the element's item list. Repeated items and a
// second catalogue are rejected and e is returned unchanged.
func AddItem(e Element, item Item) (Element, error) {
	if item.ItemID.IsZero() {
		return e, ErrItemReferenceRequired
	}
	item.ItemID = item.ItemID.Trimmed()
	if item.ItemType == ItemCatalogue {
		for _, existing := range e.Items {
			if existing.ItemType == ItemCatalogue {
				return e, ErrCatalogueAlreadyReferenced
			}
		}
	}
	items, err := ordering.InsertFunc(e.Items, item, sameItem)
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.Items = items
	return out, nil
}

// RemoveItem drops the item at index. The referenced catalogue or page is untouched.
func RemoveItem(e Element, index int) (Element, error) {
	items, err := ordering.Remove(e.Items, index)
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.Items = items
	return out, nil
}

// MoveItem relocates the item at from to position to.
func MoveItem(e Element, from, to int) (Element, error) {
	items, err := ordering.Move(e.Items, from, to)
	if err != nil {
		return e, err
	}
	out := e.Clone()
	out.Items = items
	return out, nil
}

func sameItem(a, b Item) bool {
	return a.ItemType == b.ItemType && a.ItemID.Trimmed() == b.ItemID.Trimmed()
}
