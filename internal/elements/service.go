package elements

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

// Service orchestrates element persistence and lifecycle.
type Service = layout.Service[Element]

// Record is a stored element with its server-managed keys.
type Record = layout.Record[Element]

// Adapter binds elements to the generic layout service.
var Adapter = layout.Adapter[Element]{
	Kind:      domain.KindElement,
	State:     func(e Element) lifecycle.State { return e.State.Normalize() },
	WithState: func(e Element, state lifecycle.State) Element { out := e.Clone(); out.State = state; return out },
	Validate:  Validate,
	Serialize: func(flags lifecycle.FlagCodec, e Element) ([]byte, error) {
		return Codec{Flags: flags}.Serialize(e)
	},
	Denormalize: func(flags lifecycle.FlagCodec, data []byte) (Element, domain.Meta, error) {
		return Codec{Flags: flags}.Denormalize(data)
	},
	References: References,
}

// NewService constructs an element service over store.
func NewService(store storage.Store, opts ...layout.ServiceOption) *Service {
	return layout.NewService(Adapter, store, opts...)
}

// References lists the pages the element links to. Catalogues live outside
// the layout store and are not listed.
func References(e Element) []layout.Reference {
	refs := make([]layout.Reference, 0, len(e.Items))
	for i, item := range e.Items {
		if item.ItemType != ItemPage {
			continue
		}
		refs = append(refs, layout.Reference{
			Key:  validation.Key("items", i, "itemId"),
			Kind: domain.KindPage,
			ID:   item.ItemID,
		})
	}
	return refs
}
