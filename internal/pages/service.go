package pages

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

type Service = layout.Service[Page]

type Record = layout.Record[Page]

var Adapter = layout.Adapter[Page]{
	Kind:      domain.KindPage,
	State:     func(p Page) lifecycle.State { return p.State.Normalize() },
	WithState: func(p Page, state lifecycle.State) Page { out := p.Clone(); out.State = state; return out },
	Validate:  Validate,
	Serialize: func(flags lifecycle.FlagCodec, p Page) ([]byte, error) {
		return Codec{Flags: flags}.Serialize(p)
	},
	Denormalize: func(flags lifecycle.FlagCodec, data []byte) (Page, domain.Meta, error) {
		return Codec{Flags: flags}.Denormalize(data)
	},
	References: References,
}

// NewService constructs a page service over store.
func NewService(store storage.Store, opts ...layout.ServiceOption) *Service {
	return layout.NewService(Adapter, store, opts...)
}

// References lists the containers placed on p.
func References(p Page) []layout.Reference {
	refs := make([]layout.Reference, 0, len(p.Items))
	for i, ref := range p.Items {
		refs = append(refs, layout.Reference{Key: validation.Key("items", i), Kind: domain.KindContainer, ID: ref})
	}
	return refs
}
