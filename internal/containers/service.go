package containers

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

type Service = layout.Service[Container]

type Record = layout.Record[Container]

// Adapter binds containers to the generic layout service. Drafts are checked
// with ValidateDraft, publishing with Validate.
var Adapter = layout.Adapter[Container]{
	Kind:          domain.KindContainer,
	State:         func(c Container) lifecycle.State { return c.State.Normalize() },
	WithState:     func(c Container, state lifecycle.State) Container { out := c.Clone(); out.State = state; return out },
	Validate:      Validate,
	ValidateDraft: ValidateDraft,
	Serialize: func(flags lifecycle.FlagCodec, c Container) ([]byte, error) {
		return Codec{Flags: flags}.Serialize(c)
	},
	Denormalize: func(flags lifecycle.FlagCodec, data []byte) (Container, domain.Meta, error) {
		return Codec{Flags: flags}.Denormalize(data)
	},
	References: References,
}

// NewService constructs a container service over store.
func NewService(store storage.Store, opts ...layout.ServiceOption) *Service {
	return layout.NewService(Adapter, store, opts...)
}

// References lists the elements placed in c.
func References(c Container) []layout.Reference {
	refs := make([]layout.Reference, 0, len(c.Items))
	for i, item := range c.Items {
		refs = append(refs, layout.Reference{
			Key:  validation.Key("items", i, "element"),
			Kind: domain.KindElement,
			ID:   item.Element,
		})
	}
	return refs
}
