package elements

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// Codec maps elements to and from persistence records.
type Codec struct {
	Flags lifecycle.FlagCodec
}

var defaultCodec = Codec{Flags: lifecycle.LegacyFlags()}

type wireElement struct {
	Element
	Draft   bool `json:"draft"`
	Publish bool `json:"publish"`
}

// Serialize renders e for a create or update request: bare-id references plus
// the draft/publish pair for its state.
func (c Codec) Serialize(e Element) ([]byte, error) {
	flags := c.Flags.Encode(domain.KindElement, e.State)
	return json.Marshal(wireElement{
		Element: e.Clone(),
		Draft:   flags.Draft,
		Publish: flags.Publish,
	})
}

// Denormalize turns a persistence record into the canonical shape. Populated
// references collapse to bare ids and server-managed keys go to the returned
// Meta.
func (c Codec) Denormalize(data []byte) (Element, domain.Meta, error) {
	var wire wireElement
	if err := json.Unmarshal(data, &wire); err != nil {
		return Element{}, domain.Meta{}, fmt.Errorf("elements: decode record: %w", err)
	}
	meta, err := domain.DecodeMeta(data)
	if err != nil {
		return Element{}, domain.Meta{}, fmt.Errorf("elements: decode meta: %w", err)
	}
	element := wire.Element.Clone()
	element.State = c.Flags.Decode(domain.KindElement, lifecycle.Flags{Draft: wire.Draft, Publish: wire.Publish})
	return element, meta, nil
}

// Serialize uses the legacy flag convention.
func Serialize(e Element) ([]byte, error) { return defaultCodec.Serialize(e) }

// Denormalize uses the legacy flag convention.
func Denormalize(data []byte) (Element, domain.Meta, error) { return defaultCodec.Denormalize(data) }
