package pages

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// Codec maps pages to and from persistence records. With the legacy flags a
// published page is written as draft=false, publish=true.
type Codec struct {
	Flags lifecycle.FlagCodec
}

var defaultCodec = Codec{Flags: lifecycle.LegacyFlags()}

type wirePage struct {
	Page
	Draft   bool `json:"draft"`
	Publish bool `json:"publish"`
}

func (codec Codec) Serialize(p Page) ([]byte, error) {
	flags := codec.Flags.Encode(domain.KindPage, p.State)
	return json.Marshal(wirePage{
		Page:    p.Clone(),
		Draft:   flags.Draft,
		Publish: flags.Publish,
	})
}

func (codec Codec) Denormalize(data []byte) (Page, domain.Meta, error) {
	var wire wirePage
	if err := json.Unmarshal(data, &wire); err != nil {
		return Page{}, domain.Meta{}, fmt.Errorf("pages: decode record: %w", err)
	}
	meta, err := domain.DecodeMeta(data)
	if err != nil {
		return Page{}, domain.Meta{}, fmt.Errorf("pages: decode meta: %w", err)
	}
	out := wire.Page.Clone()
	out.State = codec.Flags.Decode(domain.KindPage, lifecycle.Flags{Draft: wire.Draft, Publish: wire.Publish})
	return out, meta, nil
}

// Serialize renders p for a save request using the legacy flag convention.
func Serialize(p Page) ([]byte, error) { return defaultCodec.Serialize(p) }

// Denormalize decodes a page record using the legacy flag convention.
func Denormalize(data []byte) (Page, domain.Meta, error) { return defaultCodec.Denormalize(data) }
