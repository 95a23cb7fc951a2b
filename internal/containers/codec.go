package containers

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// Codec maps containers to and from persistence records.
type Codec struct {
	Flags lifecycle.FlagCodec
}

var defaultCodec = Codec{Flags: lifecycle.LegacyFlags()}

type wireContainer struct {
	Container
	Draft   bool `json:"draft"`
	Publish bool `json:"publish"`
}

// Serialize renders the save payload. Element references are written as bare ids.
func (codec Codec) Serialize(c Container) ([]byte, error) {
	flags := codec.Flags.Encode(domain.KindContainer, c.State)
	return json.Marshal(wireContainer{
		Container: c.Clone(),
		Draft:     flags.Draft,
		Publish:   flags.Publish,
	})
}

// Denormalize decodes a persistence record, collapsing populated element and
// app references. Style values stay JSON-native.
func (codec Codec) Denormalize(data []byte) (Container, domain.Meta, error) {
	var wire wireContainer
	if err := json.Unmarshal(data, &wire); err != nil {
		return Container{}, domain.Meta{}, fmt.Errorf("containers: decode record: %w", err)
	}
	meta, err := domain.DecodeMeta(data)
	if err != nil {
		return Container{}, domain.Meta{}, fmt.Errorf("containers: decode meta: %w", err)
	}
	out := wire.Container.Clone()
	out.State = codec.Flags.Decode(domain.KindContainer, lifecycle.Flags{Draft: wire.Draft, Publish: wire.Publish})
	return out, meta, nil
}

func Serialize(c Container) ([]byte, error) { return defaultCodec.Serialize(c) }

func Denormalize(data []byte) (Container, domain.Meta, error) { return defaultCodec.Denormalize(data) }
