package lifecycle

import (
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

// State is the normalized draft/publish state shared by every layout entity.
type State string

const (
	// StateNew marks an entity that has never been saved.
	StateNew State = "new"
	// StateDraft marks an editable, unreleased entity.
	StateDraft State = "draft"
	// StatePublished marks an entity visible to consumers.
	StatePublished State = "published"
)

func (s State) String() string { return string(s) }

// Normalize coerces unknown or blank values to StateNew.
func (s State) Normalize() State {
	switch State(strings.ToLower(strings.TrimSpace(string(s)))) {
	case StateDraft:
		return StateDraft
	case StatePublished:
		return StatePublished
	default:
		return StateNew
	}
}

// Flags is the boolean pair persisted by the REST collaborator.
type Flags struct {
	Draft   bool
	Publish bool
}

// Convention maps the draft and published states onto flag pairs for one kind.
type Convention struct {
	Draft     Flags
	Published Flags
}

var (
	// PageConvention is the legacy page mapping: published pages clear the draft flag.
	PageConvention = Convention{
		Draft:     Flags{Draft: true},
		Published: Flags{Publish: true},
	}
	// ComposableConvention is used by containers and elements: published keeps the draft flag set.
	ComposableConvention = Convention{
		Draft:     Flags{Draft: true},
		Published: Flags{Draft: true, Publish: true},
	}
)

// FlagCodec converts states to flag pairs and back, per entity kind.
type FlagCodec struct {
	conventions map[domain.Kind]Convention
}

// LegacyFlags preserves the asymmetric page/container conventions.
func LegacyFlags() FlagCodec {
	return FlagCodec{conventions: map[domain.Kind]Convention{
		domain.KindPage:      PageConvention,
		domain.KindContainer: ComposableConvention,
		domain.KindElement:   ComposableConvention,
	}}
}

// UniformFlags applies the container/element convention to every kind.
func UniformFlags() FlagCodec {
	return FlagCodec{conventions: map[domain.Kind]Convention{
		domain.KindPage:      ComposableConvention,
		domain.KindContainer: ComposableConvention,
		domain.KindElement:   ComposableConvention,
	}}
}

// FlagCodecFor resolves a named convention ("legacy" or "uniform").
func FlagCodecFor(name string) FlagCodec {
	if strings.EqualFold(strings.TrimSpace(name), "uniform") {
		return UniformFlags()
	}
	return LegacyFlags()
}

// Convention returns the mapping used for kind.
func (c FlagCodec) Convention(kind domain.Kind) Convention {
	if conv, ok := c.conventions[kind]; ok {
		return conv
	}
	if kind == domain.KindPage {
		return PageConvention
	}
	return ComposableConvention
}

// Encode returns the flag pair persisted for state.
func (c FlagCodec) Encode(kind domain.Kind, state State) Flags {
	conv := c.Convention(kind)
	switch state.Normalize() {
	case StateDraft:
		return conv.Draft
	case StatePublished:
		return conv.Published
	default:
		return Flags{}
	}
}

// Decode maps a persisted flag pair back to a state. The publish flag wins so
// both conventions decode identically.
func (c FlagCodec) Decode(_ domain.Kind, flags Flags) State {
	switch {
	case flags.Publish:
		return StatePublished
	case flags.Draft:
		return StateDraft
	default:
		return StateNew
	}
}
