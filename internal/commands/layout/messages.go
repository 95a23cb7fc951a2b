package layoutcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

const (
	publishLayoutMessageType   = "pagebuilder.layout.publish"
	unpublishLayoutMessageType = "pagebuilder.layout.unpublish"
	deleteLayoutMessageType    = "pagebuilder.layout.delete"
)

// Target identifies one stored layout entity. Kind accepts singular and
// plural names ("page" or "pages").
type Target struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// ResolvedKind returns the parsed entity kind.
func (t Target) ResolvedKind() domain.Kind {
	kind, _ := domain.ParseKind(t.Kind)
	return kind
}

func (t Target) validate(prefix string) error {
	errs := validation.Errors{}
	if strings.TrimSpace(t.Kind) == "" {
		errs["kind"] = validation.NewError(prefix+".kind_required", "kind is required")
	} else if _, ok := domain.ParseKind(t.Kind); !ok {
		errs["kind"] = validation.NewError(prefix+".kind_invalid", "kind must be one of elements, containers, pages")
	}
	if strings.TrimSpace(t.ID) == "" {
		errs["id"] = validation.NewError(prefix+".id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (t Target) fields() map[string]any {
	fields := map[string]any{}
	if kind := t.ResolvedKind(); kind != "" {
		fields["kind"] = kind.String()
	}
	if id := strings.TrimSpace(t.ID); id != "" {
		fields["id"] = id
	}
	return fields
}

// PublishLayoutCommand publishes the stored version of an entity.
type PublishLayoutCommand struct {
	Target
}

func (PublishLayoutCommand) Type() string { return publishLayoutMessageType }

func (m PublishLayoutCommand) Validate() error { return m.validate(publishLayoutMessageType) }

// UnpublishLayoutCommand moves a stored entity back to draft.
type UnpublishLayoutCommand struct {
	Target
}

func (UnpublishLayoutCommand) Type() string { return unpublishLayoutMessageType }

func (m UnpublishLayoutCommand) Validate() error { return m.validate(unpublishLayoutMessageType) }

// DeleteLayoutCommand removes a stored entity.
type DeleteLayoutCommand struct {
	Target
}

func (DeleteLayoutCommand) Type() string { return deleteLayoutMessageType }

func (m DeleteLayoutCommand) Validate() error { return m.validate(deleteLayoutMessageType) }
