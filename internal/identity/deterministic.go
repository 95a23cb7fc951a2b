package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

const namespace = "go-pagebuilder"

// UUID derives a deterministic UUID from a stable key using hashid.
//
// Keys must carry their own prefix so ids of different kinds cannot collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LayoutUUID derives the id of a layout entity from its kind and reference name.
// Reference names are compared case-insensitively.
func LayoutUUID(kind domain.Kind, referenceName string) uuid.UUID {
	name := strings.ToLower(strings.TrimSpace(referenceName))
	if name == "" || !kind.Valid() {
		return uuid.Nil
	}
	return UUID(namespace + ":" + kind.String() + ":" + name)
}

func ElementUUID(referenceName string) uuid.UUID {
	return LayoutUUID(domain.KindElement, referenceName)
}

func ContainerUUID(referenceName string) uuid.UUID {
	return LayoutUUID(domain.KindContainer, referenceName)
}

func PageUUID(referenceName string) uuid.UUID {
	return LayoutUUID(domain.KindPage, referenceName)
}
