package domain

import (
	"encoding/json"
	"time"
)

// Meta carries the server-managed keys of a persisted record. They are stripped
// from the canonical entity shape and travel alongside it instead.
type Meta struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// IsNew reports whether the record has never been persisted.
func (m Meta) IsNew() bool { return m.ID == "" }

type metaEnvelope struct {
	MongoID   Ref        `json:"_id"`
	ID        Ref        `json:"id"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Version   *int       `json:"__v"`
}

// DecodeMeta extracts the server-managed keys (`_id|id`, `created_at`,
// `updated_at`, `__v`) from a persistence record.
func DecodeMeta(data []byte) (Meta, error) {
	var env metaEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Meta{}, err
	}
	meta := Meta{ID: env.MongoID.String()}
	if meta.ID == "" {
		meta.ID = env.ID.String()
	}
	if env.CreatedAt != nil {
		meta.CreatedAt = env.CreatedAt.UTC()
	}
	if env.UpdatedAt != nil {
		meta.UpdatedAt = env.UpdatedAt.UTC()
	}
	if env.Version != nil {
		meta.Version = *env.Version
	}
	return meta, nil
}
