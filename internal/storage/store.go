package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 200
)

var (
	ErrNotFound       = errors.New("storage: document not found")
	ErrKindInvalid    = errors.New("storage: unknown document kind")
	ErrPayloadInvalid = errors.New("storage: payload must be a JSON object")
)

// Store persists layout documents. Its shape follows the REST collaborator:
// create, create-or-replace by id, read, paged list and delete.
type Store interface {
	Create(ctx context.Context, kind domain.Kind, payload []byte) (*Document, error)
	Put(ctx context.Context, kind domain.Kind, id string, payload []byte) (*Document, error)
	Get(ctx context.Context, kind domain.Kind, id string) (*Document, error)
	List(ctx context.Context, kind domain.Kind, req PageRequest) (ListResult, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
}

// Document is one persisted layout entity. Payload holds the serialized entity
// without server-managed keys.
type Document struct {
	bun.BaseModel `bun:"table:layout_documents,alias:ld"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"_id"`
	Kind      domain.Kind    `bun:"kind,notnull" json:"kind"`
	Payload   map[string]any `bun:"payload,type:jsonb,notnull" json:"payload"`
	Version   int            `bun:"version,notnull" json:"__v"`
	CreatedAt time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Record renders the document the way the REST collaborator returns it: the
// payload with `_id`, `created_at`, `updated_at` and `__v` merged in.
func (d *Document) Record() ([]byte, error) {
	if d == nil {
		return nil, ErrNotFound
	}
	record := domain.CloneMap(d.Payload)
	record["_id"] = d.ID.String()
	record["created_at"] = d.CreatedAt.UTC()
	record["updated_at"] = d.UpdatedAt.UTC()
	record["__v"] = d.Version
	return json.Marshal(record)
}

func cloneDocument(d *Document) *Document {
	if d == nil {
		return nil
	}
	cloned := *d
	cloned.Payload = domain.CloneMap(d.Payload)
	return &cloned
}

// PageRequest selects one page of a list. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and clamps the limit.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return r
}

// Offset returns the number of documents skipped before this page.
func (r PageRequest) Offset() int {
	n := r.Normalize()
	return (n.Page - 1) * n.Limit
}

// Pagination mirrors the collaborator's `pagination` envelope.
type Pagination struct {
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// ListResult is one page of documents.
type ListResult struct {
	Items      []*Document `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// NotFoundError reports a missing document.
type NotFoundError struct {
	Kind domain.Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound reports whether err signals a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func decodePayload(payload []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if out == nil {
		return nil, ErrPayloadInvalid
	}
	for _, key := range []string{"_id", "id", "created_at", "updated_at", "__v"} {
		delete(out, key)
	}
	return out, nil
}

func parseID(kind domain.Kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, &NotFoundError{Kind: kind, ID: id}
	}
	return parsed, nil
}

func checkKind(kind domain.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrKindInvalid, kind)
	}
	return nil
}
