package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

// Option configures store construction.
type Option func(*options)

type options struct {
	now func() time.Time
	id  func() uuid.UUID
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides the id source used by Create.
func WithIDGenerator(id func() uuid.UUID) Option {
	return func(o *options) {
		if id != nil {
			o.id = id
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{now: time.Now, id: uuid.New}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*Document
	opts options
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		docs: make(map[uuid.UUID]*Document),
		opts: resolveOptions(opts),
	}
}

func (m *MemoryStore) Create(_ context.Context, kind domain.Kind, payload []byte) (*Document, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	body, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now().UTC()
	doc := &Document{
		ID:        m.opts.id(),
		Kind:      kind,
		Payload:   body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.docs[doc.ID] = doc
	return cloneDocument(doc), nil
}

func (m *MemoryStore) Put(_ context.Context, kind domain.Kind, id string, payload []byte) (*Document, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	key, err := parseID(kind, id)
	if err != nil {
		return nil, err
	}
	body, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now().UTC()
	existing, ok := m.docs[key]
	if ok && existing.Kind != kind {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	if !ok {
		doc := &Document{ID: key, Kind: kind, Payload: body, CreatedAt: now, UpdatedAt: now}
		m.docs[key] = doc
		return cloneDocument(doc), nil
	}
	existing.Payload = body
	existing.Version++
	existing.UpdatedAt = now
	return cloneDocument(existing), nil
}

func (m *MemoryStore) Get(_ context.Context, kind domain.Kind, id string) (*Document, error) {
	key, err := parseID(kind, id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	if !ok || doc.Kind != kind {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	return cloneDocument(doc), nil
}

func (m *MemoryStore) List(_ context.Context, kind domain.Kind, req PageRequest) (ListResult, error) {
	if err := checkKind(kind); err != nil {
		return ListResult{}, err
	}
	req = req.Normalize()

	m.mu.RLock()
	matches := make([]*Document, 0, len(m.docs))
	for _, doc := range m.docs {
		if doc.Kind == kind {
			matches = append(matches, doc)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})

	items := make([]*Document, 0, req.Limit)
	for i := req.Offset(); i < len(matches) && len(items) < req.Limit; i++ {
		items = append(items, cloneDocument(matches[i]))
	}
	m.mu.RUnlock()

	return ListResult{
		Items:      items,
		Pagination: Pagination{TotalCount: len(matches), Page: req.Page, Limit: req.Limit},
	}, nil
}

func (m *MemoryStore) Delete(_ context.Context, kind domain.Kind, id string) error {
	key, err := parseID(kind, id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[key]
	if !ok || doc.Kind != kind {
		return &NotFoundError{Kind: kind, ID: id}
	}
	delete(m.docs, key)
	return nil
}
