package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

// NewDocumentRepository creates a go-repository-bun repository for layout documents.
func NewDocumentRepository(db *bun.DB) repository.Repository[*Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Document]{
		NewRecord:          func() *Document { return &Document{} },
		GetID:              func(doc *Document) uuid.UUID { return doc.ID },
		SetID:              func(doc *Document, id uuid.UUID) { doc.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(doc *Document) string { return doc.ID.String() },
	})
}

// BunStore persists documents in the layout_documents table.
type BunStore struct {
	db   *bun.DB
	repo repository.Repository[*Document]
	opts options
}

// NewBunStore constructs a store without a read cache.
func NewBunStore(db *bun.DB, opts ...Option) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache constructs a store whose repository reads go through
// go-repository-cache when both cache arguments are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...Option) *BunStore {
	base := NewDocumentRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunStore{db: db, repo: base, opts: resolveOptions(opts)}
}

// Migrate creates the documents table and its kind index when missing.
func (s *BunStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("bun store: database not configured")
	}
	if _, err := s.db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create layout_documents: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*Document)(nil)).
		Index("layout_documents_kind_idx").
		Column("kind", "created_at").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create layout_documents index: %w", err)
	}
	return nil
}

func (s *BunStore) Create(ctx context.Context, kind domain.Kind, payload []byte) (*Document, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	body, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	now := s.opts.now().UTC()
	created, err := s.repo.Create(ctx, &Document{
		ID:        s.opts.id(),
		Kind:      kind,
		Payload:   body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", kind, err)
	}
	return created, nil
}

func (s *BunStore) Put(ctx context.Context, kind domain.Kind, id string, payload []byte) (*Document, error) {
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

	now := s.opts.now().UTC()
	existing, err := s.repo.GetByID(ctx, key.String())
	if err != nil {
		if mapped := mapRepositoryError(err, kind, id); !IsNotFound(mapped) {
			return nil, mapped
		}
		created, err := s.repo.Create(ctx, &Document{
			ID:        key,
			Kind:      kind,
			Payload:   body,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("%s repository error: %w", kind, err)
		}
		return created, nil
	}
	if existing.Kind != kind {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}

	existing.Payload = body
	existing.Version++
	existing.UpdatedAt = now
	updated, err := s.repo.Update(ctx, existing,
		repository.UpdateByID(key.String()),
		repository.UpdateColumns("payload", "version", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, kind, id)
	}
	return updated, nil
}

func (s *BunStore) Get(ctx context.Context, kind domain.Kind, id string) (*Document, error) {
	key, err := parseID(kind, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.GetByID(ctx, key.String())
	if err != nil {
		return nil, mapRepositoryError(err, kind, id)
	}
	if doc.Kind != kind {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	return doc, nil
}

func (s *BunStore) List(ctx context.Context, kind domain.Kind, req PageRequest) (ListResult, error) {
	if err := checkKind(kind); err != nil {
		return ListResult{}, err
	}
	req = req.Normalize()
	records, total, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.kind = ?", kind)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC").OrderExpr("?TableAlias.id ASC")
		}),
		repository.SelectPaginate(req.Limit, req.Offset()),
	)
	if err != nil {
		return ListResult{}, fmt.Errorf("%s repository error: %w", kind, err)
	}
	if records == nil {
		records = []*Document{}
	}
	return ListResult{
		Items:      records,
		Pagination: Pagination{TotalCount: total, Page: req.Page, Limit: req.Limit},
	}, nil
}

func (s *BunStore) Delete(ctx context.Context, kind domain.Kind, id string) error {
	doc, err := s.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, doc); err != nil {
		return mapRepositoryError(err, kind, id)
	}
	return nil
}

// OpenDB opens a bun database for the given dialect ("sqlite" or "postgres").
func OpenDB(dialect, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", "sqlite", "sqlite3":
		if strings.TrimSpace(dsn) == "" {
			dsn = "file::memory:?cache=shared"
		}
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "pg":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported dialect %q", dialect)
	}
}

func mapRepositoryError(err error, kind domain.Kind, id string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return fmt.Errorf("%s repository error: %w", kind, err)
}
