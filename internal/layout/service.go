package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const lifecycleRejectedCode = "LAYOUT_LIFECYCLE_REJECTED"

var (
	ErrStoreRequired   = errors.New("layout: store required")
	ErrAdapterInvalid  = errors.New("layout: adapter is missing required functions")
	ErrEntityIDMissing = errors.New("layout: entity id required")
)

// Reference is an outgoing link from an entity to another stored entity.
// Key is the ErrorMap key reported when the target is missing.
type Reference struct {
	Key  string
	Kind domain.Kind
	ID   domain.Ref
}

// Adapter binds one entity type to the generic service.
type Adapter[T any] struct {
	Kind          domain.Kind
	State         func(T) lifecycle.State
	WithState     func(T, lifecycle.State) T
	Validate      func(T, ...validation.Option) validation.ErrorMap
	ValidateDraft func(T, ...validation.Option) validation.ErrorMap
	Serialize     func(lifecycle.FlagCodec, T) ([]byte, error)
	Denormalize   func(lifecycle.FlagCodec, []byte) (T, domain.Meta, error)
	References    func(T) []Reference
}

func (a Adapter[T]) complete() bool {
	return a.Kind.Valid() && a.State != nil && a.WithState != nil && a.Validate != nil &&
		a.Serialize != nil && a.Denormalize != nil
}

// Record is a stored entity in canonical shape plus its server-managed keys.
type Record[T any] struct {
	Meta   domain.Meta
	Entity T
}

// ListResult is one page of records.
type ListResult[T any] struct {
	Items      []Record[T]
	Pagination storage.Pagination
}

// ServiceOption configures service behaviour.
type ServiceOption func(*config)

type config struct {
	flags      lifecycle.FlagCodec
	validation []validation.Option
	checkRefs  bool
	logger     interfaces.Logger
}

// WithFlagCodec selects the draft/publish flag convention written to the store.
func WithFlagCodec(codec lifecycle.FlagCodec) ServiceOption {
	return func(c *config) {
		c.flags = codec
	}
}

// WithValidationOptions forwards options (such as the language catalog) to every validation run.
func WithValidationOptions(opts ...validation.Option) ServiceOption {
	return func(c *config) {
		c.validation = append(c.validation, opts...)
	}
}

// WithReferenceChecks makes validation confirm that referenced entities exist.
func WithReferenceChecks(enabled bool) ServiceOption {
	return func(c *config) {
		c.checkRefs = enabled
	}
}

// WithLogger injects the logger used for lifecycle events. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(c *config) {
		if logger == nil {
			c.logger = logging.NoOp()
			return
		}
		c.logger = logger
	}
}

// Service orchestrates validation, lifecycle transitions and persistence for
// one entity kind. Validation always runs before a transition is applied.
type Service[T any] struct {
	adapter Adapter[T]
	store   storage.Store
	cfg     config
}

// NewService constructs a service for the adapter's entity kind.
func NewService[T any](adapter Adapter[T], store storage.Store, opts ...ServiceOption) *Service[T] {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if !adapter.complete() {
		panic(ErrAdapterInvalid)
	}
	cfg := config{
		flags:  lifecycle.LegacyFlags(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Service[T]{adapter: adapter, store: store, cfg: cfg}
}

// Kind returns the entity kind served.
func (s *Service[T]) Kind() domain.Kind { return s.adapter.Kind }

// Get loads one record by id.
func (s *Service[T]) Get(ctx context.Context, id string) (Record[T], error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record[T]{}, &storage.NotFoundError{Kind: s.adapter.Kind}
	}
	doc, err := s.store.Get(ctx, s.adapter.Kind, id)
	if err != nil {
		return Record[T]{}, err
	}
	return s.decode(doc)
}

// List returns one page of records in storage order.
func (s *Service[T]) List(ctx context.Context, req storage.PageRequest) (ListResult[T], error) {
	result, err := s.store.List(ctx, s.adapter.Kind, req)
	if err != nil {
		return ListResult[T]{}, err
	}
	items := make([]Record[T], 0, len(result.Items))
	for _, doc := range result.Items {
		record, err := s.decode(doc)
		if err != nil {
			return ListResult[T]{}, err
		}
		items = append(items, record)
	}
	return ListResult[T]{Items: items, Pagination: result.Pagination}, nil
}

// Validate runs the publish-stage validation plus, when enabled, reference checks.
func (s *Service[T]) Validate(ctx context.Context, entity T) (validation.ErrorMap, error) {
	return s.validate(ctx, entity, false)
}

// SaveDraft validates entity with draft rules and stores it in the DRAFT state.
// A blank id creates a new record; otherwise the record is created or replaced.
func (s *Service[T]) SaveDraft(ctx context.Context, id string, entity T) (Record[T], error) {
	return s.apply(ctx, id, entity, lifecycle.ActionSaveDraft, nil)
}

// Publish validates entity and stores it PUBLISHED. The transition starts from
// the stored state, so a page that was never saved is rejected.
func (s *Service[T]) Publish(ctx context.Context, id string, entity T) (Record[T], error) {
	from, err := s.storedState(ctx, id)
	if err != nil {
		return Record[T]{}, err
	}
	return s.apply(ctx, id, entity, lifecycle.ActionPublish, &from)
}

// PublishByID publishes the stored record as is.
func (s *Service[T]) PublishByID(ctx context.Context, id string) (Record[T], error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Record[T]{}, err
	}
	from := s.adapter.State(current.Entity)
	return s.apply(ctx, current.Meta.ID, current.Entity, lifecycle.ActionPublish, &from)
}

// Unpublish moves the stored record back to DRAFT without touching its content.
func (s *Service[T]) Unpublish(ctx context.Context, id string) (Record[T], error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Record[T]{}, err
	}
	from := s.adapter.State(current.Entity)
	return s.apply(ctx, current.Meta.ID, current.Entity, lifecycle.ActionUnpublish, &from)
}

// Delete removes the stored record. References held by other entities are left alone.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	logger := logging.WithEntityContext(s.cfg.logger.WithContext(ctx), s.adapter.Kind, id, "delete")
	if id == "" {
		return ErrEntityIDMissing
	}
	if err := s.store.Delete(ctx, s.adapter.Kind, id); err != nil {
		logger.Warn(s.event("delete", "failed"), "error", err)
		return err
	}
	logger.Info(s.event("delete", "success"))
	return nil
}

func (s *Service[T]) apply(ctx context.Context, id string, entity T, action lifecycle.Action, from *lifecycle.State) (Record[T], error) {
	id = strings.TrimSpace(id)
	logger := logging.WithEntityContext(s.cfg.logger.WithContext(ctx), s.adapter.Kind, id, string(action))

	current := s.adapter.State(entity)
	if from != nil {
		current = *from
	}
	if id == "" {
		current = lifecycle.StateNew
	}

	errs, err := s.validate(ctx, entity, action != lifecycle.ActionPublish)
	if err != nil {
		return Record[T]{}, err
	}
	if !errs.Valid() {
		logger.Info(s.event(string(action), "invalid"), "fields", errs.Keys())
		return Record[T]{}, validation.Wrap(errs.Err(), fmt.Sprintf("%s validation failed", s.adapter.Kind))
	}

	next, err := lifecycle.Apply(s.adapter.Kind, current, action)
	if err != nil {
		logger.Warn(s.event(string(action), "rejected"), "state", current, "error", err)
		return Record[T]{}, wrapLifecycleError(err)
	}

	payload, err := s.adapter.Serialize(s.cfg.flags, s.adapter.WithState(entity, next))
	if err != nil {
		return Record[T]{}, err
	}

	var doc *storage.Document
	if id == "" {
		doc, err = s.store.Create(ctx, s.adapter.Kind, payload)
	} else {
		doc, err = s.store.Put(ctx, s.adapter.Kind, id, payload)
	}
	if err != nil {
		logger.Error(s.event(string(action), "failed"), "error", err)
		return Record[T]{}, err
	}

	record, err := s.decode(doc)
	if err != nil {
		return Record[T]{}, err
	}
	logging.WithEntityContext(logger, s.adapter.Kind, record.Meta.ID, "").
		Info(s.event(string(action), "success"), "state", next, "version", record.Meta.Version)
	return record, nil
}

func (s *Service[T]) validate(ctx context.Context, entity T, draft bool) (validation.ErrorMap, error) {
	check := s.adapter.Validate
	if draft && s.adapter.ValidateDraft != nil {
		check = s.adapter.ValidateDraft
	}
	errs := check(entity, s.cfg.validation...)
	if errs == nil {
		errs = validation.ErrorMap{}
	}
	if !s.cfg.checkRefs || s.adapter.References == nil {
		return errs, nil
	}
	for _, ref := range s.adapter.References(entity) {
		if ref.ID.IsZero() {
			continue
		}
		if _, err := s.store.Get(ctx, ref.Kind, ref.ID.Trimmed().String()); err != nil {
			if !storage.IsNotFound(err) {
				return nil, err
			}
			errs.Add(ref.Key, fmt.Sprintf("referenced %s %q was not found", singular(ref.Kind), ref.ID))
		}
	}
	return errs, nil
}

func (s *Service[T]) storedState(ctx context.Context, id string) (lifecycle.State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return lifecycle.StateNew, nil
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return lifecycle.StateNew, nil
		}
		return lifecycle.StateNew, err
	}
	return s.adapter.State(current.Entity), nil
}

func (s *Service[T]) decode(doc *storage.Document) (Record[T], error) {
	raw, err := doc.Record()
	if err != nil {
		return Record[T]{}, err
	}
	entity, meta, err := s.adapter.Denormalize(s.cfg.flags, raw)
	if err != nil {
		return Record[T]{}, err
	}
	return Record[T]{Meta: meta, Entity: entity}, nil
}

func (s *Service[T]) event(action, outcome string) string {
	return s.adapter.Kind.String() + "." + action + "." + outcome
}

func wrapLifecycleError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "lifecycle transition rejected").
		WithTextCode(lifecycleRejectedCode)
}

func singular(kind domain.Kind) string {
	return strings.TrimSuffix(kind.String(), "s")
}
