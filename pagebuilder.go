package pagebuilder

import (
	"github.com/goliatone/go-command/dispatcher"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/languages"
	"github.com/goliatone/go-pagebuilder/internal/links"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Command messages accepted by the layout handlers.
type (
	CommandTarget          = layoutcmd.Target
	PublishLayoutCommand   = layoutcmd.PublishLayoutCommand
	UnpublishLayoutCommand = layoutcmd.UnpublishLayoutCommand
	DeleteLayoutCommand    = layoutcmd.DeleteLayoutCommand
	CommandHandlers        = layoutcmd.Handlers
)

// LinkResolver resolves page URLs through go-urlkit.
type LinkResolver = links.Resolver

// LanguageRepository stores the language table validation checks lanCodes against.
type LanguageRepository = languages.Repository

// NewMemoryLanguageRepository returns an in-process language repository.
func NewMemoryLanguageRepository(seed ...Language) LanguageRepository {
	return languages.NewMemoryRepository(seed...)
}

// Option customises module construction.
type Option = di.Option

// WithStore replaces the configured document store.
func WithStore(store Store) Option { return di.WithStore(store) }

// WithBunDB supplies the database for the bun storage provider.
func WithBunDB(db *bun.DB) Option { return di.WithBunDB(db) }

// WithCache overrides the repository cache used by the bun store.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithRouteManager supplies the route manager used for page links.
func WithRouteManager(manager *urlkit.RouteManager) Option { return di.WithRouteManager(manager) }

// WithCatalog replaces the language catalog used by validation.
func WithCatalog(catalog Catalog) Option { return di.WithCatalog(catalog) }

// WithLanguageRepository supplies the repository the language catalog follows.
func WithLanguageRepository(repo LanguageRepository) Option {
	return di.WithLanguageRepository(repo)
}

// Module is the page builder runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Elements() *ElementService {
	return m.container.ElementService()
}

func (m *Module) Containers() *ContainerService {
	return m.container.ContainerService()
}

func (m *Module) Pages() *PageService {
	return m.container.PageService()
}

// Commands returns the publish, unpublish and delete handlers.
func (m *Module) Commands() CommandHandlers {
	return m.container.CommandHandlers()
}

// Links returns the page URL resolver, or nil when no routes are configured.
func (m *Module) Links() *LinkResolver {
	return m.container.LinkResolver()
}

// Store returns the document store shared by every service.
func (m *Module) Store() Store {
	return m.container.Store()
}

// Catalog returns the language catalog used by validation.
func (m *Module) Catalog() Catalog {
	return m.container.Catalog()
}

// Languages returns the repository backing the language catalog. Changes made
// through it are picked up by validation.
func (m *Module) Languages() LanguageRepository {
	return m.container.Languages()
}

// SubscribeCommands registers the layout handlers with the go-command
// dispatcher. The returned function removes them again.
func (m *Module) SubscribeCommands() func() {
	handlers := m.Commands()
	subs := []interface{ Unsubscribe() }{
		dispatcher.SubscribeCommand(handlers.Publish),
		dispatcher.SubscribeCommand(handlers.Unpublish),
		dispatcher.SubscribeCommand(handlers.Delete),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}
