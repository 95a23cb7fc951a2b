package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/containers"
	"github.com/goliatone/go-pagebuilder/internal/elements"
	"github.com/goliatone/go-pagebuilder/internal/i18n"
	"github.com/goliatone/go-pagebuilder/internal/languages"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/links"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Container wires the page builder dependencies from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	store         storage.Store
	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	catalog      i18n.Catalog
	catalogSet   bool
	languageRepo languages.Repository
	liveCatalog  *languages.LiveCatalog
	stopWatch    context.CancelFunc

	routeManager *urlkit.RouteManager
	resolver     *links.Resolver

	elementSvc   *elements.Service
	containerSvc *containers.Service
	pageSvc      *pages.Service

	registry *layoutcmd.Registry
	handlers layoutcmd.Handlers
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithStore overrides the document store. Storage config is then ignored.
func WithStore(store storage.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithBunDB supplies the database used by the bun store.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache used by the bun store.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLanguageRepository supplies the repository the live language catalog follows.
func WithLanguageRepository(repo languages.Repository) Option {
	return func(c *Container) {
		c.languageRepo = repo
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRouteManager supplies a ready route manager for page links.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithCatalog overrides the language catalog used by validation.
func WithCatalog(catalog i18n.Catalog) Option {
	return func(c *Container) {
		c.catalog = catalog
		c.catalogSet = true
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCatalog()
	if err := c.configureStorage(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.configureLanguages(); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.configureServices()
	c.configureCommands()
	c.configureNavigation()

	logging.ModuleLogger(c.loggerProvider, "pagebuilder").Debug("container.ready",
		"storage", strings.ToLower(strings.TrimSpace(cfg.Storage.Provider)),
		"languages", c.Catalog().Len(),
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	format := cfg.Format
	if !strings.EqualFold(strings.TrimSpace(cfg.Provider), "gologger") {
		format = "console"
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCatalog() {
	if c.catalogSet {
		return
	}
	entries := c.Config.Languages.Entries
	if len(entries) == 0 {
		c.catalog = i18n.DefaultCatalog()
		return
	}
	languages := make([]i18n.Language, 0, len(entries))
	for _, entry := range entries {
		languages = append(languages, i18n.Language{Code: entry.Code, Name: entry.Name})
	}
	c.catalog = i18n.NewCatalog(languages...)
}

func (c *Container) configureStorage() error {
	if c.store != nil {
		return nil
	}
	cfg := c.Config.Storage
	if !strings.EqualFold(strings.TrimSpace(cfg.Provider), "bun") {
		c.store = storage.NewMemoryStore()
		return nil
	}

	if c.bunDB == nil {
		dialect := strings.ToLower(strings.TrimSpace(cfg.Dialect))
		if (dialect == "postgres" || dialect == "pg") && strings.TrimSpace(cfg.DSN) == "" {
			return runtimeconfig.ErrStorageDSNRequired
		}
		db, err := storage.OpenDB(dialect, cfg.DSN)
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.DSN) == "" {
			db.SetMaxOpenConns(1)
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if err := c.configureCacheDefaults(); err != nil {
		c.releaseDB()
		return err
	}
	var store *storage.BunStore
	if c.cacheService != nil && c.keySerializer != nil {
		store = storage.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		store = storage.NewBunStore(c.bunDB)
	}
	if cfg.AutoMigrate {
		logger := logging.StorageLogger(c.loggerProvider)
		if err := store.Migrate(context.Background()); err != nil {
			logger.Error("storage.migrate.failed", "error", err)
			c.releaseDB()
			return fmt.Errorf("pagebuilder: migrate layout documents: %w", err)
		}
		logger.Info("storage.migrate.success", "dialect", cfg.Dialect)
	}
	c.store = store
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("pagebuilder: configure repository cache: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

// releaseDB closes a database the container opened itself. Injected
// databases are left to their owner.
func (c *Container) releaseDB() {
	if c.ownsDB && c.bunDB != nil {
		_ = c.bunDB.Close()
	}
	c.ownsDB = false
}

func (c *Container) configureLanguages() error {
	ctx := context.Background()
	c.liveCatalog = languages.NewLiveCatalog(c.catalog)

	if c.languageRepo == nil {
		if !c.Config.Languages.Persist {
			c.languageRepo = languages.NewMemoryRepository()
		} else {
			if c.bunDB == nil {
				return runtimeconfig.ErrLanguagesPersistRequiresBun
			}
			repo := languages.NewBunRepository(c.bunDB)
			if c.Config.Storage.AutoMigrate {
				if err := repo.Migrate(ctx); err != nil {
					return fmt.Errorf("pagebuilder: migrate languages: %w", err)
				}
			}
			if err := languages.Seed(ctx, repo, c.catalog.Languages()); err != nil {
				return fmt.Errorf("pagebuilder: seed languages: %w", err)
			}
			c.languageRepo = repo
		}
	}

	if err := c.liveCatalog.Reload(ctx, c.languageRepo); err != nil {
		return fmt.Errorf("pagebuilder: load languages: %w", err)
	}
	watchCtx, cancel := context.WithCancel(context.Background())
	if err := c.liveCatalog.Watch(watchCtx, c.languageRepo, logging.LanguagesLogger(c.loggerProvider)); err != nil {
		cancel()
		return err
	}
	c.stopWatch = cancel
	return nil
}

func (c *Container) serviceOptions(logger interfaces.Logger) []layout.ServiceOption {
	return []layout.ServiceOption{
		layout.WithFlagCodec(lifecycle.FlagCodecFor(c.Config.Lifecycle.FlagConvention)),
		layout.WithValidationOptions(validation.WithCatalogSource(c.liveCatalog)),
		layout.WithReferenceChecks(c.Config.Validation.CheckReferences),
		layout.WithLogger(logger),
	}
}

func (c *Container) configureServices() {
	c.elementSvc = elements.NewService(c.store, c.serviceOptions(logging.ElementsLogger(c.loggerProvider))...)
	c.containerSvc = containers.NewService(c.store, c.serviceOptions(logging.ContainersLogger(c.loggerProvider))...)
	c.pageSvc = pages.NewService(c.store, c.serviceOptions(logging.PagesLogger(c.loggerProvider))...)
}

func (c *Container) configureCommands() {
	c.registry = layoutcmd.NewRegistry(
		layoutcmd.Bind(c.elementSvc),
		layoutcmd.Bind(c.containerSvc),
		layoutcmd.Bind(c.pageSvc),
	)
	c.handlers = layoutcmd.NewHandlers(c.registry, layoutcmd.HandlersConfig{
		Logger:  commands.CommandLogger(c.loggerProvider, "layout"),
		Timeout: c.Config.Commands.Timeout,
	})
}

func (c *Container) configureNavigation() {
	nav := c.Config.Navigation
	if c.routeManager == nil && nav.RouteConfig != nil {
		c.routeManager = urlkit.NewRouteManager(nav.RouteConfig)
	}
	if c.routeManager == nil {
		return
	}
	c.resolver = links.NewResolver(links.Options{
		Manager:      c.routeManager,
		DefaultGroup: nav.Group,
		LocaleGroups: nav.LocaleGroups,
		PageRoute:    nav.PageRoute,
		SlugParam:    nav.SlugParam,
	})
}

// Close stops the language watcher and releases the database opened by the
// container. Injected databases are left open.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopWatch != nil {
		c.stopWatch()
		c.stopWatch = nil
	}
	if !c.ownsDB || c.bunDB == nil {
		return nil
	}
	return c.bunDB.Close()
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Store() storage.Store { return c.store }

// Catalog returns the language table current at call time.
func (c *Container) Catalog() i18n.Catalog { return c.liveCatalog.Catalog() }

func (c *Container) Languages() languages.Repository { return c.languageRepo }

func (c *Container) ElementService() *elements.Service { return c.elementSvc }

func (c *Container) ContainerService() *containers.Service { return c.containerSvc }

func (c *Container) PageService() *pages.Service { return c.pageSvc }

func (c *Container) CommandRegistry() *layoutcmd.Registry { return c.registry }

func (c *Container) CommandHandlers() layoutcmd.Handlers { return c.handlers }

// LinkResolver returns nil when no routes are configured.
func (c *Container) LinkResolver() *links.Resolver { return c.resolver }
