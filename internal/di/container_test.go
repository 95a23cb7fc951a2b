package di

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/elements"
	"github.com/goliatone/go-pagebuilder/internal/i18n"
	"github.com/goliatone/go-pagebuilder/internal/languages"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

type recordingProvider struct {
	mu      sync.Mutex
	modules []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.mu.Lock()
	p.modules = append(p.modules, name)
	p.mu.Unlock()
	return nil
}

func (p *recordingProvider) requested(module string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range p.modules {
		if name == module {
			return true
		}
	}
	return false
}

func TestContainerDefaultsToMemoryStore(t *testing.T) {
	provider := &recordingProvider{}
	c, err := NewContainer(runtimeconfig.DefaultConfig(), WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.Store().(*storage.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", c.Store())
	}
	if c.LinkResolver() != nil {
		t.Fatalf("expected no resolver without routes")
	}
	if !c.Catalog().Has("en") {
		t.Fatalf("expected bundled catalog")
	}
	for _, module := range []string{"pagebuilder.elements", "pagebuilder.containers", "pagebuilder.pages", "pagebuilder.commands.layout"} {
		if !provider.requested(module) {
			t.Fatalf("expected logger for %s, got %v", module, provider.modules)
		}
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "mongo"
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected provider error, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Languages.Persist = true
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrLanguagesPersistRequiresBun) {
		t.Fatalf("expected persisted languages error, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "postgres"
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected dsn error, got %v", err)
	}
}

func TestContainerUsesGoLoggerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	provider, ok := c.LoggerProvider().(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", c.LoggerProvider())
	}
	if provider.GetLogger("pagebuilder.test") == nil {
		t.Fatal("expected logger from go-logger provider")
	}
}

func TestContainerBunStoreWithCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.AutoMigrate = true
	cfg.Cache.Enabled = true

	c, err := NewContainer(cfg, WithLoggerProvider(&recordingProvider{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.Store().(*storage.BunStore); !ok {
		t.Fatalf("expected bun store, got %T", c.Store())
	}
	if c.cacheService == nil || c.keySerializer == nil {
		t.Fatal("expected repository cache to be configured")
	}

	ctx := context.Background()
	el := elements.New()
	el.ReferenceName = "promo"
	saved, err := c.ElementService().Publish(ctx, "", el)
	if err != nil {
		t.Fatalf("publish element: %v", err)
	}
	got, err := c.ElementService().Get(ctx, saved.Meta.ID)
	if err != nil {
		t.Fatalf("get element: %v", err)
	}
	if got.Entity.ReferenceName != "promo" {
		t.Fatalf("unexpected element %+v", got.Entity)
	}
}

func TestContainerWiresValidationAndCommands(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Validation.CheckReferences = true
	cfg.Languages.Default = "en"
	cfg.Languages.Entries = []runtimeconfig.LanguageConfig{{Code: "en", Name: "English"}}

	c, err := NewContainer(cfg, WithLoggerProvider(&recordingProvider{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	ctx := context.Background()

	p := pages.Rename(pages.New(), "Home")
	p.Title = []domain.LocalizedText{{LanCode: "fr", Value: "Accueil"}}
	p.Items = []domain.Ref{"missing-container"}
	_, err = c.PageService().SaveDraft(ctx, "", p)
	fields := validation.Fields(err)
	if _, ok := fields["title_0_lanCode"]; !ok {
		t.Fatalf("expected configured catalog to reject fr, got %v", fields)
	}
	if _, ok := fields["items_0"]; !ok {
		t.Fatalf("expected reference check, got %v", fields)
	}

	p.Title = nil
	p.Items = nil
	draft, err := c.PageService().SaveDraft(ctx, "", p)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	msg := layoutcmd.PublishLayoutCommand{Target: layoutcmd.Target{Kind: "pages", ID: draft.Meta.ID}}
	if err := c.CommandHandlers().Publish.Execute(ctx, msg); err != nil {
		t.Fatalf("publish command: %v", err)
	}
}

func TestContainerOverrides(t *testing.T) {
	store := storage.NewMemoryStore()
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    "frontend",
			BaseURL: "https://shop.example.com",
			Paths:   map[string]string{"page": "/:slug"},
		}},
	})
	catalog := i18n.NewCatalog(i18n.Language{Code: "de", Name: "German"})

	c, err := NewContainer(runtimeconfig.DefaultConfig(),
		WithStore(store),
		WithRouteManager(manager),
		WithCatalog(catalog),
		WithLoggerProvider(&recordingProvider{}),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.Store() != storage.Store(store) {
		t.Fatalf("expected injected store")
	}
	if !c.Catalog().Has("de") || c.Catalog().Has("en") {
		t.Fatalf("expected injected catalog")
	}
	url, err := c.LinkResolver().Resolve(pages.Rename(pages.New(), "About Us"), "")
	if err != nil || url != "https://shop.example.com/about-us" {
		t.Fatalf("unexpected url %q %v", url, err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestContainerLanguageRepositoryDrivesValidation(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Languages.Entries = []runtimeconfig.LanguageConfig{{Code: "en", Name: "English"}}

	repo := languages.NewMemoryRepository()
	c, err := NewContainer(cfg, WithLanguageRepository(repo), WithLoggerProvider(&recordingProvider{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	el := elements.New()
	el.ReferenceName = "promo"
	el.Title = []domain.LocalizedText{{LanCode: "pt", Value: "Oferta"}}
	_, err = c.ElementService().SaveDraft(context.Background(), "", el)
	if _, ok := validation.Fields(err)["title_0_lanCode"]; !ok {
		t.Fatalf("expected pt to be rejected, got %v", err)
	}

	if _, err := repo.Upsert(context.Background(), i18n.Language{Code: "pt", Name: "Portuguese"}); err != nil {
		t.Fatalf("upsert language: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !c.Catalog().Has("pt") {
		if time.Now().After(deadline) {
			t.Fatal("catalog did not pick up the new language")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := c.ElementService().SaveDraft(context.Background(), "", el); err != nil {
		t.Fatalf("expected pt to be accepted, got %v", err)
	}
}

func TestContainerPersistsLanguagesWithBun(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.DSN = "file:di_languages_test?mode=memory&cache=shared"
	cfg.Storage.AutoMigrate = true
	cfg.Languages.Persist = true
	cfg.Languages.Entries = []runtimeconfig.LanguageConfig{{Code: "en", Name: "English"}, {Code: "es", Name: "Spanish"}}

	c, err := NewContainer(cfg, WithLoggerProvider(&recordingProvider{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.Languages().(*languages.BunRepository); !ok {
		t.Fatalf("expected bun language repository, got %T", c.Languages())
	}
	list, err := c.Languages().List(context.Background())
	if err != nil {
		t.Fatalf("list languages: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected configured languages to be seeded, got %+v", list)
	}
	if !c.Catalog().Has("es") {
		t.Fatalf("expected catalog loaded from repository")
	}
}

func TestContainerClosesOwnedDBWhenMigrateFails(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.DSN = "file:di_readonly_test?mode=memory&cache=shared&_query_only=1"
	cfg.Storage.AutoMigrate = true

	if _, err := NewContainer(cfg, WithLoggerProvider(&recordingProvider{})); err == nil {
		t.Fatal("expected migrate failure on a read-only database")
	}

	c := &Container{Config: cfg, cacheTTL: time.Minute}
	if err := c.configureStorage(); err == nil {
		t.Fatal("expected configureStorage to fail")
	}
	if c.ownsDB {
		t.Fatal("expected container to give up the database it opened")
	}
	err := c.bunDB.PingContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "database is closed") {
		t.Fatalf("expected owned database to be closed, got %v", err)
	}
}
