package pagebuilder_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-pagebuilder"
)

func newModule(t *testing.T, cfg pagebuilder.Config, opts ...pagebuilder.Option) *pagebuilder.Module {
	t.Helper()
	cfg.Logging.Level = "error"
	module, err := pagebuilder.New(cfg, opts...)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleComposesLayoutTree(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, pagebuilder.DefaultConfig())

	el := pagebuilder.NewElement()
	el.ReferenceName = "promo"
	el.Title = []pagebuilder.LocalizedText{{LanCode: "en", Value: "Promo"}}
	element, err := module.Elements().Publish(ctx, "", el)
	if err != nil {
		t.Fatalf("publish element: %v", err)
	}

	c := pagebuilder.NewContainer()
	c.ReferenceName = "hero"
	c.Description = "Hero region"
	c.Available = []pagebuilder.AppRef{{AppID: "app-web"}}
	c, err = pagebuilder.AddContainerElement(c, pagebuilder.Ref(element.Meta.ID))
	if err != nil {
		t.Fatalf("add element: %v", err)
	}
	container, err := module.Containers().Publish(ctx, "", c)
	if err != nil {
		t.Fatalf("publish container: %v", err)
	}

	p := pagebuilder.RenamePage(pagebuilder.NewPage(), "Spring Launch")
	p, err = pagebuilder.AddPageContainer(p, pagebuilder.Ref(container.Meta.ID))
	if err != nil {
		t.Fatalf("add container: %v", err)
	}

	if _, err := module.Pages().Publish(ctx, "", p); !pagebuilder.IsLifecycleError(err) {
		t.Fatalf("expected page publish before draft to be rejected, got %v", err)
	}

	draft, err := module.Pages().SaveDraft(ctx, "", p)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	published, err := module.Pages().PublishByID(ctx, draft.Meta.ID)
	if err != nil {
		t.Fatalf("publish page: %v", err)
	}
	if published.Entity.State != pagebuilder.StatePublished || published.Entity.Slug != "spring-launch" {
		t.Fatalf("unexpected page %+v", published.Entity)
	}
	if published.Meta.Version != 1 {
		t.Fatalf("expected version 1, got %d", published.Meta.Version)
	}
}

func TestModuleValidationErrorsExposeFields(t *testing.T) {
	module := newModule(t, pagebuilder.DefaultConfig())

	c := pagebuilder.NewContainer()
	_, err := module.Containers().Publish(context.Background(), "", c)
	fields := pagebuilder.Fields(err)
	for _, key := range []string{"referenceName", "description", "items", "available"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected %s in %v", key, fields)
		}
	}
}

func TestModuleCommandsThroughDispatcher(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, pagebuilder.DefaultConfig())

	draft, err := module.Pages().SaveDraft(ctx, "", pagebuilder.RenamePage(pagebuilder.NewPage(), "Contact"))
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}

	unsubscribe := module.SubscribeCommands()
	t.Cleanup(unsubscribe)

	target := pagebuilder.CommandTarget{Kind: "pages", ID: draft.Meta.ID}
	if err := dispatcher.Dispatch(ctx, pagebuilder.PublishLayoutCommand{Target: target}); err != nil {
		t.Fatalf("dispatch publish: %v", err)
	}
	got, err := module.Pages().Get(ctx, draft.Meta.ID)
	if err != nil || got.Entity.State != pagebuilder.StatePublished {
		t.Fatalf("expected published page, got %+v %v", got.Entity, err)
	}

	if err := module.Commands().Delete.Execute(ctx, pagebuilder.DeleteLayoutCommand{Target: target}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := module.Pages().Get(ctx, draft.Meta.ID); !pagebuilder.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestModuleResolvesLinks(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    "frontend",
			BaseURL: "https://shop.example.com",
			Paths:   map[string]string{"page": "/pages/:slug"},
		}},
	}
	module := newModule(t, cfg)

	url, err := module.Links().Resolve(pagebuilder.RenamePage(pagebuilder.NewPage(), "Gift Cards"), "en")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if url != "https://shop.example.com/pages/gift-cards" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestModuleBunStorage(t *testing.T) {
	ctx := context.Background()
	cfg := pagebuilder.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.AutoMigrate = true
	module := newModule(t, cfg)

	if _, err := pagebuilder.SeedLayouts(ctx, module, seedOptions()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	page, err := module.Pages().Get(ctx, pagebuilder.PageID("home"))
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.Entity.State != pagebuilder.StatePublished {
		t.Fatalf("expected published page, got %s", page.Entity.State)
	}
}

func TestModuleLanguagesFeedValidation(t *testing.T) {
	ctx := context.Background()
	cfg := pagebuilder.DefaultConfig()
	cfg.Languages.Entries = []pagebuilder.LanguageConfig{{Code: "en", Name: "English"}}
	repo := pagebuilder.NewMemoryLanguageRepository(pagebuilder.Language{Code: "en", Name: "English"})
	module := newModule(t, cfg, pagebuilder.WithLanguageRepository(repo))

	if _, err := module.Languages().Upsert(ctx, pagebuilder.Language{Code: "nl", Name: "Dutch"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !module.Catalog().Has("nl") {
		if time.Now().After(deadline) {
			t.Fatal("expected catalog to follow the language repository")
		}
		time.Sleep(5 * time.Millisecond)
	}

	p := pagebuilder.RenamePage(pagebuilder.NewPage(), "Welkom")
	p.Title = []pagebuilder.LocalizedText{{LanCode: "nl", Value: "Welkom"}}
	if _, err := module.Pages().SaveDraft(ctx, "", p); err != nil {
		t.Fatalf("save draft: %v", err)
	}
}
