package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-pagebuilder"
)

func main() {
	ctx := context.Background()

	cfg := pagebuilder.DefaultConfig()
	cfg.Logging.Level = envOr("PAGEBUILDER_LOG_LEVEL", "info")
	cfg.Languages.Default = "en"
	cfg.Languages.Entries = []pagebuilder.LanguageConfig{
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
	}
	cfg.Validation.CheckReferences = true

	if dsn := strings.TrimSpace(os.Getenv("PAGEBUILDER_DSN")); dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.Dialect = envOr("PAGEBUILDER_DIALECT", "sqlite")
		cfg.Storage.DSN = dsn
		cfg.Storage.AutoMigrate = true
		cfg.Cache.Enabled = true
	}

	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"page": "/pages/:slug",
					"cart": "/cart",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name: "es",
						Path: "/es",
						Paths: map[string]string{
							"page": "/paginas/:slug",
						},
					},
				},
			},
		},
	}
	cfg.Navigation.LocaleGroups = map[string]string{"es": "frontend.es"}

	module, err := pagebuilder.New(cfg)
	if err != nil {
		log.Fatalf("initialise page builder: %v", err)
	}
	defer module.Close()

	unsubscribe := module.SubscribeCommands()
	defer unsubscribe()

	result, err := pagebuilder.SeedLayouts(ctx, module, sampleLayouts())
	if err != nil {
		log.Fatalf("seed layouts: %v", err)
	}

	// Internal pages resolve to an application route instead of their slug.
	draft := pagebuilder.RenamePage(pagebuilder.NewPage(), "Checkout")
	draft.Type = "internal"
	draft.InternalType = "cart"
	saved, err := module.Pages().SaveDraft(ctx, pagebuilder.PageID("checkout"), draft)
	if err != nil {
		log.Fatalf("save checkout draft: %v", err)
	}
	publish := pagebuilder.PublishLayoutCommand{Target: pagebuilder.CommandTarget{Kind: "pages", ID: saved.Meta.ID}}
	if err := dispatcher.Dispatch(ctx, publish); err != nil {
		log.Fatalf("publish checkout: %v", err)
	}

	ids := append(append([]string{}, result.Pages...), saved.Meta.ID)
	for _, id := range ids {
		record, err := module.Pages().Get(ctx, id)
		if err != nil {
			log.Fatalf("load page %s: %v", id, err)
		}
		for _, locale := range []string{"en", "es"} {
			url, err := module.Links().Resolve(record.Entity, locale)
			if err != nil {
				log.Fatalf("resolve %s (%s): %v", record.Entity.ReferenceName, locale, err)
			}
			fmt.Printf("%-10s %-9s %-3s %s\n", record.Entity.ReferenceName, record.Entity.State, locale, url)
		}
	}

	home, err := module.Pages().Get(ctx, pagebuilder.PageID("home"))
	if err != nil {
		log.Fatalf("load home: %v", err)
	}
	printJSON("home page", home)
}

func sampleLayouts() pagebuilder.SeedLayoutsOptions {
	slider := pagebuilder.NewElement()
	slider.ReferenceName = "home-slider"
	slider.ComponentType = "swimlane"
	slider.Title = []pagebuilder.LocalizedText{
		{LanCode: "en", Value: "New arrivals"},
		{LanCode: "es", Value: "Novedades"},
	}
	slider.SwiperOptions.SlidesPerView = 3
	slider.SwiperOptions.SpaceBetween = 16

	banner := pagebuilder.NewElement()
	banner.ReferenceName = "summer-banner"
	banner.ComponentType = "banner"
	banner.ImageURL = "https://cdn.example.com/banners/summer.jpg"

	hero := pagebuilder.NewContainer()
	hero.ReferenceName = "hero"
	hero.Description = "Landing hero"
	hero.Available = []pagebuilder.AppRef{{AppID: "web"}, {AppID: "android"}}
	hero = pagebuilder.SetContainerLayout(hero, "stack")

	home := pagebuilder.RenamePage(pagebuilder.NewPage(), "Home")
	home.Title = []pagebuilder.LocalizedText{
		{LanCode: "en", Value: "Welcome"},
		{LanCode: "es", Value: "Bienvenidos"},
	}

	return pagebuilder.SeedLayoutsOptions{
		Elements: []pagebuilder.SeedElement{
			{Element: slider, Publish: true},
			{Element: banner, Publish: true},
		},
		Containers: []pagebuilder.SeedContainer{
			{Container: hero, Elements: []string{"home-slider", "summer-banner"}, Publish: true},
		},
		Pages: []pagebuilder.SeedPage{
			{Page: home, Containers: []string{"hero"}, Publish: true},
		},
	}
}

func printJSON(label string, value any) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Printf("marshal %s: %v", label, err)
		return
	}
	fmt.Printf("%s:\n%s\n", label, payload)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
