package pages_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/ordering"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

func validPage() pages.Page {
	p := pages.Rename(pages.New(), "Summer Sale")
	p.Title = []domain.LocalizedText{{LanCode: "en", Value: "Summer Sale"}}
	return p
}

func TestNewDefaults(t *testing.T) {
	p := pages.New()
	if p.Type != pages.TypeNormal || p.State != lifecycle.StateNew || p.Items == nil {
		t.Fatalf("unexpected defaults %+v", p)
	}
}

func TestDeriveSlug(t *testing.T) {
	cases := map[string]string{
		"Summer Sale":          "summer-sale",
		"  Black   Friday!! ":  "black-friday",
		"Offers 2024 / Q3":     "offers-2024-q3",
		"":                     "",
		"already-a-valid-slug": "already-a-valid-slug",
	}
	for name, want := range cases {
		if got := pages.DeriveSlug(name); got != want {
			t.Fatalf("DeriveSlug(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRenameKeepsManualSlug(t *testing.T) {
	p := pages.Rename(pages.New(), "Summer Sale")
	if p.Slug != "summer-sale" {
		t.Fatalf("expected derived slug, got %q", p.Slug)
	}

	p = pages.Rename(p, "Winter Sale")
	if p.Slug != "winter-sale" {
		t.Fatalf("expected slug to follow the name, got %q", p.Slug)
	}

	p.Slug = "deals"
	p = pages.Rename(p, "Spring Sale")
	if p.Slug != "deals" || p.ReferenceName != "Spring Sale" {
		t.Fatalf("expected manual slug to survive, got %q / %q", p.Slug, p.ReferenceName)
	}
}

func TestValidateSlugPattern(t *testing.T) {
	p := validPage()
	p.Slug = "Summer_Sale"
	if _, ok := pages.Validate(p)["slug"]; !ok {
		t.Fatalf("expected slug format error")
	}
	p.Slug = ""
	if msg := pages.Validate(p)["slug"]; msg != "slug is required" {
		t.Fatalf("expected required message, got %q", msg)
	}
}

func TestTypeDiscriminatedRequirements(t *testing.T) {
	p := validPage()
	p.Type = pages.TypeExternal
	p.ExternalURL = ""
	errs := pages.Validate(p)
	if _, ok := errs["externalUrl"]; !ok || len(errs) != 1 {
		t.Fatalf("expected only externalUrl, got %v", errs)
	}

	p.Type = pages.TypeNormal
	if errs := pages.Validate(p); !errs.Valid() {
		t.Fatalf("expected normal page with blank externalUrl to pass, got %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*pages.Page)
		keys   []string
	}{
		{name: "external bad scheme", mutate: func(p *pages.Page) { p.Type = pages.TypeExternal; p.ExternalURL = "ftp://files" }, keys: []string{"externalUrl"}},
		{name: "internal missing", mutate: func(p *pages.Page) { p.Type = pages.TypeInternal }, keys: []string{"internalType"}},
		{name: "internal ok", mutate: func(p *pages.Page) { p.Type = pages.TypeInternal; p.InternalType = pages.InternalCart }},
		{name: "details missing both", mutate: func(p *pages.Page) { p.Type = pages.TypeDetails }, keys: []string{"productID", "eventID"}},
		{name: "details with event", mutate: func(p *pages.Page) { p.Type = pages.TypeDetails; p.EventID = "ev-1" }},
		{name: "product details", mutate: func(p *pages.Page) { p.Type = pages.TypeProductDetails; p.EventID = "ev-1" }, keys: []string{"productID"}},
		{name: "event details", mutate: func(p *pages.Page) { p.Type = pages.TypeEventDetails; p.ProductID = "pr-1" }, keys: []string{"eventID"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPage()
			tc.mutate(&p)
			errs := pages.Validate(p)
			if len(errs) != len(tc.keys) {
				t.Fatalf("expected keys %v, got %v", tc.keys, errs)
			}
			for _, key := range tc.keys {
				if _, ok := errs[key]; !ok {
					t.Fatalf("expected %s in %v", key, errs)
				}
			}
		})
	}
}

func TestValidateOptionalFields(t *testing.T) {
	p := validPage()
	p.CanonicalURL = "example.com/page"
	p.TwitterCreator = "shop"
	p.NumberItems = pages.NumberItems{Web: 10, Android: -1}
	p.OGTitle = []domain.LocalizedText{{LanCode: "en", Value: ""}}

	errs := pages.Validate(p)
	for _, key := range []string{"canonicalUrl", "twitterCreator", "numberItems_android", "ogTitle_0_value"} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("expected %s in %v", key, errs)
		}
	}

	p = validPage()
	p.CanonicalURL = "https://shop.example.com/summer-sale"
	p.TwitterCreator = "@shop_news"
	if errs := pages.Validate(p); !errs.Valid() {
		t.Fatalf("expected valid page, got %v", errs)
	}
}

func TestDuplicateContainerGuard(t *testing.T) {
	p := validPage()
	p, err := pages.AddContainer(p, "c-1")
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	again, err := pages.AddContainer(p, "c-1")
	if !errors.Is(err, ordering.ErrDuplicateReference) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if !reflect.DeepEqual(again.Items, []domain.Ref{"c-1"}) {
		t.Fatalf("expected single entry, got %v", again.Items)
	}

	for _, ref := range []domain.Ref{"c-2", "c-3", "c-4"} {
		if p, err = pages.AddContainer(p, ref); err != nil {
			t.Fatalf("insert %s: %v", ref, err)
		}
	}
	moved, err := pages.MoveContainer(p, 0, 2)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !reflect.DeepEqual(moved.Items, []domain.Ref{"c-2", "c-3", "c-1", "c-4"}) {
		t.Fatalf("unexpected order %v", moved.Items)
	}
	removed, err := pages.RemoveContainer(moved, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !reflect.DeepEqual(removed.Items, []domain.Ref{"c-3", "c-1", "c-4"}) {
		t.Fatalf("unexpected items %v", removed.Items)
	}
}

func TestPublishBeforeDraft(t *testing.T) {
	p := validPage()
	_, err := pages.Publish(p)
	var lerr *lifecycle.LifecycleError
	if !errors.As(err, &lerr) || !errors.Is(err, lifecycle.ErrPublishBeforeDraft) {
		t.Fatalf("expected LifecycleError, got %v", err)
	}
	if lerr.Kind != domain.KindPage || lerr.Action != lifecycle.ActionPublish {
		t.Fatalf("unexpected error details %+v", lerr)
	}

	draft, err := pages.SaveDraft(p)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	published, err := pages.Publish(draft)
	if err != nil {
		t.Fatalf("publish after draft: %v", err)
	}
	if published.State != lifecycle.StatePublished {
		t.Fatalf("expected published, got %s", published.State)
	}
}

func TestRoundTripFlags(t *testing.T) {
	p := validPage()
	p.Items = []domain.Ref{"c-1", "c-2"}
	p.Available = []domain.AppRef{{AppID: "X"}}
	p.State = lifecycle.StatePublished

	data, err := pages.Serialize(p)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, _, err := pages.Denormalize(data)
	if err != nil {
		t.Fatalf("denormalize: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", p, got)
	}

	uniform := pages.Codec{Flags: lifecycle.UniformFlags()}
	data, err = uniform.Serialize(p)
	if err != nil {
		t.Fatalf("serialize uniform: %v", err)
	}
	got, _, err = uniform.Denormalize(data)
	if err != nil || got.State != lifecycle.StatePublished {
		t.Fatalf("unexpected uniform decode %s %v", got.State, err)
	}
}

func TestDenormalizePopulatedRecord(t *testing.T) {
	p, meta, err := pages.Denormalize(testsupport.LoadFixture(t, "populated_page.json"))
	if err != nil {
		t.Fatalf("denormalize: %v", err)
	}
	if meta.ID != "65f1c0a2e4b0a1b2c3d4e5f6" || meta.Version != 3 || meta.CreatedAt.IsZero() {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if !reflect.DeepEqual(p.Items, []domain.Ref{"c-1", "c-2"}) {
		t.Fatalf("expected bare container ids, got %v", p.Items)
	}
	if !reflect.DeepEqual(p.Available, []domain.AppRef{{AppID: "app-web"}, {AppID: "app-android"}}) {
		t.Fatalf("expected bare app ids, got %v", p.Available)
	}
	if p.State != lifecycle.StatePublished || p.Type != pages.TypeLanding {
		t.Fatalf("unexpected state %s type %s", p.State, p.Type)
	}
	if errs := pages.Validate(p); !errs.Valid() {
		t.Fatalf("expected decoded page to validate, got %v", errs)
	}

	data, err := pages.Serialize(p)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if _, ok := raw["_id"]; ok {
		t.Fatalf("server keys must not be serialized: %v", raw)
	}
	if items := raw["items"].([]any); items[0] != "c-1" {
		t.Fatalf("expected references as bare ids, got %v", items)
	}
}

func TestServicePublishSequencing(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := pages.NewService(store, layout.WithReferenceChecks(true))

	p := validPage()
	if _, err := svc.Publish(ctx, "", p); !lifecycle.IsLifecycleError(err) {
		t.Fatalf("expected lifecycle error, got %v", err)
	} else if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if result, _ := store.List(ctx, domain.KindPage, storage.PageRequest{}); result.Pagination.TotalCount != 0 {
		t.Fatalf("expected nothing persisted after rejection")
	}

	draft, err := svc.SaveDraft(ctx, "", p)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	published, err := svc.Publish(ctx, draft.Meta.ID, draft.Entity)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	doc, err := store.Get(ctx, domain.KindPage, published.Meta.ID)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if doc.Payload["draft"] != false || doc.Payload["publish"] != true {
		t.Fatalf("expected page convention draft=false publish=true, got %v", doc.Payload)
	}

	if _, err := svc.Unpublish(ctx, published.Meta.ID); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	got, err := svc.Get(ctx, published.Meta.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Entity.State != lifecycle.StateDraft || got.Entity.Slug != "summer-sale" || got.Meta.Version != 2 {
		t.Fatalf("unexpected record after unpublish %+v", got)
	}
}

func TestServiceUniformFlags(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := pages.NewService(store, layout.WithFlagCodec(lifecycle.UniformFlags()))

	draft, err := svc.SaveDraft(ctx, "", validPage())
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if _, err := svc.PublishByID(ctx, draft.Meta.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	doc, _ := store.Get(ctx, domain.KindPage, draft.Meta.ID)
	if doc.Payload["draft"] != true || doc.Payload["publish"] != true {
		t.Fatalf("expected uniform flags, got %v", doc.Payload)
	}
}
