package languages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/i18n"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

func TestMemoryRepositoryEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	repo := NewMemoryRepository(i18n.Language{Code: "en", Name: "English"})

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := repo.Upsert(ctx, i18n.Language{Code: " es ", Name: "Spanish"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	assertEvent(t, events, ChangeCreated)

	if _, err := repo.Upsert(ctx, i18n.Language{Code: "es", Name: "Spanish"}); err != nil {
		t.Fatalf("upsert unchanged: %v", err)
	}
	assertNoEvent(t, events)

	if _, err := repo.Upsert(ctx, i18n.Language{Code: "ES", Name: "Español"}); err != nil {
		t.Fatalf("upsert rename: %v", err)
	}
	assertEvent(t, events, ChangeUpdated)

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Code != "en" || list[1].Name != "Español" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := repo.Delete(ctx, "es"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertEvent(t, events, ChangeDeleted)
	if err := repo.Delete(ctx, "es"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
	if _, err := repo.Upsert(ctx, i18n.Language{Code: " "}); !errors.Is(err, ErrCodeRequired) {
		t.Fatalf("expected ErrCodeRequired, got %v", err)
	}
}

func TestBunRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBunRepository(testsupport.OpenSQLite(t))
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := repo.Upsert(ctx, i18n.Language{Code: "fr", Name: "French"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	assertEvent(t, events, ChangeCreated)
	if _, err := repo.Upsert(ctx, i18n.Language{Code: "FR", Name: "Français"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	assertEvent(t, events, ChangeUpdated)

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Code != "FR" || list[0].Name != "Français" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := repo.Delete(ctx, "fr"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertEvent(t, events, ChangeDeleted)
	if err := repo.Delete(ctx, "fr"); !errors.Is(err, ErrLanguageNotFound) {
		t.Fatalf("expected ErrLanguageNotFound, got %v", err)
	}
}

func TestLiveCatalogFollowsRepository(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fallback := i18n.NewCatalog(i18n.Language{Code: "en", Name: "English"})
	repo := NewMemoryRepository()
	live := NewLiveCatalog(fallback)

	if err := live.Watch(ctx, repo, nil); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !live.Catalog().Has("en") {
		t.Fatalf("expected fallback catalog")
	}

	if _, err := repo.Upsert(ctx, i18n.Language{Code: "de", Name: "German"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	waitFor(t, func() bool { return live.Catalog().Has("de") })
	if live.Catalog().Has("en") {
		t.Fatalf("expected repository languages to replace the fallback")
	}

	if err := repo.Delete(ctx, "de"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	waitFor(t, func() bool { return live.Catalog().Has("en") })
}

func TestSeedOnlyFillsEmptyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(i18n.Language{Code: "it", Name: "Italian"})
	if err := Seed(ctx, repo, []i18n.Language{{Code: "en", Name: "English"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 || list[0].Code != "it" {
		t.Fatalf("expected seed to leave stored languages alone, got %+v", list)
	}

	empty := NewMemoryRepository()
	if err := Seed(ctx, empty, []i18n.Language{{Code: "en", Name: "English"}}); err != nil {
		t.Fatalf("seed empty: %v", err)
	}
	list, _ = empty.List(ctx)
	if len(list) != 1 || list[0].Code != "en" {
		t.Fatalf("expected seeded language, got %+v", list)
	}
}

func assertEvent(t *testing.T, events <-chan ChangeEvent, want ChangeType) {
	t.Helper()
	select {
	case evt := <-events:
		if evt.Type != want {
			t.Fatalf("expected event %s, got %s", want, evt.Type)
		}
	default:
		t.Fatalf("expected event %s, got none", want)
	}
}

func assertNoEvent(t *testing.T, events <-chan ChangeEvent) {
	t.Helper()
	select {
	case evt := <-events:
		t.Fatalf("expected no event, got %s", evt.Type)
	default:
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
