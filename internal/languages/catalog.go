package languages

import (
	"context"
	"sync/atomic"

	"github.com/goliatone/go-pagebuilder/internal/i18n"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// LiveCatalog is a concurrency-safe view of the language table that follows
// repository changes. When the repository is empty the fallback is served.
type LiveCatalog struct {
	current  atomic.Pointer[i18n.Catalog]
	fallback i18n.Catalog
}

// NewLiveCatalog starts with fallback until the first reload.
func NewLiveCatalog(fallback i18n.Catalog) *LiveCatalog {
	live := &LiveCatalog{fallback: fallback}
	live.Set(fallback)
	return live
}

// Catalog returns the current snapshot.
func (l *LiveCatalog) Catalog() i18n.Catalog {
	if l == nil {
		return i18n.Catalog{}
	}
	if cat := l.current.Load(); cat != nil {
		return *cat
	}
	return l.fallback
}

// Set replaces the snapshot.
func (l *LiveCatalog) Set(catalog i18n.Catalog) {
	if l == nil {
		return
	}
	l.current.Store(&catalog)
}

// Reload rebuilds the snapshot from repo.
func (l *LiveCatalog) Reload(ctx context.Context, repo Repository) error {
	list, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		l.Set(l.fallback)
		return nil
	}
	l.Set(i18n.NewCatalog(list...))
	return nil
}

// Watch reloads the snapshot on every repository change until ctx is done.
func (l *LiveCatalog) Watch(ctx context.Context, repo Repository, logger interfaces.Logger) error {
	if logger == nil {
		logger = logging.NoOp()
	}
	events, err := repo.Subscribe(ctx)
	if err != nil {
		return err
	}
	go func() {
		for evt := range events {
			if err := l.Reload(ctx, repo); err != nil {
				logger.Warn("languages.reload.failed", "change", evt.Type, "code", evt.Language.Code, "error", err)
				continue
			}
			logger.Debug("languages.reload.success", "change", evt.Type, "code", evt.Language.Code, "languages", l.Catalog().Len())
		}
	}()
	return nil
}

// Seed stores languages only when repo is empty, so persisted edits survive restarts.
func Seed(ctx context.Context, repo Repository, languages []i18n.Language) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, lang := range languages {
		if _, err := repo.Upsert(ctx, lang); err != nil {
			return err
		}
	}
	return nil
}
