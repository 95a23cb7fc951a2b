package languages

import (
	"context"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/i18n"
)

// MemoryRepository keeps the language table in process.
type MemoryRepository struct {
	mu        sync.RWMutex
	languages map[string]i18n.Language
	events    *broadcaster
}

// NewMemoryRepository constructs a repository seeded with languages. Blank
// codes are skipped.
func NewMemoryRepository(seed ...i18n.Language) *MemoryRepository {
	repo := &MemoryRepository{
		languages: make(map[string]i18n.Language, len(seed)),
		events:    newBroadcaster(),
	}
	for _, lang := range seed {
		if normalized, err := normalize(lang); err == nil {
			repo.languages[key(normalized.Code)] = normalized
		}
	}
	return repo
}

// List returns the stored languages sorted by code.
func (r *MemoryRepository) List(context.Context) ([]i18n.Language, error) {
	r.mu.RLock()
	out := make([]i18n.Language, 0, len(r.languages))
	for _, lang := range r.languages {
		out = append(out, lang)
	}
	r.mu.RUnlock()
	sortByCode(out)
	return out, nil
}

// Upsert stores language under its code. Unchanged entries emit no event.
func (r *MemoryRepository) Upsert(_ context.Context, language i18n.Language) (i18n.Language, error) {
	lang, err := normalize(language)
	if err != nil {
		return i18n.Language{}, err
	}
	r.mu.Lock()
	previous, exists := r.languages[key(lang.Code)]
	r.languages[key(lang.Code)] = lang
	r.mu.Unlock()

	if exists && previous == lang {
		return lang, nil
	}
	changeType := ChangeUpdated
	if !exists {
		changeType = ChangeCreated
	}
	r.events.publish(newChangeEvent(changeType, lang))
	return lang, nil
}

// Delete removes the language stored under code.
func (r *MemoryRepository) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	lang, ok := r.languages[key(code)]
	if !ok {
		r.mu.Unlock()
		return ErrLanguageNotFound
	}
	delete(r.languages, key(code))
	r.mu.Unlock()

	r.events.publish(newChangeEvent(ChangeDeleted, lang))
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.events.subscribe(ctx)
}
