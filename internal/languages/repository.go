package languages

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/i18n"
)

var (
	// ErrLanguageNotFound indicates the code is not stored.
	ErrLanguageNotFound = errors.New("languages: language not found")
	// ErrCodeRequired rejects blank language codes.
	ErrCodeRequired = errors.New("languages: language code is required")
)

// Repository persists the localization lookup table and emits change notifications.
type Repository interface {
	List(ctx context.Context) ([]i18n.Language, error)
	Upsert(ctx context.Context, language i18n.Language) (i18n.Language, error)
	Delete(ctx context.Context, code string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates language change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports a mutation of one language entry.
type ChangeEvent struct {
	Type     ChangeType
	Language i18n.Language
}

func newChangeEvent(changeType ChangeType, language i18n.Language) ChangeEvent {
	return ChangeEvent{
		Type:     changeType,
		Language: language,
	}
}

func normalize(language i18n.Language) (i18n.Language, error) {
	code := strings.TrimSpace(language.Code)
	if code == "" {
		return i18n.Language{}, ErrCodeRequired
	}
	return i18n.Language{Code: code, Name: strings.TrimSpace(language.Name)}, nil
}

func key(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func sortByCode(list []i18n.Language) {
	sort.SliceStable(list, func(i, j int) bool { return key(list[i].Code) < key(list[j].Code) })
}
